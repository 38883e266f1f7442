package handlers

import (
	"errors"

	"maboutique/internal/domain"
	applog "maboutique/internal/log"
	"maboutique/internal/services"
	"maboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminCategoryHandler owns the privileged category pages. Deleting a
// category cascades to its products at the store level.
type AdminCategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *AdminCategoryHandler) Index(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger les catégories."})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

func (h *AdminCategoryHandler) CreateForm(c *fiber.Ctx) error {
	return render(c, "admin_category_form", fiber.Map{})
}

func (h *AdminCategoryHandler) Create(c *fiber.Ctx) error {
	f := validate.CategoryForm{Name: c.FormValue("name")}
	if err := f.Validate(); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "category.create"})
		return c.Status(400).Render("admin_category_form", fiber.Map{"Form": f})
	}
	cat := domain.Category{Name: f.Name}
	if err := h.Catalog.CreateCategory(&cat); err != nil {
		applog.Error(c, "admin.category.create.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "La création a échoué. Veuillez réessayer."})
	}
	applog.Audit(c, "admin.category.created", map[string]any{"id": cat.ID})
	return c.Redirect("/admin/categories")
}

// Details shows a category with its owned products.
func (h *AdminCategoryHandler) Details(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Catégorie introuvable"})
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Catégorie introuvable"})
	}
	return render(c, "admin_category", fiber.Map{"C": cat})
}

func (h *AdminCategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Catégorie introuvable"})
	}
	if err := h.Catalog.DeleteCategory(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Catégorie introuvable"})
		}
		applog.Error(c, "admin.category.delete.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "La suppression a échoué. Veuillez réessayer."})
	}
	applog.Audit(c, "admin.category.deleted", map[string]any{"id": id})
	return c.Redirect("/admin/categories")
}
