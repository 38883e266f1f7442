package handlers

import (
	"errors"

	"maboutique/internal/domain"
	applog "maboutique/internal/log"
	"maboutique/internal/services"
	"maboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminProductHandler owns the privileged product CRUD pages. Every
// successful mutation invalidates the affected listing cache keys through
// the catalog service.
type AdminProductHandler struct {
	Catalog *services.CatalogService
}

func (h *AdminProductHandler) productForm(c *fiber.Ctx) (validate.ProductForm, bool) {
	f := validate.ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		ImageURL:    c.FormValue("image_url"),
	}
	if id, ok := validate.ID(c.FormValue("category_id")); ok {
		f.CategoryID = id
	}
	f.Stock = validate.Delta(c.FormValue("stock"))
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return f, false
	}
	f.Price = price
	return f, f.Validate() == nil
}

func (h *AdminProductHandler) Index(c *fiber.Ctx) error {
	products, err := h.Catalog.Listing(c.Context(), listingFilter(c))
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger les produits."})
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

func (h *AdminProductHandler) CreateForm(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return render(c, "admin_product_form", fiber.Map{"Categories": cats})
}

func (h *AdminProductHandler) Create(c *fiber.Ctx) error {
	f, ok := h.productForm(c)
	if !ok {
		// Re-display the form with the category list reloaded.
		cats, err := h.Catalog.ListCategories()
		if err != nil {
			return err
		}
		applog.Security(c, "validation.fail", map[string]any{"form": "product.create"})
		return c.Status(400).Render("admin_product_form", fiber.Map{"Categories": cats, "Form": f})
	}
	p := domain.Product{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Stock:       f.Stock,
		CategoryID:  f.CategoryID,
	}
	if err := h.Catalog.CreateProduct(c.Context(), &p); err != nil {
		applog.Error(c, "admin.product.create.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "La création a échoué. Veuillez réessayer."})
	}
	applog.Audit(c, "admin.product.created", map[string]any{"id": p.ID})
	return c.Redirect("/admin/products")
}

func (h *AdminProductHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return render(c, "admin_product_form", fiber.Map{"Categories": cats, "P": p})
}

func (h *AdminProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	f, ok := h.productForm(c)
	if !ok {
		cats, err := h.Catalog.ListCategories()
		if err != nil {
			return err
		}
		applog.Security(c, "validation.fail", map[string]any{"form": "product.edit", "id": id})
		return c.Status(400).Render("admin_product_form", fiber.Map{"Categories": cats, "Form": f})
	}
	p := domain.Product{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Stock:       f.Stock,
		CategoryID:  f.CategoryID,
	}
	if err := h.Catalog.UpdateProduct(c.Context(), p); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
		}
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "La modification a échoué. Veuillez réessayer."})
	}
	applog.Audit(c, "admin.product.updated", map[string]any{"id": id})
	return c.Redirect("/admin/products")
}

func (h *AdminProductHandler) DeleteForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	return render(c, "admin_product_delete", fiber.Map{"P": p})
}

func (h *AdminProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
	}
	if err := h.Catalog.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Produit introuvable"})
		}
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "La suppression a échoué. Veuillez réessayer."})
	}
	applog.Audit(c, "admin.product.deleted", map[string]any{"id": id})
	return c.Redirect("/admin/products")
}
