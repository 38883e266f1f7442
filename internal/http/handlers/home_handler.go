package handlers

import (
	"strings"

	"maboutique/internal/cache"
	"maboutique/internal/cart"
	"maboutique/internal/domain"
	applog "maboutique/internal/log"
	"maboutique/internal/services"
	"maboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler serves the storefront: category list, the (cached) product
// listing and the assistant box.
type HomeHandler struct {
	Catalog   *services.CatalogService
	Assistant *services.AssistantService
}

// listingFilter maps the optional ?categorie query param to a cache filter.
func listingFilter(c *fiber.Ctx) cache.Filter {
	if id, ok := validate.ID(c.Query("categorie")); ok {
		return cache.ByCategory(id)
	}
	return cache.Unfiltered()
}

func (h *HomeHandler) load(c *fiber.Ctx) ([]domain.Category, []domain.Product, error) {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return nil, nil, err
	}
	products, err := h.Catalog.Listing(c.Context(), listingFilter(c))
	if err != nil {
		return nil, nil, err
	}
	return cats, products, nil
}

func (h *HomeHandler) Index(c *fiber.Ctx) error {
	cats, products, err := h.load(c)
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger la boutique. Veuillez réessayer."})
	}
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Products":   products,
		"CategoryID": c.Query("categorie"),
	})
}

// AskAI runs the retrieval step over the unfiltered listing and renders the
// answer plus the suggested products on the same page.
func (h *HomeHandler) AskAI(c *fiber.Ctx) error {
	question := strings.TrimSpace(c.FormValue("question"))
	cats, products, err := h.load(c)
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger la boutique. Veuillez réessayer."})
	}
	data := fiber.Map{
		"Categories": cats,
		"Products":   products,
		"CategoryID": c.Query("categorie"),
	}
	if question != "" {
		catalog, err := h.Catalog.Listing(c.Context(), cache.Unfiltered())
		if err != nil {
			applog.Error(c, "assistant.catalog.fail", err, nil)
			catalog = products
		}
		ans := h.Assistant.Ask(c.Context(), question, catalog)
		applog.Info(c, "assistant.ask", map[string]any{"question": question, "suggestions": len(ans.Suggestions)})
		data["Question"] = question
		data["Answer"] = ans.Text
		data["Suggestions"] = ans.Suggestions
	}
	return render(c, "home", data)
}

// AddToCart adds one unit of the product and redirects back, keeping the
// active category filter.
func (h *HomeHandler) AddToCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Redirect("/")
	}
	ct := readCart(c)
	writeCart(c, cart.Upsert(ct, id, 1))
	if cid := c.Query("categorie"); cid != "" {
		return c.Redirect("/?categorie=" + cid)
	}
	return c.Redirect("/")
}
