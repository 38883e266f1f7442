package handlers

import (
	"errors"
	"strconv"

	"maboutique/internal/cart"
	"maboutique/internal/domain"
	applog "maboutique/internal/log"
	"maboutique/internal/services"
	"maboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public product detail page: review stats,
// review submission and add-to-cart with a chosen quantity.
type ProductHandler struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
		}
		applog.Error(c, "product.detail.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger l'article. Veuillez réessayer."})
	}

	viewerID := ""
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		viewerID = u.ID
	}
	agg, err := h.Reviews.Aggregate(id, viewerID)
	if err != nil {
		applog.Error(c, "product.reviews.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger l'article. Veuillez réessayer."})
	}
	reviews, err := h.Reviews.Recent(id)
	if err != nil {
		applog.Error(c, "product.reviews.fail", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger l'article. Veuillez réessayer."})
	}

	return render(c, "product", fiber.Map{
		"P":           p,
		"Reviews":     reviews,
		"ReviewCount": agg.Count,
		"ReviewAvg":   agg.Average,
		"HasReviewed": agg.HasReviewed,
	})
}

// SubmitReview persists a rating for signed-in users. Out-of-range or
// duplicate submissions just redirect back without persisting anything.
func (h *ProductHandler) SubmitReview(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}
	back := "/product/" + strconv.FormatInt(id, 10)

	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		return c.Redirect(back)
	}
	if err := h.Reviews.Create(id, u.ID, rating); err != nil {
		switch {
		case errors.Is(err, services.ErrRatingOutOfRange), errors.Is(err, services.ErrAlreadyReviewed):
			applog.Security(c, "review.rejected", map[string]any{"product": id, "rating": rating})
		default:
			applog.Error(c, "review.create.fail", err, map[string]any{"product": id})
		}
		return c.Redirect(back)
	}
	applog.Audit(c, "review.created", map[string]any{"product": id, "rating": rating})
	return c.Redirect(back)
}

// AddToCart adds the chosen quantity (floored at 1) and stays on the page.
func (h *ProductHandler) AddToCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}
	qty := validate.Qty(c.FormValue("quantite"))
	ct := readCart(c)
	writeCart(c, cart.Upsert(ct, id, qty))
	return c.Redirect("/product/" + strconv.FormatInt(id, 10))
}
