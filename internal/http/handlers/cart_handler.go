package handlers

import (
	"maboutique/internal/cart"
	applog "maboutique/internal/log"
	"maboutique/internal/repos"
	"maboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the cookie cart pages. The cart lives entirely in the
// client cookie; each action decodes it, mutates the value in memory and
// rewrites the cookie.
type CartHandler struct {
	Prods *repos.ProductRepo
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	ct := readCart(c)
	products, err := h.Prods.GetByIDs(ct.IDs())
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Impossible de charger le panier. Veuillez réessayer."})
	}
	lines, total := cart.BuildView(ct, products)
	return render(c, "cart", fiber.Map{"Lines": lines, "Total": total.StringFixed(2)})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Redirect("/cart")
	}
	ct := readCart(c)
	writeCart(c, cart.Remove(ct, id))
	return c.Redirect("/cart")
}

// UpdateQuantity applies a signed delta to one entry, clamped into [1,99].
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Redirect("/cart")
	}
	delta := validate.Delta(c.FormValue("change"))
	ct := readCart(c)
	writeCart(c, cart.SetQuantity(ct, id, delta))
	return c.Redirect("/cart")
}
