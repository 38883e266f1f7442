package handlers

import (
	"net/url"
	"time"

	"maboutique/internal/cart"
	applog "maboutique/internal/log"

	"github.com/gofiber/fiber/v2"
)

// readCart decodes the cart cookie. The value is URL-escaped on the wire
// because the JSON payload contains characters a cookie value may not carry.
func readCart(c *fiber.Ctx) cart.Cart {
	raw := c.Cookies(cart.CookieName)
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	return cart.Decode(raw)
}

// writeCart rewrites the whole cookie and refreshes its 7-day horizon,
// whatever the prior expiry was.
func writeCart(c *fiber.Ctx, ct cart.Cart) {
	val, err := cart.Encode(ct)
	if err != nil {
		applog.Error(c, "cart.encode.fail", err, nil)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cart.CookieName,
		Value:    url.QueryEscape(val),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(cart.CookieDays * 24 * time.Hour),
	})
}
