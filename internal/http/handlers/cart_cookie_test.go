package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"maboutique/internal/cart"
	"maboutique/internal/http/handlers"
)

func cookieValue(t *testing.T, resp *http.Response, name string) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			v, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatalf("unescape cookie: %v", err)
			}
			return v
		}
	}
	return ""
}

func postForm(t *testing.T, app *fiber.App, path, form, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cart.CookieName, Value: url.QueryEscape(cookie)})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	return resp
}

func cartApp() *fiber.App {
	app := fiber.New()
	home := &handlers.HomeHandler{}
	cartH := &handlers.CartHandler{}
	app.Post("/cart/add", home.AddToCart)
	app.Post("/cart/remove", cartH.Remove)
	app.Post("/cart/update", cartH.UpdateQuantity)
	return app
}

func TestAddToCartWritesCookie(t *testing.T) {
	app := cartApp()

	resp := postForm(t, app, "/cart/add", "id=5", "")
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}

	got := cart.Decode(cookieValue(t, resp, cart.CookieName))
	want := cart.Cart{{ProductID: 5, Quantity: 1}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("cookie cart = %+v, want %+v", got, want)
	}
}

func TestAddToCartIncrementsExistingEntry(t *testing.T) {
	app := cartApp()

	resp := postForm(t, app, "/cart/add", "id=5", `[{"ProduitId":5,"Quantite":2}]`)

	got := cart.Decode(cookieValue(t, resp, cart.CookieName))
	if len(got) != 1 || got[0].Quantity != 3 {
		t.Fatalf("cookie cart = %+v, want qty 3", got)
	}
}

func TestUpdateQuantityClampsAtFloor(t *testing.T) {
	app := cartApp()

	resp := postForm(t, app, "/cart/update", "id=5&change=-5", `[{"ProduitId":5,"Quantite":1}]`)

	got := cart.Decode(cookieValue(t, resp, cart.CookieName))
	if len(got) != 1 || got[0].Quantity != 1 {
		t.Fatalf("cookie cart = %+v, want qty floored at 1", got)
	}
}

func TestRemoveRewritesWholeCookie(t *testing.T) {
	app := cartApp()

	resp := postForm(t, app, "/cart/remove", "id=5",
		`[{"ProduitId":5,"Quantite":2},{"ProduitId":7,"Quantite":1}]`)

	got := cart.Decode(cookieValue(t, resp, cart.CookieName))
	if len(got) != 1 || got[0].ProductID != 7 {
		t.Fatalf("cookie cart = %+v, want only product 7", got)
	}
}

func TestMalformedCookieTreatedAsEmptyCart(t *testing.T) {
	app := cartApp()

	resp := postForm(t, app, "/cart/add", "id=9", `{{{not json`)

	got := cart.Decode(cookieValue(t, resp, cart.CookieName))
	if len(got) != 1 || got[0].ProductID != 9 || got[0].Quantity != 1 {
		t.Fatalf("cookie cart = %+v, want fresh single-entry cart", got)
	}
}
