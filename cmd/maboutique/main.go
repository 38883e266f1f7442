package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"

	"maboutique/internal/config"
	"maboutique/internal/http/handlers"
	applog "maboutique/internal/log"
	"maboutique/internal/repos"
	"maboutique/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// The cache is fail-open: an unreachable redis only costs store reads,
	// so startup proceeds either way.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			applog.Warn("cache.unavailable", err, map[string]any{"addr": cfg.RedisAddr})
		}
		cancel()
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Une erreur est survenue. Veuillez réessayer.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Une erreur est survenue. Veuillez réessayer.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Vérification de sécurité échouée. Veuillez rafraîchir la page."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, rdb, cfg)

	// Storefront
	app.Get("/", deps.HomeHandler.Index)
	app.Post("/ask", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.HomeHandler.AskAI)
	app.Post("/cart/add", deps.HomeHandler.AddToCart)

	// Product pages
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Post("/product/:id/cart", deps.ProductHandler.AddToCart)
	app.Post("/product/:id/review", handlers.RequireUser(authSvc), deps.ProductHandler.SubmitReview)

	// Cart (cookie-backed, no server state)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/update", deps.CartHandler.UpdateQuantity)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Trop de tentatives. Veuillez réessayer plus tard."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/products", deps.AdminProductHandler.Index)
	admin.Get("/products/new", deps.AdminProductHandler.CreateForm)
	admin.Post("/products", deps.AdminProductHandler.Create)
	admin.Get("/products/:id/edit", deps.AdminProductHandler.EditForm)
	admin.Post("/products/:id", deps.AdminProductHandler.Edit)
	admin.Get("/products/:id/delete", deps.AdminProductHandler.DeleteForm)
	admin.Post("/products/:id/delete", deps.AdminProductHandler.Delete)
	admin.Get("/categories", deps.AdminCategoryHandler.Index)
	admin.Get("/categories/new", deps.AdminCategoryHandler.CreateForm)
	admin.Post("/categories", deps.AdminCategoryHandler.Create)
	admin.Get("/categories/:id", deps.AdminCategoryHandler.Details)
	admin.Post("/categories/:id/delete", deps.AdminCategoryHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page introuvable"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
