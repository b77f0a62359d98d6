package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tradepost/internal/config"
	"tradepost/internal/http/handlers"
	applog "tradepost/internal/log"
	"tradepost/internal/repos"
)

func main() {
	cfg := config.Load()

	if err := applog.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatal(err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db)
	api := app.Group("/api/v1")

	// Search routes go first so fiber doesn't swallow them as :id params.
	api.Get("/items/find", deps.ItemSearchHandler.Find)
	api.Get("/items/find_all", deps.ItemSearchHandler.FindAll)
	api.Get("/merchants/find", deps.MerchantSearchHandler.Find)
	api.Get("/merchants/find_all", deps.MerchantSearchHandler.FindAll)
	api.Get("/merchants/most_items", deps.MerchantsHandler.MostItems)
	api.Get("/revenue/merchants", deps.RevenueHandler.TopMerchants)

	api.Get("/items", deps.ItemsHandler.Index)
	api.Post("/items", deps.ItemsHandler.Create)
	api.Get("/items/:id", deps.ItemsHandler.Show)
	api.Patch("/items/:id", deps.ItemsHandler.Update)
	api.Delete("/items/:id", deps.ItemsHandler.Destroy)
	api.Get("/items/:id/merchant", deps.MerchantsHandler.ShowForItem)

	api.Get("/merchants", deps.MerchantsHandler.Index)
	api.Get("/merchants/:id", deps.MerchantsHandler.Show)
	api.Get("/merchants/:id/items", deps.MerchantsHandler.ItemsIndex)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not Found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
