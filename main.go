package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/tallercr/workshop-api/cache"
	"github.com/tallercr/workshop-api/config"
	"github.com/tallercr/workshop-api/controllers"
	"github.com/tallercr/workshop-api/cron"
	"github.com/tallercr/workshop-api/db"
	"github.com/tallercr/workshop-api/routes"
	"github.com/tallercr/workshop-api/storage"
	"github.com/tallercr/workshop-api/store"
	"github.com/tallercr/workshop-api/utils"
)

const mediaCacheTTL = 5 * time.Minute

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.IsProduction())
	log := utils.GetLogger()
	defer log.Sync()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	log.Info("database connection established")

	mediaStorage, err := storage.NewClient(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal("cloudinary setup failed", zap.Error(err))
	}

	mediaCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB, mediaCacheTTL)
	if err != nil {
		// Media listings degrade to direct storage reads without redis.
		log.Warn("redis unavailable, media cache disabled", zap.Error(err))
		mediaCache = nil
	}

	var mailer *utils.Mailer
	if cfg.SMTPHost != "" {
		mailer = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	}

	quoteStore := store.NewGormQuoteStore(database)

	authCtl := controllers.NewAuthController(database, cfg.JWTSecret, log)
	userCtl := controllers.NewUserController(database)
	adminCtl := controllers.NewAdminController(database)
	quoteCtl := controllers.NewQuoteController(quoteStore, mailerOrNil(mailer), log)
	availabilityCtl := controllers.NewAvailabilityController(quoteStore)
	productCtl := controllers.NewProductController(database)
	categoryCtl := controllers.NewCategoryController(database)
	mediaCtl := controllers.NewMediaController(mediaStorage, mediaCache, log)

	scheduler := cron.NewScheduler(quoteStore, cronMailerOrNil(mailer), log)
	if _, err := scheduler.Start(); err != nil {
		log.Fatal("cron setup failed", zap.Error(err))
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,X-Requested-With,Origin,Accept",
		AllowCredentials: true,
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	routes.SetupAuthRoutes(app, authCtl, userCtl, adminCtl, cfg.JWTSecret)
	routes.SetupQuoteRoutes(app, quoteCtl, availabilityCtl)
	routes.SetupCatalogRoutes(app, productCtl, categoryCtl, cfg.JWTSecret)
	routes.SetupMediaRoutes(app, mediaCtl, cfg.JWTSecret)

	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// mailerOrNil keeps a typed nil from masquerading as a live Sender.
func mailerOrNil(m *utils.Mailer) controllers.Sender {
	if m == nil {
		return nil
	}
	return m
}

func cronMailerOrNil(m *utils.Mailer) cron.Sender {
	if m == nil {
		return nil
	}
	return m
}
