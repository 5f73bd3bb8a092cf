package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pantry-tracker/core/config"
	"pantry-tracker/core/database"
	"pantry-tracker/core/loader"
	"pantry-tracker/core/logger"
	"pantry-tracker/core/middleware/auth"
	"pantry-tracker/core/middleware/rayid"
	"pantry-tracker/core/storage"
	"pantry-tracker/core/vision"

	"pantry-tracker/feature/inventory"
	"pantry-tracker/feature/photo"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "pantry-tracker/docs/swagger"
)

// @title Pantry Tracker API
// @version 1.0
// @description API for tracking food inventory from shelf photos.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pantry tracker server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required, the inventory lives here)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := inventory.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate items table", zap.Error(err))
		}
		logg.Info("Connected to inventory database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitBytes(),
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Vision Classifier
		classifier := vision.NewClient(cfg.AI)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features. Photo reconciles into the inventory service,
		// so inventory is constructed first.
		invFeature := inventory.NewFeature(db, logg)
		mgr.Register(invFeature)
		mgr.Register(photo.NewFeature(store, cfg.Storage.Bucket, classifier, invFeature.Service(), logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
