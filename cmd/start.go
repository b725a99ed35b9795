package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"openshelf/core/config"
	"openshelf/core/database"
	"openshelf/core/loader"
	"openshelf/core/logger"
	"openshelf/core/middleware/auth"
	"openshelf/core/middleware/rayid"
	"openshelf/core/storage"
	"openshelf/feature/cache"
	cacheModels "openshelf/feature/cache/models"
	catalogModels "openshelf/feature/catalog/models"
	"openshelf/feature/image"
	"openshelf/feature/proxy"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "openshelf/docs/swagger"
)

// @title OpenShelf API
// @version 1.0
// @description API for serving and reconciling cached external book content.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the OpenShelf server",
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

		// 3. Connect to Database (Optional)
		// Without it the cache feature stays offline; proxy and image
		// endpoints keep working.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database")
			if err := db.AutoMigrate(&cacheModels.CacheEntry{}, &catalogModels.NativeBook{}); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage (Optional)
		// Cover ingest is skipped when object storage is unreachable.
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage connection failed", zap.Error(err))
		} else {
			store = client
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		proxyFeature := proxy.NewFeature(cfg.Proxy, logg)
		mgr.Register(proxyFeature)

		imageFeature := image.NewFeature(cfg.Image, store, cfg.Storage.Bucket, proxyFeature.Fetcher(), logg)
		mgr.Register(imageFeature)

		if db != nil {
			// Cover ingest is wired in only when storage came up too.
			var covers cache.CoverIngester
			if ingester := imageFeature.Covers(); ingester != nil {
				if err := ingester.Ensure(context.Background()); err != nil {
					logg.Warn("Covers bucket unavailable", zap.Error(err))
				} else {
					covers = ingester
				}
			}
			mgr.Register(cache.NewFeature(cfg.Cache, db, covers, logg))
		} else {
			logg.Warn("Cache feature disabled: no database connection")
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
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
