package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-recovery/core/config"
	"catalog-recovery/core/database"
	"catalog-recovery/core/loader"
	"catalog-recovery/core/logger"
	"catalog-recovery/core/middleware/auth"
	"catalog-recovery/core/middleware/rayid"
	"catalog-recovery/core/storage"

	"catalog-recovery/feature/browse"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only browse view of the catalog",
	Long:  `Starts the HTTP server exposing the recovered albums and files for verification.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		if (cfg.Database.Driver == "" || cfg.Database.Driver == database.DriverSQLite) && cfg.Database.Path == "" {
			cfg.Database.Path = detectDatabasePath()
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage
		if cfg.Storage.Backend == "" || cfg.Storage.Backend == storage.BackendLocal {
			if cfg.Storage.RootDir == "" {
				cfg.Storage.RootDir = detectUploadsDir()
			}
		}
		src, err := storage.NewSource(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage source", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(browse.NewFeature(src, logg, db))

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
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API when a key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default: config)")
	RootCmd.AddCommand(serveCmd)
}
