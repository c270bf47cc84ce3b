package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examportal/backend/cache"
	"examportal/backend/middleware"
	"examportal/backend/routes"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

// @title Exam Priority Portal API
// @version 1.0.0
// @description Exam preparation backend: curriculum by priority, quizzes and student progress.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func runServer(cmd *cobra.Command) error {
	// Load configuration and initialize database
	cfg, logger, db, err := bootstrap()
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}
	defer func() {
		if err := utils.CloseDB(db); err != nil {
			logger.Printf("Error closing database: %v", err)
		}
	}()

	var limiter middleware.AttemptLimiter
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		c, err := cache.New(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Printf("Login throttling disabled: %v", err)
		} else {
			defer c.Close()
			limiter = cache.NewLoginLimiter(c, cfg.LoginMaxAttempts, cfg.LoginWindow)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Exam Priority Portal",
		ErrorHandler: utils.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, logger, limiter)

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Server running on :%s", cfg.ServerPort)
		errCh <- app.Listen(":" + cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Printf("Received %s, shutting down", sig)
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Printf("Error during shutdown: %v", err)
	}
	return nil
}
