// Package app wires the store, services and HTTP routes together.
package app

import (
	"fmt"
	"log"
	"time"

	"swiftstock/internal/config"
	"swiftstock/internal/database"
	"swiftstock/internal/handlers"
	"swiftstock/internal/middleware"
	"swiftstock/internal/repositories"
	"swiftstock/internal/services"
	"swiftstock/internal/session"
	"swiftstock/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// App holds every long-lived component of a running process.
type App struct {
	Config     config.Config
	Provider   *database.Provider
	Auth       *services.AuthService
	Categories *services.CategoryService
	Suppliers  *services.SupplierService
	Products   *services.ProductService
	Server     *fiber.App

	mqClient *rabbitmq.Client
}

// New opens the store, ensures every table, seeds the default account and
// builds the services and routes.
func New(cfg config.Config) (*App, error) {
	provider := database.NewProvider(database.Config{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseDSN})
	db, err := provider.Acquire()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Provider: provider}
	if err := database.EnsureAll(db); err != nil {
		a.Close()
		return nil, err
	}

	hasher, err := services.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Auth = services.NewAuthService(
		repositories.NewGORMAccountRepository(db),
		database.NewSchema(db),
		session.NewFileStore(cfg.SessionFile),
		services.AuthOptions{Hasher: hasher, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL},
	)
	if err := a.Auth.Bootstrap(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to bootstrap accounts: %w", err)
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mqClient = mqClient
		publisher = mqClient
	}

	a.Categories = services.NewCategoryService(repositories.NewGORMCategoryRepository(db), publisher)
	a.Suppliers = services.NewSupplierService(repositories.NewGORMSupplierRepository(db), publisher)
	a.Products = services.NewProductService(repositories.NewGORMProductRepository(db), publisher)
	a.Server = a.newServer()
	return a, nil
}

func (a *App) newServer() *fiber.App {
	server := fiber.New(fiber.Config{DisableStartupMessage: true})
	server.Use(logger.New(logger.Config{Output: log.Writer()}))

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": a.mqClient != nil,
		})
	})

	apiV1 := server.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(a.Auth)
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(a.Auth))
	authHandler.RegisterProtectedRoutes(protectedRoutes)
	handlers.NewCategoryHandler(a.Categories).RegisterRoutes(protectedRoutes)
	handlers.NewSupplierHandler(a.Suppliers).RegisterRoutes(protectedRoutes)
	handlers.NewProductHandler(a.Products).RegisterRoutes(protectedRoutes)
	return server
}

// Close shuts down the HTTP server and releases the broker connection and
// the store.
func (a *App) Close() error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down server: %w", err))
		}
	}
	if a.mqClient != nil {
		if err := a.mqClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Provider.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during shutdown: %v", errs)
	}
	return nil
}
