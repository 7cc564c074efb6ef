package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/EL-K-Code/recipe-app-api/internal/config"
	"github.com/EL-K-Code/recipe-app-api/internal/database"
	"github.com/EL-K-Code/recipe-app-api/internal/handlers"
	"github.com/EL-K-Code/recipe-app-api/internal/logger"
	"github.com/EL-K-Code/recipe-app-api/internal/middleware"
	"github.com/EL-K-Code/recipe-app-api/internal/types"

	_ "github.com/EL-K-Code/recipe-app-api/docs/api" // Swagger docs
)

// @title Recipe API
// @version 1.0.0
// @description Ownership-scoped recipe, tag, and ingredient service

// @contact.name API Support
// @contact.url https://github.com/EL-K-Code/recipe-app-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logger.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zap.L().Fatal("failed to run migrations", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: logger.GetLogWriter(),
	}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("recipe_api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Handlers
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	tagHandler := &handlers.TagHandler{DB: db}
	ingredientHandler := &handlers.IngredientHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	auth := middleware.AuthRequired(cfg.JWTSecret)

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// User routes (account creation and token issuance are public)
	api.Post("/user", userHandler.CreateUser)
	api.Post("/user/token", userHandler.CreateToken)
	api.Get("/user/me", auth, userHandler.GetMe)
	api.Patch("/user/me", auth, userHandler.UpdateMe)

	// Recipe routes
	api.Get("/recipes", auth, recipeHandler.ListRecipes)
	api.Post("/recipes", auth, recipeHandler.CreateRecipe)
	api.Get("/recipes/:id", auth, recipeHandler.GetRecipe)
	api.Patch("/recipes/:id", auth, recipeHandler.UpdateRecipe)
	api.Delete("/recipes/:id", auth, recipeHandler.DeleteRecipe)

	// Tag routes
	api.Get("/tags", auth, tagHandler.ListTags)
	api.Post("/tags", auth, tagHandler.CreateTag)
	api.Patch("/tags/:id", auth, tagHandler.UpdateTag)
	api.Delete("/tags/:id", auth, tagHandler.DeleteTag)

	// Ingredient routes
	api.Get("/ingredients", auth, ingredientHandler.ListIngredients)
	api.Post("/ingredients", auth, ingredientHandler.CreateIngredient)
	api.Patch("/ingredients/:id", auth, ingredientHandler.UpdateIngredient)
	api.Delete("/ingredients/:id", auth, ingredientHandler.DeleteIngredient)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zap.L().Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	zap.L().Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.L().Fatal("failed to start server", zap.Error(err))
	}

	zap.L().Info("server stopped")
}

// customErrorHandler handles errors escaping the handlers, including typed
// errors returned by middleware.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var ce *types.CustomError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
