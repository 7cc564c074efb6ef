package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EL-K-Code/recipe-app-api/internal/config"
	"github.com/EL-K-Code/recipe-app-api/internal/handlers"
	"github.com/EL-K-Code/recipe-app-api/internal/middleware"
	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
)

const testJWTSecret = "handler-test-secret"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// One connection so every statement sees the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      testJWTSecret,
		TokenTTLHours:  1,
		BcryptCost:     bcrypt.MinCost,
		MinPasswordLen: 5,
	}
}

// setupTestApp builds a Fiber app with the full route table, matching the
// server wiring
func setupTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	cfg := testConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
		},
	})

	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	tagHandler := &handlers.TagHandler{DB: db}
	ingredientHandler := &handlers.IngredientHandler{DB: db}

	auth := middleware.AuthRequired(cfg.JWTSecret)

	api := app.Group("/api")
	api.Post("/user", userHandler.CreateUser)
	api.Post("/user/token", userHandler.CreateToken)
	api.Get("/user/me", auth, userHandler.GetMe)
	api.Patch("/user/me", auth, userHandler.UpdateMe)

	api.Get("/recipes", auth, recipeHandler.ListRecipes)
	api.Post("/recipes", auth, recipeHandler.CreateRecipe)
	api.Get("/recipes/:id", auth, recipeHandler.GetRecipe)
	api.Patch("/recipes/:id", auth, recipeHandler.UpdateRecipe)
	api.Delete("/recipes/:id", auth, recipeHandler.DeleteRecipe)

	api.Get("/tags", auth, tagHandler.ListTags)
	api.Post("/tags", auth, tagHandler.CreateTag)
	api.Patch("/tags/:id", auth, tagHandler.UpdateTag)
	api.Delete("/tags/:id", auth, tagHandler.DeleteTag)

	api.Get("/ingredients", auth, ingredientHandler.ListIngredients)
	api.Post("/ingredients", auth, ingredientHandler.CreateIngredient)
	api.Patch("/ingredients/:id", auth, ingredientHandler.UpdateIngredient)
	api.Delete("/ingredients/:id", auth, ingredientHandler.DeleteIngredient)

	return app
}

// registerUser creates an account through the API and returns a bearer token
// for it
func registerUser(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/user", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test Name",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201 registering user, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/user/token", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200 issuing token, got %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp.Body, &body)
	if body.Token == "" {
		t.Fatal("Expected a non-empty token")
	}

	return body.Token
}

// doJSON executes a request against the test app, marshaling the payload and
// attaching the bearer token when given
func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	return resp
}

func decodeBody(t *testing.T, body io.Reader, out interface{}) {
	t.Helper()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
