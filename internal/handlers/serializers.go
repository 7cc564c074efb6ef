package handlers

import (
	"github.com/EL-K-Code/recipe-app-api/internal/models"
)

// UserResponse is the public shape of a user account. The credential hash
// never leaves the service.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileResponse is the authenticated user's own profile view.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// TagResponse is the public shape of a tag.
type TagResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the public shape of an ingredient.
type IngredientResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// RecipeSummaryResponse is the list view of a recipe. Ingredient detail is
// omitted for payload economy; GetRecipe serves the full view.
type RecipeSummaryResponse struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	TimeMinutes int           `json:"time_minutes"`
	Price       string        `json:"price"`
	Link        string        `json:"link"`
	Tags        []TagResponse `json:"tags"`
}

// RecipeDetailResponse is the full view of a recipe.
type RecipeDetailResponse struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       string               `json:"price"`
	Description string               `json:"description"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func serializeUser(u *models.User) UserResponse {
	return UserResponse{ID: u.UserID, Email: u.Email, Name: u.Name}
}

func serializeTags(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.TagID, Name: t.Name})
	}
	return out
}

func serializeIngredients(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, IngredientResponse{ID: i.IngredientID, Name: i.Name})
	}
	return out
}

func serializeRecipeSummary(r *models.Recipe) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:          r.RecipeID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        serializeTags(r.Tags),
	}
}

func serializeRecipeDetail(r *models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          r.RecipeID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Description: r.Description,
		Link:        r.Link,
		Tags:        serializeTags(r.Tags),
		Ingredients: serializeIngredients(r.Ingredients),
	}
}
