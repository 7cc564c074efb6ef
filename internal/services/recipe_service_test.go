package services_test

import (
	"testing"

	"github.com/EL-K-Code/recipe-app-api/internal/services"
)

func TestListRecipesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	first, err := services.CreateRecipe(db, user.UserID, sampleRecipeInput())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	in := sampleRecipeInput()
	in.Title = "Second recipe"
	second, err := services.CreateRecipe(db, user.UserID, in)
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := services.ListRecipes(db, user.UserID, services.RecipeFilters{})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].RecipeID != second.RecipeID || recipes[1].RecipeID != first.RecipeID {
		t.Errorf("Expected newest first, got ids %d, %d", recipes[0].RecipeID, recipes[1].RecipeID)
	}
}

func TestListRecipesLimitedToUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")
	other := createTestUser(t, db, "other@example.com")

	if _, err := services.CreateRecipe(db, user.UserID, sampleRecipeInput()); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if _, err := services.CreateRecipe(db, other.UserID, sampleRecipeInput()); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := services.ListRecipes(db, user.UserID, services.RecipeFilters{})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 1 {
		t.Fatalf("Expected 1 recipe for user, got %d", len(recipes))
	}
	if recipes[0].UserID != user.UserID {
		t.Errorf("Listed another owner's recipe")
	}
}

func TestListRecipesFilterByTag(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	curry := sampleRecipeInput()
	curry.Title = "Thai Prawn Curry"
	curry.Tags = []services.NameInput{{Name: "Thai"}}
	withTag, err := services.CreateRecipe(db, user.UserID, curry)
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if _, err := services.CreateRecipe(db, user.UserID, sampleRecipeInput()); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := services.ListRecipes(db, user.UserID, services.RecipeFilters{
		TagIDs: []uint64{withTag.Tags[0].TagID},
	})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 1 || recipes[0].RecipeID != withTag.RecipeID {
		t.Errorf("Expected only the tagged recipe, got %d results", len(recipes))
	}
}

func TestListRecipesFilterByIngredient(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	in := sampleRecipeInput()
	in.Ingredients = []services.NameInput{{Name: "Prawns"}}
	withIngredient, err := services.CreateRecipe(db, user.UserID, in)
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if _, err := services.CreateRecipe(db, user.UserID, sampleRecipeInput()); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := services.ListRecipes(db, user.UserID, services.RecipeFilters{
		IngredientIDs: []uint64{withIngredient.Ingredients[0].IngredientID},
	})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 1 || recipes[0].RecipeID != withIngredient.RecipeID {
		t.Errorf("Expected only the matching recipe, got %d results", len(recipes))
	}
}

func TestGetRecipeDetail(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	in := sampleRecipeInput()
	in.Tags = []services.NameInput{{Name: "Thai"}}
	in.Ingredients = []services.NameInput{{Name: "Prawns"}}
	created, err := services.CreateRecipe(db, user.UserID, in)
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipe, err := services.GetRecipe(db, user.UserID, created.RecipeID)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}

	if len(recipe.Tags) != 1 || len(recipe.Ingredients) != 1 {
		t.Errorf("Expected full detail with tags and ingredients, got %d tags, %d ingredients",
			len(recipe.Tags), len(recipe.Ingredients))
	}
}

func TestGetRecipeNotOwnedIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")

	recipe, err := services.CreateRecipe(db, owner.UserID, sampleRecipeInput())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	_, err = services.GetRecipe(db, intruder.UserID, recipe.RecipeID)
	assertNotFoundError(t, err)
}

func TestGetRecipeAbsentIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	_, err := services.GetRecipe(db, user.UserID, 424242)
	assertNotFoundError(t, err)
}
