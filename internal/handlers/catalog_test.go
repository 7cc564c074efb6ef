package handlers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestTagEndpointsRequireAuth(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	resp := doJSON(t, app, "GET", "/api/tags", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestTagEndpointRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "test@example.com", "testpass123")

	resp := doJSON(t, app, "POST", "/api/tags", token, map[string]string{"name": "After Dinner"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var created map[string]interface{}
	decodeBody(t, resp.Body, &created)
	id := int(created["id"].(float64))

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/tags/%d", id), token, map[string]string{"name": "Dessert"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200 renaming, got %d", resp.StatusCode)
	}

	var renamed map[string]interface{}
	decodeBody(t, resp.Body, &renamed)
	if renamed["name"] != "Dessert" || int(renamed["id"].(float64)) != id {
		t.Errorf("Expected same id with new name, got %v", renamed)
	}

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/tags/%d", id), token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/tags", token, nil)
	var list []map[string]interface{}
	decodeBody(t, resp.Body, &list)
	if len(list) != 0 {
		t.Errorf("Expected no tags after delete, got %v", list)
	}
}

func TestListTagsEndpointOrdering(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "test@example.com", "testpass123")

	for _, name := range []string{"Dessert", "Vegan"} {
		resp := doJSON(t, app, "POST", "/api/tags", token, map[string]string{"name": name})
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
	}

	resp := doJSON(t, app, "GET", "/api/tags", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var list []map[string]interface{}
	decodeBody(t, resp.Body, &list)
	if len(list) != 2 || list[0]["name"] != "Vegan" || list[1]["name"] != "Dessert" {
		t.Errorf("Expected name-descending order, got %v", list)
	}
}

func TestListTagsEndpointAssignedOnly(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "test@example.com", "testpass123")

	resp := doJSON(t, app, "POST", "/api/tags", token, map[string]string{"name": "Unused"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	payload := sampleRecipePayload()
	payload["tags"] = []map[string]string{{"name": "Dinner"}}
	createRecipeViaAPI(t, app, token, payload)

	resp = doJSON(t, app, "GET", "/api/tags?assigned_only=1", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var list []map[string]interface{}
	decodeBody(t, resp.Body, &list)
	if len(list) != 1 || list[0]["name"] != "Dinner" {
		t.Errorf("Expected only the assigned tag, got %v", list)
	}
}

func TestRenameTagEndpointCrossOwnerIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "owner@example.com", "testpass123")
	intruderToken := registerUser(t, app, "intruder@example.com", "testpass123")

	resp := doJSON(t, app, "POST", "/api/tags", token, map[string]string{"name": "Private"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created map[string]interface{}
	decodeBody(t, resp.Body, &created)
	id := int(created["id"].(float64))

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/tags/%d", id), intruderToken, map[string]string{"name": "Stolen"})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404 for another owner's tag, got %d", resp.StatusCode)
	}
}

func TestIngredientEndpointRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "test@example.com", "testpass123")

	resp := doJSON(t, app, "POST", "/api/ingredients", token, map[string]string{"name": "Kale"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var created map[string]interface{}
	decodeBody(t, resp.Body, &created)
	id := int(created["id"].(float64))

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/api/ingredients/%d", id), token, map[string]string{"name": "Collard Greens"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200 renaming, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/ingredients", token, nil)
	var list []map[string]interface{}
	decodeBody(t, resp.Body, &list)
	if len(list) != 1 || list[0]["name"] != "Collard Greens" {
		t.Errorf("Expected the renamed ingredient, got %v", list)
	}

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/ingredients/%d", id), token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}
}

func TestCreateIngredientEndpointDuplicate(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)
	token := registerUser(t, app, "test@example.com", "testpass123")

	resp := doJSON(t, app, "POST", "/api/ingredients", token, map[string]string{"name": "Salt"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/ingredients", token, map[string]string{"name": "Salt"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for a duplicate name, got %d", resp.StatusCode)
	}
}
