package handlers

import (
	"github.com/EL-K-Code/recipe-app-api/internal/services"
	"github.com/EL-K-Code/recipe-app-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IngredientHandler handles ingredient routes
type IngredientHandler struct {
	DB *gorm.DB
}

// ListIngredients handles GET /api/ingredients
// @Summary List the principal's ingredients
// @Description Owner-scoped ingredients sorted by name descending. assigned_only=1 restricts to ingredients on at least one recipe.
// @Tags Ingredients
// @Produce json
// @Security BearerAuth
// @Param assigned_only query bool false "Only ingredients assigned to recipes"
// @Success 200 {array} handlers.IngredientResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ingredients [get]
func (h *IngredientHandler) ListIngredients(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	ingredients, err := services.ListIngredients(h.DB, userID, c.QueryBool("assigned_only"))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeIngredients(ingredients), fiber.StatusOK)
}

// CreateIngredient handles POST /api/ingredients
// @Summary Create an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body services.NameInput true "Ingredient name"
// @Success 201 {object} handlers.IngredientResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ingredients [post]
func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	var in services.NameInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	ingredient, err := services.CreateIngredient(h.DB, userID, in.Name)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, IngredientResponse{ID: ingredient.IngredientID, Name: ingredient.Name}, fiber.StatusCreated)
}

// UpdateIngredient handles PATCH /api/ingredients/:id
// @Summary Rename an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient id"
// @Param payload body services.NameInput true "New name"
// @Success 200 {object} handlers.IngredientResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	var in services.NameInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	ingredient, err := services.RenameIngredient(h.DB, userID, id, in.Name)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, IngredientResponse{ID: ingredient.IngredientID, Name: ingredient.Name}, fiber.StatusOK)
}

// DeleteIngredient handles DELETE /api/ingredients/:id
// @Summary Delete an ingredient
// @Tags Ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient id"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	if err := services.DeleteIngredient(h.DB, userID, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
