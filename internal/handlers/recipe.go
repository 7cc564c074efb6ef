package handlers

import (
	"github.com/EL-K-Code/recipe-app-api/internal/services"
	"github.com/EL-K-Code/recipe-app-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe routes. All routes sit behind the auth
// middleware.
type RecipeHandler struct {
	DB *gorm.DB
}

// ListRecipes handles GET /api/recipes
// @Summary List the principal's recipes
// @Description Owner-scoped recipe summaries, newest first. Optional tag/ingredient id filters.
// @Tags Recipes
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids"
// @Param ingredients query string false "Comma-separated ingredient ids"
// @Success 200 {array} handlers.RecipeSummaryResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	filters := services.RecipeFilters{
		TagIDs:        parseIDList(c, "tags"),
		IngredientIDs: parseIDList(c, "ingredients"),
	}

	recipes, err := services.ListRecipes(h.DB, userID, filters)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]RecipeSummaryResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, serializeRecipeSummary(&recipes[i]))
	}

	return utils.SuccessResponse(c, out, fiber.StatusOK)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get one recipe
// @Tags Recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe id"
// @Success 200 {object} handlers.RecipeDetailResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	recipe, err := services.GetRecipe(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeRecipeDetail(recipe), fiber.StatusOK)
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Description Create a recipe with optional nested tag/ingredient descriptors, reconciled against the principal's rows.
// @Tags Recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body services.RecipeInput true "Recipe fields"
// @Success 201 {object} handlers.RecipeDetailResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	var in services.RecipeInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	recipe, err := services.CreateRecipe(h.DB, userID, in)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeRecipeDetail(recipe), fiber.StatusCreated)
}

// UpdateRecipe handles PATCH /api/recipes/:id
// @Summary Partially update a recipe
// @Description Absent fields stay untouched. A present tags/ingredients key replaces that whole reference set.
// @Tags Recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe id"
// @Param payload body services.RecipeUpdateInput true "Fields to update"
// @Success 200 {object} handlers.RecipeDetailResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	var in services.RecipeUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	recipe, err := services.UpdateRecipe(h.DB, userID, id, in)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeRecipeDetail(recipe), fiber.StatusOK)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Removes the recipe; referenced tags and ingredients survive.
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe id"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	if err := services.DeleteRecipe(h.DB, userID, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
