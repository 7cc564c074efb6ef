package handlers

import (
	"github.com/EL-K-Code/recipe-app-api/internal/services"
	"github.com/EL-K-Code/recipe-app-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TagHandler handles tag routes
type TagHandler struct {
	DB *gorm.DB
}

// ListTags handles GET /api/tags
// @Summary List the principal's tags
// @Description Owner-scoped tags sorted by name descending. assigned_only=1 restricts to tags on at least one recipe.
// @Tags Tags
// @Produce json
// @Security BearerAuth
// @Param assigned_only query bool false "Only tags assigned to recipes"
// @Success 200 {array} handlers.TagResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /tags [get]
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	tags, err := services.ListTags(h.DB, userID, c.QueryBool("assigned_only"))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeTags(tags), fiber.StatusOK)
}

// CreateTag handles POST /api/tags
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body services.NameInput true "Tag name"
// @Success 201 {object} handlers.TagResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /tags [post]
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	var in services.NameInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	tag, err := services.CreateTag(h.DB, userID, in.Name)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, TagResponse{ID: tag.TagID, Name: tag.Name}, fiber.StatusCreated)
}

// UpdateTag handles PATCH /api/tags/:id
// @Summary Rename a tag
// @Description Renames the tag; recipes referencing it follow the identity, not the name.
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag id"
// @Param payload body services.NameInput true "New name"
// @Success 200 {object} handlers.TagResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [patch]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
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

	tag, err := services.RenameTag(h.DB, userID, id, in.Name)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, TagResponse{ID: tag.TagID, Name: tag.Name}, fiber.StatusOK)
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete a tag
// @Description Removes the tag and its recipe references; recipes themselves are untouched.
// @Tags Tags
// @Security BearerAuth
// @Param id path int true "Tag id"
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return serviceError(c, err)
	}

	if err := services.DeleteTag(h.DB, userID, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
