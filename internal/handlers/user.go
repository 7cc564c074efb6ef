package handlers

import (
	"time"

	"github.com/EL-K-Code/recipe-app-api/internal/config"
	"github.com/EL-K-Code/recipe-app-api/internal/services"
	"github.com/EL-K-Code/recipe-app-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles account and profile routes
type UserHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// CreateUser handles POST /api/user
// @Summary Register a user account
// @Description Create a new user account with email and password
// @Tags User
// @Accept json
// @Produce json
// @Param payload body services.RegisterInput true "Account fields"
// @Success 201 {object} handlers.UserResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /user [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	user, err := services.RegisterUser(h.DB, in, h.Cfg.BcryptCost, h.Cfg.MinPasswordLen)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, serializeUser(user), fiber.StatusCreated)
}

// CreateToken handles POST /api/user/token
// @Summary Issue a bearer token
// @Description Exchange valid credentials for a bearer token
// @Tags User
// @Accept json
// @Produce json
// @Param payload body object{email=string,password=string} true "Credentials"
// @Success 200 {object} handlers.TokenResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /user/token [post]
func (h *UserHandler) CreateToken(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	user, err := services.AuthenticateUser(h.DB, in.Email, in.Password)
	if err != nil {
		return serviceError(c, err)
	}

	ttl := time.Duration(h.Cfg.TokenTTLHours) * time.Hour
	token, err := services.IssueToken(h.Cfg.JWTSecret, user.UserID, user.Email, ttl)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, TokenResponse{Token: token}, fiber.StatusOK)
}

// GetMe handles GET /api/user/me
// @Summary Get the authenticated profile
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /user/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	user, err := services.GetUser(h.DB, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, ProfileResponse{Email: user.Email, Name: user.Name}, fiber.StatusOK)
}

// UpdateMe handles PATCH /api/user/me
// @Summary Update the authenticated profile
// @Description Partially update name and/or password
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} handlers.ProfileResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /user/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unauthenticated")
	}

	var in services.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "validation")
	}

	user, err := services.UpdateProfile(h.DB, userID, in, h.Cfg.BcryptCost, h.Cfg.MinPasswordLen)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, ProfileResponse{Email: user.Email, Name: user.Name}, fiber.StatusOK)
}
