package services

import (
	"errors"
	"net/mail"

	"github.com/EL-K-Code/recipe-app-api/internal/models"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is the payload for creating a user account.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UpdateProfileInput is the payload for partial profile updates. Nil fields
// are left untouched.
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// RegisterUser validates the input, hashes the password, and creates the
// user row. A duplicate email reports a validation error rather than a raw
// constraint failure.
func RegisterUser(db *gorm.DB, in RegisterInput, bcryptCost, minPasswordLen int) (*models.User, error) {
	if in.Email == "" {
		return nil, types.NewValidationError("email", "must not be empty")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, types.NewValidationError("email", "must be a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, types.NewValidationError("password", "too short")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewValidationError("email", "already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewValidationError("email", "already registered")
		}
		return nil, err
	}

	zap.L().Info("user registered", zap.String("user_id", user.UserID))

	return &user, nil
}

// AuthenticateUser checks the credentials and returns the user on success.
// Bad email and bad password report the same validation error so accounts
// cannot be enumerated.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	badCredentials := types.NewValidationError("credentials", "unable to authenticate with provided credentials")

	if email == "" || password == "" {
		return nil, badCredentials
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, badCredentials
	}

	return &user, nil
}

// GetUser loads a user by id.
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("user")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the user's name and/or password.
func UpdateProfile(db *gorm.DB, userID string, in UpdateProfileInput, bcryptCost, minPasswordLen int) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, types.NewValidationError("password", "too short")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return user, nil
}
