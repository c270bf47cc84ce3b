package controllers

import (
	"errors"
	"log"
	"strings"

	"examportal/backend/config"
	"examportal/backend/middleware"
	"examportal/backend/models"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	Users  *store.Users
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{Users: store.NewUsers(db), Cfg: cfg, Logger: logger}
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,notblank" example:"Asha"`
	Email      string `json:"email" validate:"required,email" example:"asha@example.com"`
	Password   string `json:"password" validate:"required" example:"secret123"`
	TargetExam string `json:"targetExam" example:"3f0c1b9e-6f5a-4d59-9a51-0f7d3a8a9d11"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"asha@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name" example:"Asha K"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ProfileResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// RegisterStudent godoc
// @Summary Register a new student
// @Description Creates a student account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/student/register [post]
func (ac *AuthController) RegisterStudent(c *fiber.Ctx) error {
	var input RegisterRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), ac.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}

	user := models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
	}
	if input.TargetExam != "" {
		user.TargetExamID = &input.TargetExam
	}

	if err := ac.Users.Create(c.UserContext(), &user); err != nil {
		return respondError(c, ac.Logger, err)
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}

	return utils.Created(c, AuthResponse{
		Message: "Student registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// LoginStudent godoc
// @Summary Student login
// @Description Authenticates a student and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /auth/student/login [post]
func (ac *AuthController) LoginStudent(c *fiber.Ctx) error {
	return ac.login(c, models.RoleStudent)
}

// LoginAdmin godoc
// @Summary Admin login
// @Description Authenticates an admin and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /auth/admin/login [post]
func (ac *AuthController) LoginAdmin(c *fiber.Ctx) error {
	return ac.login(c, models.RoleAdmin)
}

func (ac *AuthController) login(c *fiber.Ctx, role models.Role) error {
	var input LoginRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	// Find user
	user, err := ac.Users.FindByEmail(c.UserContext(), normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return respondError(c, ac.Logger, err)
	}
	if user.Role != role {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	if user.IsBlocked {
		return utils.Forbidden(c, "Your account has been blocked")
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user, ac.Cfg)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}

	return c.JSON(AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// GetProfile godoc
// @Summary Get profile
// @Description Returns the authenticated user with the target exam populated
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/profile [get]
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	user, err := ac.Users.FindByID(c.UserContext(), claims.ID)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}
	return c.JSON(user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Renames the user and optionally changes the password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/profile [put]
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input UpdateProfileRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	var passwordHash string
	if input.NewPassword != "" {
		current, err := ac.Users.FindByID(c.UserContext(), claims.ID)
		if err != nil {
			return respondError(c, ac.Logger, err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(current.Password), []byte(input.CurrentPassword)); err != nil {
			return utils.Unauthorized(c, "Current password is incorrect")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), ac.Cfg.BcryptCost)
		if err != nil {
			return respondError(c, ac.Logger, err)
		}
		passwordHash = string(hashed)
	}

	user, err := ac.Users.UpdateProfile(c.UserContext(), claims.ID, strings.TrimSpace(input.Name), passwordHash)
	if err != nil {
		return respondError(c, ac.Logger, err)
	}

	return c.JSON(ProfileResponse{Message: "Profile updated successfully", User: user})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
