package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ninjashari/grocery-manager/internal/database"
	"github.com/ninjashari/grocery-manager/internal/middleware"
	"github.com/ninjashari/grocery-manager/internal/models"
)

// Register creates a new user account
func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return Error(c, fiber.StatusBadRequest, "A valid email is required")
	}
	if len(req.Password) < 8 {
		return Error(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "Failed to process password")
	}

	user, err := h.db.CreateUser(c.Context(), req.Email, string(hash), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrEmailExists) {
			return Error(c, fiber.StatusConflict, "Email already registered")
		}
		log.Printf("Failed to create user: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := h.generateToken(user)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    models.AuthResponse{Token: token, User: user},
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.db.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("Failed to look up user: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.db.UpdateLastLogin(c.Context(), user.ID); err != nil {
		log.Printf("Warning: failed to update last login for user %d: %v", user.ID, err)
	}

	token, err := h.generateToken(user)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return Success(c, models.AuthResponse{Token: token, User: user})
}

// GetCurrentUser returns the authenticated user's profile
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	user, err := h.db.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return Error(c, fiber.StatusNotFound, "User not found")
		}
		return Error(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	return Success(c, user)
}

func (h *Handler) generateToken(user *models.User) (string, error) {
	claims := middleware.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
