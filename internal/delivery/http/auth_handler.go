package http

import (
	"errors"

	"hris-attendance/internal/model"
	"hris-attendance/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	usecase *usecase.AuthUsecase
}

func NewAuthHandler(u *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: u}
}

// Register creates a new employee account. Sign-up is self-service for
// employees only; admin accounts come from the seeder.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input model.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "Invalid request body",
		})
	}
	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "Full name, email and password are required",
		})
	}

	if err := h.usecase.Register(input.FullName, input.Email, input.Password, model.RoleEmployee); err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "conflict",
				"message": "Email is already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Registration failed. Please try again later.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Please log in.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input model.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "Invalid request body",
		})
	}

	token, user, expiresIn, err := h.usecase.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) || errors.Is(err, usecase.ErrInactiveAccount) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "Invalid email or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Login failed. Please try again later.",
		})
	}

	return c.JSON(model.LoginResponse{
		Token:     token,
		User:      *user,
		ExpiresIn: expiresIn,
	})
}
