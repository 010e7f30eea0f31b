package handlers

import (
	"errors"
	"log"

	"swiftstock/internal/repositories"
	"swiftstock/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and account settings.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/status", h.HandleStatus)
}

// RegisterProtectedRoutes registers the routes that need a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Get("/accounts", h.HandleAccounts)
	authRoutes.Put("/account", h.HandleUpdateAccount)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest represents the request body for an account change.
type UpdateAccountRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewEmail        string `json:"new_email" validate:"required,email"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// HandleLogin checks the credentials, persists the login and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if !h.authService.Login(req.Email, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   services.ErrInvalidCredentials.Error(),
		})
	}

	token, err := h.authService.IssueToken(req.Email)
	if err != nil {
		log.Printf("Error issuing token for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout clears the persisted login.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(); err != nil {
		log.Printf("Error during logout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log out",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// HandleStatus reports whether a login is persisted.
func (h *AuthHandler) HandleStatus(c *fiber.Ctx) error {
	email, ok := h.authService.CurrentUser()
	return c.JSON(fiber.Map{
		"logged_in": ok,
		"email":     email,
	})
}

// HandleAccounts lists the accounts without their password digests.
func (h *AuthHandler) HandleAccounts(c *fiber.Ctx) error {
	accounts, err := h.authService.Accounts()
	if err != nil {
		return readFailed(c, "accounts", err)
	}
	return c.JSON(accounts)
}

// HandleUpdateAccount changes the email and password of the logged-in account.
func (h *AuthHandler) HandleUpdateAccount(c *fiber.Ctx) error {
	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result := h.authService.UpdateAccount(req.CurrentPassword, req.NewEmail, req.NewPassword)
	if !result.Success {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(result.Err, services.ErrInvalidCredentials), errors.Is(result.Err, services.ErrNotLoggedIn):
			status = fiber.StatusUnauthorized
		case errors.Is(result.Err, repositories.ErrConstraintViolation):
			status = fiber.StatusConflict
		case result.Err != nil:
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(result)
	}

	// The old token names the old email; hand out one for the new email.
	token, err := h.authService.IssueToken(req.NewEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": result.Success,
		"message": result.Message,
		"token":   token,
	})
}
