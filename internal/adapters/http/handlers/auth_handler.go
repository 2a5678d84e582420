package handlers

import (
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles staff authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles staff registration
// @Summary Register staff account
// @Description Create a new staff account (admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.RegisterInput true "Registration input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "username, email and password are required")
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Staff account created", user)
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a staff user and issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Login input"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		switch err {
		case services.ErrInvalidCredentials:
			return response.Unauthorized(c, "Invalid username or password")
		case services.ErrUserInactive:
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.FromError(c, err)
		}
	}
	return response.Success(c, "Login successful", result)
}
