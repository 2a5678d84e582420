package handlers

import (
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles pricing settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get handles settings retrieval
// @Summary Get pricing settings
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Settings retrieved", settings)
}

// Update handles settings updates
// @Summary Update pricing settings
// @Description Change fees, new fees apply from the next charge onward
// @Tags Settings
// @Accept json
// @Produce json
// @Param input body services.UpdateSettingsInput true "Settings input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Settings updated", settings)
}
