package handlers

import (
	"gymdesk/internal/config"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles destructive administrative endpoints
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

type confirmInput struct {
	Confirm string `json:"confirm"`
}

// The body must echo this phrase, a bare POST from a stray script must
// not wipe the store.
const confirmPhrase = "DELETE ALL DATA"

// ClearData handles data clearing
// @Summary Clear all data
// @Description Empty every collection, the schema and its version are kept
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body confirmInput true "Confirmation"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/admin/clear-data [post]
func (h *AdminHandler) ClearData(c *fiber.Ctx) error {
	var input confirmInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Confirm != confirmPhrase {
		return response.BadRequest(c, "Confirmation phrase mismatch")
	}

	if err := config.ClearAllData(h.db); err != nil {
		return response.InternalServerError(c, "Failed to clear data")
	}
	return response.Success(c, "All data cleared", nil)
}

// ResetSchema handles schema resets
// @Summary Reset schema
// @Description Drop and rebuild every table, then reseed defaults
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body confirmInput true "Confirmation"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/admin/reset-schema [post]
func (h *AdminHandler) ResetSchema(c *fiber.Ctx) error {
	var input confirmInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Confirm != confirmPhrase {
		return response.BadRequest(c, "Confirmation phrase mismatch")
	}

	if err := config.ResetSchema(h.db); err != nil {
		return response.InternalServerError(c, "Failed to reset schema")
	}
	return response.Success(c, "Schema reset", nil)
}
