package handlers

import (
	"strconv"

	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PromoHandler handles promo tier endpoints
type PromoHandler struct {
	promoService *services.PromoService
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(promoService *services.PromoService) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
	}
}

// List handles promo listing
// @Summary List promos
// @Description List all promo tiers, active and inactive
// @Tags Promos
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/promos [get]
func (h *PromoHandler) List(c *fiber.Ctx) error {
	promos, err := h.promoService.List(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Promos retrieved", promos)
}

// Get handles promo retrieval
// @Summary Get promo
// @Tags Promos
// @Accept json
// @Produce json
// @Param id path int true "Promo ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/promos/{id} [get]
func (h *PromoHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid promo ID")
	}

	promo, err := h.promoService.Get(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Promo retrieved", promo)
}

// Create handles promo creation
// @Summary Create promo
// @Description Create a promo tier granting free months on long subscriptions
// @Tags Promos
// @Accept json
// @Produce json
// @Param input body services.PromoInput true "Promo input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/promos [post]
func (h *PromoHandler) Create(c *fiber.Ctx) error {
	var input services.PromoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	promo, err := h.promoService.Create(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Promo created", promo)
}

// Update handles promo updates
// @Summary Update promo
// @Tags Promos
// @Accept json
// @Produce json
// @Param id path int true "Promo ID"
// @Param input body services.PromoInput true "Promo input"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/promos/{id} [put]
func (h *PromoHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid promo ID")
	}

	var input services.PromoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	promo, err := h.promoService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Promo updated", promo)
}

// Delete handles promo deletion
// @Summary Delete promo
// @Description Delete a promo tier, past grants are unaffected
// @Tags Promos
// @Accept json
// @Produce json
// @Param id path int true "Promo ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/promos/{id} [delete]
func (h *PromoHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid promo ID")
	}

	if err := h.promoService.Delete(c.Context(), uint(id)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Promo deleted", nil)
}
