package handlers

import (
	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles membership billing endpoints
type BillingHandler struct {
	billingService *services.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

type payFeeInput struct {
	PaymentMethod string `json:"payment_method"`
}

type subscriptionInput struct {
	Months        int    `json:"months"`
	PaymentMethod string `json:"payment_method"`
}

type renewalInput struct {
	Months int `json:"months"`
}

type sessionInput struct {
	SessionType   string `json:"session_type"`
	PaymentMethod string `json:"payment_method"`
}

type walkInSessionInput struct {
	Name          string `json:"name"`
	SessionType   string `json:"session_type"`
	PaymentMethod string `json:"payment_method"`
}

// ============================================================
// POST /api/v1/members/:id/fee — pay the one-time membership fee
// ============================================================

// PayFee handles the one-time membership fee payment
// @Summary Pay membership fee
// @Description Record the one-time lifetime membership fee for a member
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body payFeeInput true "Payment input"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/members/{id}/fee [post]
func (h *BillingHandler) PayFee(c *fiber.Ctx) error {
	var input payFeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.billingService.PayLifetimeFee(c.Context(), c.Params("id"), domain.PaymentMethod(input.PaymentMethod))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Membership fee recorded", payment)
}

// ============================================================
// POST /api/v1/members/:id/subscription — start or renew monthly
// ============================================================

// Subscribe handles monthly subscription start and renewal
// @Summary Start or renew monthly subscription
// @Description Charge N months of subscription, promo months are granted free on top
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body subscriptionInput true "Subscription input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/members/{id}/subscription [post]
func (h *BillingHandler) Subscribe(c *fiber.Ctx) error {
	var input subscriptionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.billingService.StartOrRenewMonthlySubscription(c.Context(), c.Params("id"), input.Months, domain.PaymentMethod(input.PaymentMethod))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Subscription recorded", result)
}

// ============================================================
// DELETE /api/v1/members/:id/subscription — cancel monthly
// ============================================================

// CancelSubscription handles monthly subscription cancellation
// @Summary Cancel monthly subscription
// @Description Switch a monthly subscriber back to per-session, no refund is issued
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/members/{id}/subscription [delete]
func (h *BillingHandler) CancelSubscription(c *fiber.Ctx) error {
	member, err := h.billingService.CancelMonthlySubscription(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Subscription cancelled", member)
}

// ============================================================
// POST /api/v1/members/:id/renewal — extend the lifetime window
// ============================================================

// Renew handles lifetime membership renewal
// @Summary Renew lifetime membership
// @Description Extend the membership window, expired members restart from today
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body renewalInput true "Renewal input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/members/{id}/renewal [post]
func (h *BillingHandler) Renew(c *fiber.Ctx) error {
	var input renewalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.billingService.RenewLifetimeMembership(c.Context(), c.Params("id"), input.Months)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Membership renewed", member)
}

// ============================================================
// POST /api/v1/members/:id/sessions — charge a member session
// ============================================================

// RecordSession handles per-session member charges
// @Summary Record member session fee
// @Description Charge one gym session to a member at the member rate
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body sessionInput true "Session input"
// @Success 201 {object} response.Response
// @Router /api/v1/members/{id}/sessions [post]
func (h *BillingHandler) RecordSession(c *fiber.Ctx) error {
	var input sessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.billingService.RecordMemberSession(c.Context(), c.Params("id"), domain.SessionType(input.SessionType), domain.PaymentMethod(input.PaymentMethod))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Session fee recorded", payment)
}

// ============================================================
// POST /api/v1/walk-ins/sessions — charge a walk-in session
// ============================================================

// RecordWalkInSession handles walk-in session charges
// @Summary Record walk-in session fee
// @Description Charge a non-member session, ledger only, no member row is created
// @Tags Billing
// @Accept json
// @Produce json
// @Param input body walkInSessionInput true "Walk-in input"
// @Success 201 {object} response.Response
// @Router /api/v1/walk-ins/sessions [post]
func (h *BillingHandler) RecordWalkInSession(c *fiber.Ctx) error {
	var input walkInSessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "name is required")
	}

	payment, err := h.billingService.RecordWalkInSession(c.Context(), input.Name, domain.SessionType(input.SessionType), domain.PaymentMethod(input.PaymentMethod))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Walk-in session fee recorded", payment)
}

// ============================================================
// POST /api/v1/members/:id/archive — archive early
// ============================================================

// Archive handles manual archiving
// @Summary Archive member
// @Description Archive a member, remaining paid days are reported and forfeited
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /api/v1/members/{id}/archive [post]
func (h *BillingHandler) Archive(c *fiber.Ctx) error {
	result, err := h.billingService.ArchiveMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member archived", result)
}

// ============================================================
// DELETE /api/v1/members/:id — delete permanently
// ============================================================

// Delete handles permanent member deletion
// @Summary Delete member
// @Description Delete the member row, payment and attendance history are kept
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/members/{id} [delete]
func (h *BillingHandler) Delete(c *fiber.Ctx) error {
	if err := h.billingService.DeleteMember(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member deleted", nil)
}
