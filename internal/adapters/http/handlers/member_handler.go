package handlers

import (
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/pagination"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// ============================================================
// POST /api/v1/members — register a member
// ============================================================

// Create handles member registration
// @Summary Register member
// @Description Register a new member, the lifetime window starts today
// @Tags Members
// @Accept json
// @Produce json
// @Param input body services.CreateMemberInput true "Member input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Member registered", member)
}

// ============================================================
// GET /api/v1/members — list members (paginated, searchable)
// ============================================================

// List handles member listing
// @Summary List members
// @Description List members with reconciled statuses, searchable by name or ID
// @Tags Members
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Name or member ID filter"
// @Success 200 {object} response.Response
// @Router /api/v1/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	search := c.Query("search")

	result, err := h.memberService.List(c.Context(), params.Offset, params.Limit, search)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Members retrieved", fiber.Map{
		"members":    result.Members,
		"pagination": pagination.GetMeta(params, result.Total),
	})
}

// ============================================================
// GET /api/v1/members/:id — member detail
// ============================================================

// Get handles member retrieval
// @Summary Get member
// @Description Get one member with a reconciled status
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Member ID is required")
	}

	member, err := h.memberService.Get(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member retrieved", member)
}

// ============================================================
// PUT /api/v1/members/:id — update profile fields
// ============================================================

// Update handles member profile updates
// @Summary Update member
// @Description Update profile fields, billing state is untouched
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param input body services.UpdateMemberInput true "Update input"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member updated", member)
}

// ============================================================
// POST /api/v1/members/:id/referrals/redeem — redeem 4 invites
// ============================================================

// RedeemReferrals handles referral bonus redemption
// @Summary Redeem referral bonus
// @Description Convert four referral sign-ups into one free subscription month
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/members/{id}/referrals/redeem [post]
func (h *MemberHandler) RedeemReferrals(c *fiber.Ctx) error {
	id := c.Params("id")

	member, err := h.memberService.RedeemReferralBonus(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Referral bonus redeemed", member)
}
