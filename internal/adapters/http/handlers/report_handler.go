package handlers

import (
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report and dashboard endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ============================================================
// GET /api/v1/reports/income — income by category for a range
// ============================================================

// Income handles income reports
// @Summary Income report
// @Description Income totals per ledger category over a date range
// @Tags Reports
// @Accept json
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/reports/income [get]
func (h *ReportHandler) Income(c *fiber.Ctx) error {
	report, err := h.reportService.IncomeByCategory(c.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Income report generated", report)
}

// ============================================================
// GET /api/v1/reports/dashboard — front-desk dashboard
// ============================================================

// Dashboard handles the dashboard endpoint
// @Summary Dashboard
// @Description Member counts by status plus today's traffic and income
// @Tags Reports
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.reportService.GetDashboard(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dashboard retrieved", data)
}

// ============================================================
// GET /api/v1/payments — raw ledger rows for a range
// ============================================================

// Payments handles ledger listing
// @Summary List payments
// @Description Raw ledger rows recorded in a date range
// @Tags Reports
// @Accept json
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/payments [get]
func (h *ReportHandler) Payments(c *fiber.Ctx) error {
	payments, err := h.reportService.PaymentsInRange(c.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payments retrieved", payments)
}

// ============================================================
// GET /api/v1/members/:id/payments — one member's ledger rows
// ============================================================

// MemberPayments handles per-member ledger listing
// @Summary List member payments
// @Description Ledger rows for one member ID, available even after deletion
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /api/v1/members/{id}/payments [get]
func (h *ReportHandler) MemberPayments(c *fiber.Ctx) error {
	payments, err := h.reportService.PaymentsForMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payments retrieved", payments)
}
