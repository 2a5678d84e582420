package handlers

import (
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance log endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// ============================================================
// POST /api/v1/attendance — check in
// ============================================================

// CheckIn handles check-in
// @Summary Check in
// @Description Record a member or walk-in check-in, expired members are never blocked
// @Tags Attendance
// @Accept json
// @Produce json
// @Param input body services.CheckInInput true "Check-in input"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/attendance [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var input services.CheckInInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.attendanceService.CheckIn(c.Context(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Checked in", record)
}

// ============================================================
// PUT /api/v1/attendance/:id/check-out — check out
// ============================================================

// CheckOut handles check-out
// @Summary Check out
// @Description Stamp the check-out time on an open attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance record ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/attendance/{id}/check-out [put]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	record, err := h.attendanceService.CheckOut(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Checked out", record)
}

// ============================================================
// GET /api/v1/attendance — list by date or range
// ============================================================

// List handles attendance listing
// @Summary List attendance
// @Description List attendance for a date, or a range when start and end are given
// @Tags Attendance
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /api/v1/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")

	if start != "" || end != "" {
		records, err := h.attendanceService.ListByRange(c.Context(), start, end)
		if err != nil {
			return response.FromError(c, err)
		}
		return response.Success(c, "Attendance retrieved", records)
	}

	records, err := h.attendanceService.ListByDate(c.Context(), c.Query("date"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Attendance retrieved", records)
}

// ============================================================
// GET /api/v1/members/:id/attendance — one member's history
// ============================================================

// ListByMember handles per-member attendance history
// @Summary List member attendance
// @Description List the attendance history of one member
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /api/v1/members/{id}/attendance [get]
func (h *AttendanceHandler) ListByMember(c *fiber.Ctx) error {
	records, err := h.attendanceService.ListByMember(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Attendance retrieved", records)
}
