package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raddison/salon-booking/internal/scheduling"
)

// AvailabilityHandler answers the two booking-form lookups: free time slots
// for a date and free staff for a slot.
type AvailabilityHandler struct {
	Engine *scheduling.Engine
}

func NewAvailabilityHandler(engine *scheduling.Engine) *AvailabilityHandler {
	if engine == nil {
		panic("nil engine passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Engine: engine}
}

var queryDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Slots handles GET /api/available-slots?date=...&staff_id=... and replies
// with a bare array of free "HH:MM:SS" times in grid order.  Without
// staff_id any booking blocks a slot; with it, only that member's
// bookings do.
func (h *AvailabilityHandler) Slots(c echo.Context) error {
	date := c.QueryParam("date")
	if !queryDateRe.MatchString(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_date_format"})
	}
	var staffID *uint64
	if raw := c.QueryParam("staff_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
		}
		staffID = &id
	}
	slots, err := h.Engine.AvailableSlots(c.Request().Context(), date, staffID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch available slots"})
	}
	return c.JSON(http.StatusOK, slots)
}

type availableStaffResp struct {
	ID       uint64 `json:"staff_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Staff handles GET /api/available-staff?date=...&time=...
func (h *AvailabilityHandler) Staff(c echo.Context) error {
	date := c.QueryParam("date")
	timeOfDay := c.QueryParam("time")
	if date == "" || timeOfDay == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and time are required"})
	}
	normalized, staff, err := h.Engine.AvailableStaff(c.Request().Context(), date, timeOfDay)
	if err != nil {
		var vErr *scheduling.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Reason})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch available staff"})
	}
	out := make([]availableStaffResp, 0, len(staff))
	for _, s := range staff {
		out = append(out, availableStaffResp{s.ID, s.FullName, s.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":            date,
		"time":            normalized,
		"available_count": len(out),
		"staff":           out,
	})
}
