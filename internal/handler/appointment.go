package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/raddison/salon-booking/internal/model"
	"github.com/raddison/salon-booking/internal/queue"
	"github.com/raddison/salon-booking/internal/repository"
	"github.com/raddison/salon-booking/internal/scheduling"
	queue_publisher "github.com/raddison/salon-booking/internal/service"
)

// AppointmentHandler wires the booking engine and the appointment store to
// the HTTP surface.  PublishEvents gates the broker publish so tests and
// broker-less deployments run without RabbitMQ.
type AppointmentHandler struct {
	Engine        *scheduling.Engine
	Appointments  *repository.AppointmentRepo
	Log           *zap.Logger
	PublishEvents bool
}

func NewAppointmentHandler(engine *scheduling.Engine, appointments *repository.AppointmentRepo, log *zap.Logger, publishEvents bool) *AppointmentHandler {
	if engine == nil || appointments == nil {
		panic("nil dependency passed to NewAppointmentHandler")
	}
	return &AppointmentHandler{Engine: engine, Appointments: appointments, Log: log, PublishEvents: publishEvents}
}

// flexString unmarshals a JSON string or number into its literal text, so
// clients may send ids as either 5 or "5".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type bookingReq struct {
	CustomerID flexString `json:"customer_id"`
	ServiceID  flexString `json:"service_id"`
	StaffID    flexString `json:"staff_id"`
	Date       string     `json:"appointment_date"`
	Time       string     `json:"appointment_time"`
	Notes      string     `json:"notes"`
}

// Create handles POST /api/appointments.  All booking rules live in the
// engine; this method only maps its error types to status codes.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in := scheduling.BookingInput{
		CustomerID: string(req.CustomerID),
		ServiceID:  string(req.ServiceID),
		StaffID:    string(req.StaffID),
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	}
	res, err := h.Engine.Book(c.Request().Context(), in)
	if err != nil {
		var (
			vErr *scheduling.ValidationError
			cErr *scheduling.ConflictError
			rErr *scheduling.ReferenceError
		)
		switch {
		case errors.As(err, &vErr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Reason})
		case errors.As(err, &cErr):
			return c.JSON(http.StatusConflict, echo.Map{"error": cErr.Reason})
		case errors.As(err, &rErr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown customer, staff, or service"})
		}
		h.Log.Error("booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to book appointment"})
	}

	if h.PublishEvents {
		h.publishBooked(in, res)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "appointment booked",
		"appointment_id": res.AppointmentID,
		"staff_assigned": res.StaffID,
		"auto_assigned":  res.AutoAssigned,
	})
}

// publishBooked fires the appointment.booked event in the background.  The
// booking already succeeded, so broker failures are logged by the publisher
// and otherwise ignored.
func (h *AppointmentHandler) publishBooked(in scheduling.BookingInput, res *scheduling.BookingResult) {
	customerID, _ := strconv.ParseUint(in.CustomerID, 10, 64)
	serviceID, _ := strconv.ParseUint(in.ServiceID, 10, 64)
	timeOfDay, _ := scheduling.NormalizeTime(in.Time)
	ev := queue.AppointmentBookedEvent{
		AppointmentID: res.AppointmentID,
		CustomerID:    customerID,
		StaffID:       res.StaffID,
		ServiceID:     serviceID,
		Date:          in.Date,
		Time:          timeOfDay,
		AutoAssigned:  res.AutoAssigned,
		BookedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishAppointmentBooked(ctx, h.Log, ev)
	}()
}

// List handles GET /api/appointments, newest first with customer, staff and
// service joined in.
func (h *AppointmentHandler) List(c echo.Context) error {
	appts, err := h.Appointments.ListDetailed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch appointments"})
	}
	return c.JSON(http.StatusOK, appts)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.Status {
	case model.StatusScheduled, model.StatusCompleted, model.StatusCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Scheduled, Completed, or Cancelled"})
	}
	if err := h.Appointments.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		case errors.Is(err, repository.ErrDuplicate):
			// Re-activating to Scheduled collided with a booking that took
			// the slot in the meantime.
			return c.JSON(http.StatusConflict, echo.Map{"error": "staff_already_booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update appointment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment status updated"})
}

type reassignReq struct {
	StaffID flexString `json:"staff_id"`
}

// UpdateStaff handles PUT /api/appointments/:id/staff.
func (h *AppointmentHandler) UpdateStaff(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}
	var req reassignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	staffID, err := strconv.ParseUint(string(req.StaffID), 10, 64)
	if err != nil || staffID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	if err := h.Appointments.UpdateStaff(c.Request().Context(), id, staffID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		case errors.Is(err, repository.ErrForeignKey):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown staff member"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "staff_already_booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update appointment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment staff updated"})
}

// Delete handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}
	if err := h.Appointments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete appointment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "appointment deleted"})
}
