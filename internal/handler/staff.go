package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raddison/salon-booking/internal/repository"
)

// StaffHandler exposes the staff roster: a public listing plus admin CRUD.
type StaffHandler struct {
	Staff *repository.StaffRepo
}

// NewStaffHandler constructs a StaffHandler and panics on a nil repository.
func NewStaffHandler(staff *repository.StaffRepo) *StaffHandler {
	if staff == nil {
		panic("nil repository passed to NewStaffHandler")
	}
	return &StaffHandler{Staff: staff}
}

type staffResp struct {
	ID       uint64 `json:"staff_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	HireDate string `json:"hire_date"`
	Salary   string `json:"salary"`
}

// List handles GET /api/staff (ordered by name).
func (h *StaffHandler) List(c echo.Context) error {
	staff, err := h.Staff.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch staff"})
	}
	out := make([]staffResp, 0, len(staff))
	for _, s := range staff {
		out = append(out, staffResp{s.ID, s.FullName, s.Role, s.Phone, s.Email, s.HireDate, s.Salary})
	}
	return c.JSON(http.StatusOK, out)
}

type staffReq struct {
	FullName string      `json:"full_name"`
	Role     string      `json:"role"`
	Phone    string      `json:"phone"`
	Email    string      `json:"email"`
	Salary   json.Number `json:"salary"`
}

func (r *staffReq) valid() bool {
	return strings.TrimSpace(r.FullName) != "" && strings.TrimSpace(r.Role) != "" &&
		strings.TrimSpace(r.Phone) != "" && strings.TrimSpace(r.Email) != ""
}

func (r *staffReq) salary() string {
	if r.Salary.String() == "" {
		return "0"
	}
	return r.Salary.String()
}

// Create handles POST /api/staff.  Duplicate phone or email yields 409.
func (h *StaffHandler) Create(c echo.Context) error {
	var req staffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name, role, phone, and email are required"})
	}
	id, err := h.Staff.Create(c.Request().Context(), req.FullName, req.Role, req.Phone, req.Email, req.salary())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create staff"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "staff created", "staff_id": id})
}

// Update handles PUT /api/staff/:id.
func (h *StaffHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	var req staffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name, role, phone, and email are required"})
	}
	if err := h.Staff.Update(c.Request().Context(), id, req.FullName, req.Role, req.Phone, req.Email, req.salary()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update staff"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "staff updated"})
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	if err := h.Staff.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		case errors.Is(err, repository.ErrInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "staff member has appointments and cannot be deleted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete staff"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "staff deleted"})
}
