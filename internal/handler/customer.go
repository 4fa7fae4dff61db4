package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raddison/salon-booking/internal/repository"
)

// CustomerHandler exposes customer CRUD.  Creation reuses an existing row
// when the phone or email already matches, so the booking form can be
// submitted repeatedly without piling up duplicates.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(customers *repository.CustomerRepo) *CustomerHandler {
	if customers == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: customers}
}

type customerResp struct {
	ID        uint64 `json:"customer_id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.Customers.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch customers"})
	}
	out := make([]customerResp, 0, len(customers))
	for _, cu := range customers {
		out = append(out, customerResp{cu.ID, cu.FullName, cu.Phone, cu.Email, cu.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return c.JSON(http.StatusOK, out)
}

type customerReq struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (r *customerReq) valid() bool {
	return strings.TrimSpace(r.FullName) != "" && strings.TrimSpace(r.Phone) != "" &&
		strings.TrimSpace(r.Email) != ""
}

// Create handles POST /api/customers.  A matching phone or email returns
// the existing customer with reused=true instead of a new row.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name, phone, and email are required"})
	}
	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx := c.Request().Context()
	if id, err := h.Customers.FindIDByContact(ctx, phone, email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	} else if id != 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "customer already exists", "customer_id": id, "reused": true})
	}
	id, err := h.Customers.Create(ctx, fullName, phone, email)
	if err != nil {
		// Lost a race with a concurrent submit of the same contact details.
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "customer created", "customer_id": id, "reused": false})
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name, phone, and email are required"})
	}
	if err := h.Customers.Update(c.Request().Context(), id, req.FullName, req.Phone, req.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer updated"})
}

// Delete handles DELETE /api/customers/:id.  The customer's appointments
// go with it in one transaction.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	if err := h.Customers.DeleteWithAppointments(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer and their appointments deleted"})
}
