package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raddison/salon-booking/internal/model"
	"github.com/raddison/salon-booking/internal/repository"
)

// ServiceHandler exposes the services catalogue: public listings split by
// premium flag, plus admin CRUD.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

// NewServiceHandler constructs a ServiceHandler and panics on a nil repository.
func NewServiceHandler(services *repository.ServiceRepo) *ServiceHandler {
	if services == nil {
		panic("nil repository passed to NewServiceHandler")
	}
	return &ServiceHandler{Services: services}
}

type serviceResp struct {
	ID              uint64  `json:"service_id"`
	Name            string  `json:"service_name"`
	Description     *string `json:"description"`
	Price           string  `json:"price"`
	DurationMinutes uint32  `json:"duration_minutes"`
	IsPremium       bool    `json:"is_premium"`
}

func toServiceResp(services []model.Service) []serviceResp {
	out := make([]serviceResp, 0, len(services))
	for _, s := range services {
		out = append(out, serviceResp{s.ID, s.Name, s.Description, s.Price, s.DurationMinutes, s.IsPremium})
	}
	return out
}

// GetStandard handles GET /api/services (non-premium offerings).
func (h *ServiceHandler) GetStandard(c echo.Context) error {
	services, err := h.Services.ListStandard(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch services"})
	}
	return c.JSON(http.StatusOK, toServiceResp(services))
}

// GetPremium handles GET /api/services/premium.
func (h *ServiceHandler) GetPremium(c echo.Context) error {
	services, err := h.Services.ListPremium(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch premium services"})
	}
	return c.JSON(http.StatusOK, toServiceResp(services))
}

// GetAll handles GET /api/admin/services (premium first, then by name).
func (h *ServiceHandler) GetAll(c echo.Context) error {
	services, err := h.Services.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch all services"})
	}
	return c.JSON(http.StatusOK, toServiceResp(services))
}

type serviceReq struct {
	Name            string      `json:"service_name"`
	Description     string      `json:"description"`
	Price           json.Number `json:"price"`
	DurationMinutes json.Number `json:"duration_minutes"`
	IsPremium       bool        `json:"is_premium"`
}

// parse validates the request and returns the normalized fields.  The
// description becomes nil when blank so the column stores NULL.
func (r *serviceReq) parse() (name string, description *string, price string, duration uint32, ok bool) {
	name = strings.TrimSpace(r.Name)
	price = r.Price.String()
	d, err := strconv.ParseUint(r.DurationMinutes.String(), 10, 32)
	if name == "" || price == "" || err != nil || d == 0 {
		return "", nil, "", 0, false
	}
	if desc := strings.TrimSpace(r.Description); desc != "" {
		description = &desc
	}
	return name, description, price, uint32(d), true
}

// Create handles POST /api/services.
func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name, description, price, duration, ok := req.parse()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service name, price, and duration are required"})
	}
	id, err := h.Services.Create(c.Request().Context(), name, description, price, duration, req.IsPremium)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create service"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "service created", "service_id": id})
}

// Update handles PUT /api/services/:id.
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name, description, price, duration, ok := req.parse()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service name, price, and duration are required"})
	}
	if err := h.Services.Update(c.Request().Context(), id, name, description, price, duration, req.IsPremium); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update service"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "service updated"})
}

// Delete handles DELETE /api/services/:id.
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	if err := h.Services.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		case errors.Is(err, repository.ErrInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "service has appointments and cannot be deleted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete service"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "service deleted"})
}
