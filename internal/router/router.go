// Package router defines how HTTP routes are registered for the API.  The
// public surface serves the booking site; the administration routes sit
// behind bearer-token auth, applied per route because the original API kept
// public and admin methods on the same paths.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/raddison/salon-booking/internal/handler"
	"github.com/raddison/salon-booking/internal/middleware"
)

// RegisterRoutes registers the routes that carry no business logic: the
// health check and the static site.  publicDir may be empty to skip static
// serving (tests do this).
func RegisterRoutes(e *echo.Echo, dbName, publicDir string) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", handler.Health(dbName))
	if publicDir != "" {
		e.Static("/", publicDir)
	}
}

// Handlers bundles every request handler so the register functions stay
// short.
type Handlers struct {
	Services     *handler.ServiceHandler
	Staff        *handler.StaffHandler
	Customers    *handler.CustomerHandler
	Appointments *handler.AppointmentHandler
	Availability *handler.AvailabilityHandler
	Messages     *handler.MessageHandler
	Admin        *handler.AdminHandler
}

// RegisterPublic registers the booking-site endpoints.  cacheMW caches the
// catalogue listings and rateMW throttles the write endpoints; either may
// be nil when Redis is unavailable.
func RegisterPublic(e *echo.Echo, h Handlers, cacheMW, rateMW echo.MiddlewareFunc) {
	cached := optional(cacheMW)
	limited := optional(rateMW)

	// Catalogue listings change rarely, so they run through the response
	// cache when it is configured.
	e.GET("/api/services", h.Services.GetStandard, cached...)
	e.GET("/api/premium", h.Services.GetPremium, cached...)
	e.GET("/api/all-services", h.Services.GetAll, cached...)
	e.GET("/api/staff", h.Staff.List, cached...)

	// Availability must always be fresh; no cache here.
	e.GET("/api/available-slots", h.Availability.Slots)
	e.GET("/api/available-staff", h.Availability.Staff)

	e.POST("/api/customers", h.Customers.Create, limited...)
	e.POST("/api/appointments", h.Appointments.Create, limited...)
	e.POST("/api/messages", h.Messages.Create, limited...)

	e.POST("/api/admin/login", h.Admin.Login, limited...)
}

// RegisterAdmin registers the authenticated administration surface.  Auth
// goes on each route rather than a group because several paths also carry a
// public method (e.g. GET /api/staff is public, POST is not).
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	auth := middleware.AdminAuth(jwtSecret)

	e.POST("/api/services", h.Services.Create, auth)
	e.PUT("/api/services/:id", h.Services.Update, auth)
	e.DELETE("/api/services/:id", h.Services.Delete, auth)

	e.POST("/api/staff", h.Staff.Create, auth)
	e.PUT("/api/staff/:id", h.Staff.Update, auth)
	e.DELETE("/api/staff/:id", h.Staff.Delete, auth)

	e.GET("/api/customers", h.Customers.List, auth)
	e.PUT("/api/customers/:id", h.Customers.Update, auth)
	e.DELETE("/api/customers/:id", h.Customers.Delete, auth)

	e.GET("/api/appointments", h.Appointments.List, auth)
	e.PUT("/api/appointments/:id/status", h.Appointments.UpdateStatus, auth)
	e.PUT("/api/appointments/:id/staff", h.Appointments.UpdateStaff, auth)
	e.DELETE("/api/appointments/:id", h.Appointments.Delete, auth)

	e.GET("/api/messages", h.Messages.List, auth)
	e.DELETE("/api/messages/:id", h.Messages.Delete, auth)

	e.GET("/api/admins", h.Admin.List, auth)
	e.POST("/api/admins", h.Admin.Create, auth)
	e.DELETE("/api/admins/:id", h.Admin.Delete, auth)
	e.PUT("/api/admins/:id/change-password", h.Admin.ChangePassword, auth)

	e.GET("/api/admin/stats", h.Admin.Stats, auth)
}

func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
