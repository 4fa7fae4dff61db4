package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health returns a health-check handler for load balancers and uptime
// monitors.  It reports the configured database name so a misconfigured
// deployment is visible at a glance.
func Health(dbName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbName,
		})
	}
}
