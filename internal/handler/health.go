package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler is the health-check endpoint used by load balancers and
// monitoring systems.  Ping performs a trivial round trip against the graph
// database; the endpoint degrades to 503 when that fails.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.Ping(c.Request().Context()); err != nil {
		log.Printf("health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
