package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AppName is reported by the index and health endpoints.
	AppName = "Ticket Report System"
	// APIVersion is the public API version.
	APIVersion = "1.0.0"
)

// HealthHandler serves liveness and the API index.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a health handler; uptime counts from started.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Version   string  `json:"version"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// IndexResponse lists the API entry points.
type IndexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	now := h.now()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   AppName,
		Version:   APIVersion,
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Uptime:    now.Sub(h.started).Seconds(),
	})
}

// Index godoc
// @Summary API index
// @Tags health
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, IndexResponse{
		Name:    AppName,
		Version: APIVersion,
		Message: "Welcome to the Ticket Report API",
		Endpoints: map[string]string{
			"health":     "/health",
			"auth":       "/auth",
			"users":      "/users",
			"categories": "/categories",
			"tickets":    "/tickets",
		},
	})
}
