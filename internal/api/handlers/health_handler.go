package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	catalogName string
	catalog     Pinger
}

func NewHealthHandler(catalogName string, catalog Pinger) *HealthHandler {
	return &HealthHandler{catalogName: catalogName, catalog: catalog}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness check
// @Description Confirms the process is serving; no dependency checks.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness check
// @Description Checks the catalog backend is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	statusCode := http.StatusOK
	if err := h.catalog.Ping(ctx); err != nil {
		response.Checks[h.catalogName] = "failed"
		response.Status = "not_ready"
		response.Error = err.Error()
		statusCode = http.StatusServiceUnavailable
	} else {
		response.Checks[h.catalogName] = "ok"
	}

	c.JSON(statusCode, response)
}
