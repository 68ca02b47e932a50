package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmvibe/app-discover-api/internal/cache"
	"github.com/filmvibe/app-discover-api/internal/logging"
	middlewares "github.com/filmvibe/app-discover-api/internal/middleware"
)

// CacheAdmin exposes result cache maintenance.
type CacheAdmin interface {
	ClearCache(ctx context.Context)
	CacheStats(ctx context.Context) cache.Stats
}

type AdminHandler struct {
	cache CacheAdmin
}

func NewAdminHandler(c CacheAdmin) *AdminHandler {
	return &AdminHandler{cache: c}
}

// ClearCache godoc
// @Summary Clear the recommendation cache
// @Description Drops every cached ranking. Requires role ADMIN.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/admin/cache [delete]
func (h *AdminHandler) ClearCache(c *gin.Context) {
	h.cache.ClearCache(c.Request.Context())
	logging.Ctx(c.Request.Context()).Info().Str("user_id", middlewares.GetUserID(c)).Msg("recommendation cache cleared")
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}

// CacheStats godoc
// @Summary Recommendation cache statistics
// @Description Entry count, expired entries awaiting removal, and TTL. Requires role ADMIN.
// @Tags admin
// @Produce json
// @Success 200 {object} cache.Stats
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.CacheStats(c.Request.Context()))
}
