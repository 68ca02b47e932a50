package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmvibe/app-discover-api/internal/discover"
	"github.com/filmvibe/app-discover-api/internal/models"
)

// Discoverer runs discover queries.
type Discoverer interface {
	Discover(ctx context.Context, kind models.ContentKind, f models.DiscoverFilters) (*models.DiscoverResponse, error)
}

type DiscoverHandler struct {
	service Discoverer
}

func NewDiscoverHandler(service Discoverer) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

// Discover godoc
// @Summary Discover movies and series
// @Description Filters the catalog by genre, release year, rating, vote count, language and runtime.
// @Description
// @Description With `media_type=all` both kinds are fetched concurrently and concatenated. Only
// @Description `release_date.*` and `vote_average.*` sorts are re-ordered across kinds; other sorts keep
// @Description each kind's upstream order. `total_results` is the sum over kinds and `total_pages` the max.
// @Description
// @Description If one kind fails its results are empty and it is listed in `failed_kinds` with `partial=true`.
// @Description If every requested kind fails the response is 502 with an empty `results` list.
// @Tags discover
// @Produce json
// @Param media_type query string false "Content kind" Enums(movie, tv, all) default(movie)
// @Param genres query string false "Comma-separated genre ids, all must match" example("35,10751")
// @Param without_genres query string false "Comma-separated genre ids to exclude" example("27")
// @Param year_from query int false "First release year. Alone, filters that exact year." minimum(1870) maximum(2100)
// @Param year_to query int false "Last release year (inclusive)" minimum(1870) maximum(2100)
// @Param rating_min query number false "Minimum average rating" minimum(0) maximum(10)
// @Param vote_count_min query int false "Minimum vote count" minimum(0)
// @Param language query string false "ISO 639-1 original language" example("en")
// @Param sort_by query string false "Sort order" Enums(popularity.desc, popularity.asc, vote_average.desc, vote_average.asc, release_date.desc, release_date.asc, vote_count.desc, title.asc, revenue.desc) default(popularity.desc)
// @Param runtime_min query int false "Minimum runtime in minutes"
// @Param runtime_max query int false "Maximum runtime in minutes"
// @Param page query int false "Page number" default(1) minimum(1) maximum(500)
// @Success 200 {object} models.DiscoverResponse
// @Failure 400 {object} map[string]string "Invalid filter value"
// @Failure 502 {object} map[string]interface{} "Catalog unavailable for every requested kind"
// @Router /api/v1/discover [get]
func (h *DiscoverHandler) Discover(c *gin.Context) {
	var req models.DiscoverRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters", "details": err.Error()})
		return
	}

	kind, filters, err := req.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Discover(c.Request.Context(), kind, filters)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, discover.ErrUpstreamUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable", "results": []models.ResultItem{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "results": []models.ResultItem{}})
		return
	}

	c.JSON(http.StatusOK, resp)
}
