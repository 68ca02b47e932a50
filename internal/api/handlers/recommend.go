package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmvibe/app-discover-api/internal/models"
	"github.com/filmvibe/app-discover-api/internal/recommend"
)

// Recommender serves vibe recommendations.
type Recommender interface {
	Recommend(ctx context.Context, req *models.RecommendRequest) (*models.RecommendResponse, error)
	Registry() *recommend.Registry
}

type RecommendHandler struct {
	engine Recommender
}

func NewRecommendHandler(engine Recommender) *RecommendHandler {
	return &RecommendHandler{engine: engine}
}

// Recommend godoc
// @Summary Vibe-based recommendations
// @Description Ranks an over-fetched candidate batch against a vibe profile.
// @Description
// @Description ### Score
// @Description ```
// @Description score = genre + quality + popularity + era + runtime
// @Description genre      = 4 per primary match + 2 per secondary match - 6 if any anti genre
// @Description quality    = vote_average / 10 * 3
// @Description popularity = min(log10(1 + popularity) / 3, 1), times -1.5 with hidden_gems
// @Description era        = +2 inside the bucket, -1 outside
// @Description runtime    = +1.5 inside the bucket, -1.5 outside (films with known runtime)
// @Description ```
// @Description Ties break on popularity desc, then id asc.
// @Description
// @Description Rankings are cached for one hour per (vibe, era, runtime, media_type, hidden_gems, page).
// @Description `exclude` is applied after the cache, so excluded ids never affect cache reuse.
// @Tags recommendations
// @Produce json
// @Param vibe query string false "Vibe id (see /api/v1/vibes). Required unless mood is given." example("feel-good")
// @Param mood query string false "Free-text mood, resolved to a vibe when vibe is absent" example("something light after a long week")
// @Param era query string false "Era bucket" Enums(any, modern, 2000s, 90s, classic) default(any)
// @Param runtime query string false "Runtime bucket (films only)" Enums(any, short, standard, epic) default(any)
// @Param media_type query string false "Content kind" Enums(movie, tv) default(movie)
// @Param hidden_gems query bool false "Favor high-rating, low-popularity titles"
// @Param page query int false "Candidate window" default(1) minimum(1)
// @Param page_size query int false "Results returned" default(20) minimum(1) maximum(100)
// @Param exclude query string false "Comma-separated ids to leave out" example("550,680")
// @Param shuffle query bool false "Randomize the order of the top shuffle_n results"
// @Param shuffle_n query int false "Size of the shuffled head" default(30)
// @Success 200 {object} models.RecommendResponse
// @Failure 400 {object} map[string]string "Invalid parameters, unknown vibe or unresolvable mood"
// @Failure 502 {object} map[string]interface{} "Catalog or mood resolver unavailable"
// @Router /api/v1/recommendations [get]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters", "details": err.Error()})
		return
	}

	resp, err := h.engine.Recommend(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		switch {
		case models.IsInvalidInput(err), errors.Is(err, recommend.ErrMoodUnresolved):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, recommend.ErrUpstreamUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable", "results": []models.RankedItem{}})
		case errors.Is(err, recommend.ErrMoodUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "mood resolver unavailable", "results": []models.RankedItem{}})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "results": []models.RankedItem{}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "results": []models.RankedItem{}})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VibesResponse lists the available vibes.
type VibesResponse struct {
	Vibes []models.VibeInfo `json:"vibes"`
}

// ListVibes godoc
// @Summary List vibes
// @Description Returns every vibe profile with its genre affinities.
// @Tags recommendations
// @Produce json
// @Success 200 {object} VibesResponse
// @Router /api/v1/vibes [get]
func (h *RecommendHandler) ListVibes(c *gin.Context) {
	vibes := h.engine.Registry().List()
	resp := VibesResponse{Vibes: make([]models.VibeInfo, len(vibes))}
	for i, v := range vibes {
		resp.Vibes[i] = v.Info()
	}
	c.JSON(http.StatusOK, resp)
}
