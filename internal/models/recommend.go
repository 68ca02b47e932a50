package models

import (
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	DefaultShuffleN = 30
	maxPageSize     = 100
)

// RecommendRequest is the query-string form of a vibe recommendation request.
// @Description Parameters for vibe-based recommendations.
type RecommendRequest struct {
	// Vibe identifier (see /api/v1/vibes). Required unless mood resolves to one.
	Vibe string `form:"vibe" example:"feel-good"`
	// Free-text mood, resolved to a vibe when vibe is absent
	Mood string `form:"mood" example:"something light for a rainy sunday"`
	// Era bucket (default: any)
	Era Era `form:"era" binding:"omitempty,oneof=any modern 2000s 90s classic" example:"modern"`
	// Runtime bucket, films only (default: any)
	Runtime RuntimePref `form:"runtime" binding:"omitempty,oneof=any short standard epic" example:"standard"`
	// movie or tv (default: movie)
	MediaType ContentKind `form:"media_type" binding:"omitempty,oneof=movie tv" example:"movie"`
	// Favor high-rating, low-popularity titles
	HiddenGems bool `form:"hidden_gems" example:"false"`
	// Page (default: 1)
	Page int `form:"page" example:"1"`
	// Results per page (default: 20, max: 100)
	PageSize int `form:"page_size" example:"20"`
	// Comma-separated catalog ids to leave out
	Exclude string `form:"exclude" example:"550,680"`
	// Randomize the order of the top shuffle_n results
	Shuffle bool `form:"shuffle" example:"false"`
	// Size of the shuffled head (default: 30)
	ShuffleN int `form:"shuffle_n" example:"30"`

	ParsedExclude []int64 `form:"-" json:"-" swaggerignore:"true"`
}

// Validate applies defaults and rejects malformed values. Vibe membership is
// checked by the engine against its registry.
func (r *RecommendRequest) Validate() error {
	r.Vibe = strings.TrimSpace(r.Vibe)
	if r.Vibe == "" && strings.TrimSpace(r.Mood) == "" {
		return ErrVibeRequired
	}

	if r.Era == "" {
		r.Era = EraAny
	}
	if !r.Era.IsValid() {
		return ErrInvalidEra
	}
	if r.Runtime == "" {
		r.Runtime = RuntimeAny
	}
	if !r.Runtime.IsValid() {
		return ErrInvalidRuntimeP
	}
	if r.MediaType == "" {
		r.MediaType = KindFilm
	}
	if r.MediaType != KindFilm && r.MediaType != KindSeries {
		return ErrInvalidMediaType
	}

	if r.Page == 0 {
		r.Page = 1
	}
	if r.Page < 1 || r.Page > maxPage {
		return ErrInvalidPage
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize < 1 || r.PageSize > maxPageSize {
		return ErrInvalidPageSize
	}
	if r.ShuffleN == 0 {
		r.ShuffleN = DefaultShuffleN
	}
	if r.ShuffleN < 0 {
		return ErrInvalidShuffleN
	}

	ids, err := parseIDList(r.Exclude)
	if err != nil {
		return ErrInvalidExclude
	}
	r.ParsedExclude = ids

	return nil
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, strconv.ErrRange
		}
		out = append(out, n)
	}
	return out, nil
}

// RecommendResponse is a page of ranked recommendations.
type RecommendResponse struct {
	Results        []RankedItem `json:"results"`
	Vibe           string       `json:"vibe"`
	VibeName       string       `json:"vibe_name"`
	Total          int          `json:"total"`
	Page           int          `json:"page"`
	FromCache      bool         `json:"from_cache"`
	ResponseTimeMs float64      `json:"response_time_ms"`
}

// VibeInfo is the wire form of a vibe profile.
type VibeInfo struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	PrimaryGenres   []int  `json:"primary_genres"`
	SecondaryGenres []int  `json:"secondary_genres"`
	AntiGenres      []int  `json:"anti_genres"`
}
