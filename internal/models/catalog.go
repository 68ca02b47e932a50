package models

import "strconv"

// CatalogItem holds the fields shared by films and series. Items are
// immutable once fetched.
type CatalogItem struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
}

// ReleaseYear parses the year prefix of ReleaseDate (YYYY-MM-DD).
func (c CatalogItem) ReleaseYear() (int, bool) {
	if len(c.ReleaseDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(c.ReleaseDate[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// Candidate is a film or series eligible for ranking.
type Candidate interface {
	Kind() ContentKind
	Item() CatalogItem
}

// Film is a movie record. Runtime is zero when the catalog did not report it.
type Film struct {
	CatalogItem
	Runtime int
}

func (f *Film) Kind() ContentKind { return KindFilm }
func (f *Film) Item() CatalogItem { return f.CatalogItem }

// RuntimeMinutes returns the runtime when known.
func (f *Film) RuntimeMinutes() (int, bool) {
	return f.Runtime, f.Runtime > 0
}

// Series is a tv record.
type Series struct {
	CatalogItem
}

func (s *Series) Kind() ContentKind { return KindSeries }
func (s *Series) Item() CatalogItem { return s.CatalogItem }

// CatalogPage is one upstream page for a single kind.
type CatalogPage struct {
	Kind         ContentKind
	Items        []Candidate
	Page         int
	TotalResults int
	TotalPages   int
}

// EmptyPage is the degraded result for a kind whose fetch failed.
func EmptyPage(kind ContentKind, page int) *CatalogPage {
	return &CatalogPage{Kind: kind, Items: []Candidate{}, Page: page}
}

// ResultItem is the wire form of a candidate.
type ResultItem struct {
	CatalogItem
	MediaType ContentKind `json:"media_type"`
	Runtime   int         `json:"runtime,omitempty"`
}

// NewResultItem flattens a candidate into its wire form.
func NewResultItem(c Candidate) ResultItem {
	item := ResultItem{CatalogItem: c.Item(), MediaType: c.Kind()}
	if f, ok := c.(*Film); ok {
		item.Runtime = f.Runtime
	}
	return item
}

// ScoreBreakdown is the per-signal contribution to a score.
type ScoreBreakdown struct {
	Genre      float64 `json:"genre"`
	Quality    float64 `json:"quality"`
	Popularity float64 `json:"popularity"`
	Era        float64 `json:"era"`
	Runtime    float64 `json:"runtime"`
}

// RankedItem is a scored result as cached and returned to callers.
type RankedItem struct {
	ResultItem
	Score     float64         `json:"score"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}
