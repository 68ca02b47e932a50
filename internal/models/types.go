package models

// ContentKind identifies the catalog vocabulary (movie or tv) a request targets.
type ContentKind string

const (
	KindFilm   ContentKind = "movie"
	KindSeries ContentKind = "tv"
	KindAll    ContentKind = "all"
)

// IsValid reports whether k is a known kind, including KindAll.
func (k ContentKind) IsValid() bool {
	switch k {
	case KindFilm, KindSeries, KindAll:
		return true
	}
	return false
}

// Kinds expands KindAll into the concrete kinds, in a fixed order.
func (k ContentKind) Kinds() []ContentKind {
	if k == KindAll {
		return []ContentKind{KindFilm, KindSeries}
	}
	return []ContentKind{k}
}

// SortKey is the client-facing sort vocabulary. The query builder maps it to
// kind-specific upstream fields.
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortRatingDesc      SortKey = "vote_average.desc"
	SortRatingAsc       SortKey = "vote_average.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"
	SortVoteCountDesc   SortKey = "vote_count.desc"
	SortTitleAsc        SortKey = "title.asc"
	SortRevenueDesc     SortKey = "revenue.desc"
)

// SortKeys lists every accepted sort key.
var SortKeys = []SortKey{
	SortPopularityDesc, SortPopularityAsc,
	SortRatingDesc, SortRatingAsc,
	SortReleaseDateDesc, SortReleaseDateAsc,
	SortVoteCountDesc, SortTitleAsc, SortRevenueDesc,
}

// IsValid reports whether s is one of SortKeys.
func (s SortKey) IsValid() bool {
	for _, k := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// ClientOrderable reports whether merged pages can be re-sorted locally.
// Only release date and rating have a total order computable from the items.
func (s SortKey) ClientOrderable() bool {
	switch s {
	case SortReleaseDateAsc, SortReleaseDateDesc, SortRatingAsc, SortRatingDesc:
		return true
	}
	return false
}

// GenreMatch controls how multiple genre ids combine in the upstream query.
type GenreMatch string

const (
	GenreMatchAll GenreMatch = "all"
	GenreMatchAny GenreMatch = "any"
)

// Era is a coarse release-date bucket.
type Era string

const (
	EraAny     Era = "any"
	EraModern  Era = "modern"
	Era2000s   Era = "2000s"
	Era90s     Era = "90s"
	EraClassic Era = "classic"
)

// IsValid reports whether e is a known era bucket.
func (e Era) IsValid() bool {
	switch e {
	case EraAny, EraModern, Era2000s, Era90s, EraClassic:
		return true
	}
	return false
}

// YearBounds returns the inclusive year range of the bucket. A zero bound
// means open-ended.
func (e Era) YearBounds(currentYear int) (from, to int) {
	switch e {
	case EraModern:
		return 2010, currentYear
	case Era2000s:
		return 2000, 2009
	case Era90s:
		return 1990, 1999
	case EraClassic:
		return 0, 1989
	}
	return 0, 0
}

// Contains reports whether year falls inside the bucket.
func (e Era) Contains(year int) bool {
	switch e {
	case EraModern:
		return year >= 2010
	case Era2000s:
		return year >= 2000 && year <= 2009
	case Era90s:
		return year >= 1990 && year <= 1999
	case EraClassic:
		return year < 1990
	}
	return true
}

// RuntimePref is the requested film length bucket.
type RuntimePref string

const (
	RuntimeAny      RuntimePref = "any"
	RuntimeShort    RuntimePref = "short"
	RuntimeStandard RuntimePref = "standard"
	RuntimeEpic     RuntimePref = "epic"
)

// IsValid reports whether r is a known runtime bucket.
func (r RuntimePref) IsValid() bool {
	switch r {
	case RuntimeAny, RuntimeShort, RuntimeStandard, RuntimeEpic:
		return true
	}
	return false
}

// Bounds returns the inclusive minute range of the bucket; zero means open.
func (r RuntimePref) Bounds() (min, max int) {
	switch r {
	case RuntimeShort:
		return 0, 90
	case RuntimeStandard:
		return 90, 120
	case RuntimeEpic:
		return 120, 0
	}
	return 0, 0
}

// Contains reports whether minutes falls inside the bucket. Both edges are
// inclusive, so 90 and 120 belong to two buckets each.
func (r RuntimePref) Contains(minutes int) bool {
	switch r {
	case RuntimeShort:
		return minutes <= 90
	case RuntimeStandard:
		return minutes >= 90 && minutes <= 120
	case RuntimeEpic:
		return minutes >= 120
	}
	return true
}
