package models

import "errors"

var (
	ErrInvalidMediaType = errors.New("invalid media_type (use: movie, tv, all)")
	ErrInvalidGenre     = errors.New("invalid genre id list")
	ErrInvalidYear      = errors.New("invalid year range")
	ErrInvalidRating    = errors.New("rating_min must be between 0 and 10")
	ErrInvalidVoteCount = errors.New("vote_count_min must not be negative")
	ErrInvalidLanguage  = errors.New("language must be an ISO 639-1 code")
	ErrInvalidSort      = errors.New("invalid sort_by")
	ErrInvalidRuntime   = errors.New("invalid runtime range")
	ErrInvalidPage      = errors.New("page must be between 1 and 500")
	ErrInvalidPageSize  = errors.New("page_size must be between 1 and 100")
	ErrInvalidExclude   = errors.New("invalid exclude id list")
	ErrInvalidEra       = errors.New("invalid era (use: any, modern, 2000s, 90s, classic)")
	ErrInvalidRuntimeP  = errors.New("invalid runtime (use: any, short, standard, epic)")
	ErrInvalidShuffleN  = errors.New("shuffle_n must not be negative")
	ErrVibeRequired     = errors.New("vibe is required")
	ErrUnknownVibe      = errors.New("unknown vibe")
)

// IsInvalidInput reports whether err belongs to the request validation family.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrInvalidMediaType, ErrInvalidGenre, ErrInvalidYear, ErrInvalidRating,
		ErrInvalidVoteCount, ErrInvalidLanguage, ErrInvalidSort, ErrInvalidRuntime,
		ErrInvalidPage, ErrInvalidPageSize, ErrInvalidExclude, ErrInvalidEra,
		ErrInvalidRuntimeP, ErrInvalidShuffleN, ErrVibeRequired, ErrUnknownVibe,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
