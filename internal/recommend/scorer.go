package recommend

import (
	"math"
	"sort"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// Scoring weights.
const (
	primaryGenreWeight   = 4.0
	secondaryGenreWeight = 2.0
	antiGenrePenalty     = 6.0
	qualityWeight        = 3.0
	popularityWeight     = 1.0
	hiddenGemWeight      = -1.5
	eraMatchBonus        = 2.0
	eraMismatchPenalty   = 1.0
	runtimeFitBonus      = 1.5
)

// ScoringParams are the per-request ranking inputs.
type ScoringParams struct {
	Vibe       *Vibe
	Era        models.Era
	Runtime    models.RuntimePref
	HiddenGems bool
	// Exclude lists catalog ids removed before scoring, for any kind.
	Exclude []int64
}

// Score returns the total score of c and its per-signal breakdown. It is a
// pure function of its arguments.
func Score(c models.Candidate, p ScoringParams) (float64, models.ScoreBreakdown) {
	item := c.Item()
	var b models.ScoreBreakdown

	if p.Vibe != nil {
		b.Genre = genreAffinity(item.GenreIDs, p.Vibe)
	}

	b.Quality = item.VoteAverage / 10 * qualityWeight

	pop := math.Min(math.Log10(1+math.Max(item.Popularity, 0))/3, 1)
	if p.HiddenGems {
		b.Popularity = pop * hiddenGemWeight
	} else {
		b.Popularity = pop * popularityWeight
	}

	if p.Era != "" && p.Era != models.EraAny {
		if year, ok := item.ReleaseYear(); ok {
			if p.Era.Contains(year) {
				b.Era = eraMatchBonus
			} else {
				b.Era = -eraMismatchPenalty
			}
		}
	}

	if f, ok := c.(*models.Film); ok && p.Runtime != "" && p.Runtime != models.RuntimeAny {
		if minutes, known := f.RuntimeMinutes(); known {
			if p.Runtime.Contains(minutes) {
				b.Runtime = runtimeFitBonus
			} else {
				b.Runtime = -runtimeFitBonus
			}
		}
	}

	return b.Genre + b.Quality + b.Popularity + b.Era + b.Runtime, b
}

func genreAffinity(genres []int, v *Vibe) float64 {
	var score float64
	anti := false
	for _, g := range genres {
		if contains(v.Primary, g) {
			score += primaryGenreWeight
		}
		if contains(v.Secondary, g) {
			score += secondaryGenreWeight
		}
		if contains(v.Anti, g) {
			anti = true
		}
	}
	if anti {
		score -= antiGenrePenalty
	}
	return score
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Rank drops excluded candidates, scores the rest and returns them in
// ranking order.
func Rank(batch []models.Candidate, p ScoringParams) []models.RankedItem {
	excluded := idSet(p.Exclude)
	out := make([]models.RankedItem, 0, len(batch))
	for _, c := range batch {
		if _, skip := excluded[c.Item().ID]; skip {
			continue
		}
		score, breakdown := Score(c, p)
		out = append(out, models.RankedItem{
			ResultItem: models.NewResultItem(c),
			Score:      score,
			Breakdown:  &breakdown,
		})
	}
	SortRanked(out)
	return out
}

// SortRanked orders items by score desc, then popularity desc, then id asc,
// with films before series on a full tie.
func SortRanked(items []models.RankedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Popularity != b.Popularity {
			return a.Popularity > b.Popularity
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.MediaType == models.KindFilm && b.MediaType != models.KindFilm
	})
}

// Exclude returns items whose id is not in ids. The input is not modified.
func Exclude(items []models.RankedItem, ids []int64) []models.RankedItem {
	if len(ids) == 0 {
		return items
	}
	excluded := idSet(ids)
	out := make([]models.RankedItem, 0, len(items))
	for _, it := range items {
		if _, skip := excluded[it.ID]; !skip {
			out = append(out, it)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of each (kind, id) and drops candidates
// without a poster.
func Dedupe(batch []models.Candidate) []models.Candidate {
	type key struct {
		kind models.ContentKind
		id   int64
	}
	seen := make(map[key]struct{}, len(batch))
	out := make([]models.Candidate, 0, len(batch))
	for _, c := range batch {
		item := c.Item()
		if item.PosterPath == "" {
			continue
		}
		k := key{c.Kind(), item.ID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
