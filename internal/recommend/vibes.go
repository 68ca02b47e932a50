// Package recommend ranks catalog candidates against vibe profiles.
package recommend

import (
	"strings"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// TMDB genre ids. Series use their own ids for a few combined genres.
const (
	genreAction      = 28
	genreAdventure   = 12
	genreAnimation   = 16
	genreComedy      = 35
	genreCrime       = 80
	genreDocumentary = 99
	genreDrama       = 18
	genreFamily      = 10751
	genreFantasy     = 14
	genreHistory     = 36
	genreHorror      = 27
	genreMusic       = 10402
	genreMystery     = 9648
	genreRomance     = 10749
	genreSciFi       = 878
	genreThriller    = 53
	genreWar         = 10752
	genreWestern     = 37

	genreTVActionAdventure = 10759
	genreTVKids            = 10762
	genreTVSciFiFantasy    = 10765
	genreTVWarPolitics     = 10768
)

// Vibe is a named genre-affinity profile. Vibes are read-only after the
// registry is built.
type Vibe struct {
	ID          string
	DisplayName string
	Primary     []int
	Secondary   []int
	Anti        []int
}

// Info returns the wire form.
func (v Vibe) Info() models.VibeInfo {
	return models.VibeInfo{
		ID:              v.ID,
		DisplayName:     v.DisplayName,
		PrimaryGenres:   v.Primary,
		SecondaryGenres: v.Secondary,
		AntiGenres:      v.Anti,
	}
}

// Registry is the fixed set of vibes, keyed by id.
type Registry struct {
	vibes map[string]*Vibe
	order []string
}

func NewRegistry(vibes ...Vibe) *Registry {
	r := &Registry{vibes: make(map[string]*Vibe, len(vibes))}
	for i := range vibes {
		v := vibes[i]
		if _, dup := r.vibes[v.ID]; dup {
			continue
		}
		r.vibes[v.ID] = &v
		r.order = append(r.order, v.ID)
	}
	return r
}

// Get looks a vibe up by id, ignoring case and surrounding space.
func (r *Registry) Get(id string) (*Vibe, bool) {
	v, ok := r.vibes[strings.ToLower(strings.TrimSpace(id))]
	return v, ok
}

// List returns vibes in registration order.
func (r *Registry) List() []Vibe {
	out := make([]Vibe, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.vibes[id])
	}
	return out
}

// DefaultRegistry returns the built-in vibes.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Vibe{
			ID: "feel-good", DisplayName: "Feel Good",
			Primary:   []int{genreComedy, genreFamily},
			Secondary: []int{genreAnimation, genreMusic, genreRomance},
			Anti:      []int{genreHorror, genreThriller, genreWar, genreCrime},
		},
		Vibe{
			ID: "mind-bending", DisplayName: "Mind Bending",
			Primary:   []int{genreSciFi, genreMystery},
			Secondary: []int{genreThriller, genreTVSciFiFantasy, genreFantasy},
			Anti:      []int{genreFamily, genreTVKids, genreRomance},
		},
		Vibe{
			ID: "adrenaline", DisplayName: "Adrenaline Rush",
			Primary:   []int{genreAction, genreAdventure, genreTVActionAdventure},
			Secondary: []int{genreThriller, genreCrime, genreSciFi},
			Anti:      []int{genreDocumentary, genreRomance, genreMusic},
		},
		Vibe{
			ID: "date-night", DisplayName: "Date Night",
			Primary:   []int{genreRomance, genreComedy},
			Secondary: []int{genreDrama, genreMusic},
			Anti:      []int{genreHorror, genreWar, genreDocumentary},
		},
		Vibe{
			ID: "dark-and-gritty", DisplayName: "Dark & Gritty",
			Primary:   []int{genreCrime, genreThriller},
			Secondary: []int{genreDrama, genreMystery, genreTVWarPolitics},
			Anti:      []int{genreFamily, genreAnimation, genreTVKids},
		},
		Vibe{
			ID: "cozy", DisplayName: "Cozy Night In",
			Primary:   []int{genreAnimation, genreFamily, genreFantasy},
			Secondary: []int{genreComedy, genreTVKids, genreAdventure},
			Anti:      []int{genreHorror, genreThriller, genreCrime, genreWar},
		},
		Vibe{
			ID: "tearjerker", DisplayName: "Tearjerker",
			Primary:   []int{genreDrama, genreRomance},
			Secondary: []int{genreHistory, genreMusic, genreWar},
			Anti:      []int{genreHorror, genreComedy, genreAction},
		},
		Vibe{
			ID: "spooky", DisplayName: "Spooky",
			Primary:   []int{genreHorror},
			Secondary: []int{genreMystery, genreThriller, genreFantasy},
			Anti:      []int{genreFamily, genreRomance, genreAnimation},
		},
		Vibe{
			ID: "epic-journey", DisplayName: "Epic Journey",
			Primary:   []int{genreAdventure, genreFantasy, genreHistory},
			Secondary: []int{genreWar, genreAction, genreTVSciFiFantasy, genreWestern},
			Anti:      []int{genreHorror, genreRomance},
		},
		Vibe{
			ID: "thought-provoking", DisplayName: "Thought Provoking",
			Primary:   []int{genreDocumentary, genreDrama, genreHistory},
			Secondary: []int{genreSciFi, genreTVWarPolitics, genreMystery},
			Anti:      []int{genreAnimation, genreTVKids},
		},
	)
}
