package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	v, ok := r.Get("feel-good")
	require.True(t, ok)
	assert.Equal(t, []int{35, 10751}, v.Primary)

	_, ok = r.Get("  FEEL-GOOD ")
	assert.True(t, ok)

	_, ok = r.Get("nope")
	assert.False(t, ok)

	for _, v := range r.List() {
		assert.NotEmpty(t, v.DisplayName, v.ID)
		assert.NotEmpty(t, v.Primary, v.ID)
		for _, g := range v.Anti {
			assert.NotContains(t, v.Primary, g, "%s: anti genre %d is also primary", v.ID, g)
			assert.NotContains(t, v.Secondary, g, "%s: anti genre %d is also secondary", v.ID, g)
		}
	}
}

func TestRegistryKeepsFirstDuplicate(t *testing.T) {
	r := NewRegistry(Vibe{ID: "a", DisplayName: "First"}, Vibe{ID: "a", DisplayName: "Second"}, Vibe{ID: "b"})
	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].DisplayName)
	assert.Equal(t, "a", list[0].Info().ID)
}
