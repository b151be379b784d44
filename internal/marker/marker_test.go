package marker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddListClear(t *testing.T) {
	s := NewMemoryStore()
	require.Empty(t, s.List())

	require.NoError(t, s.Add(Marker{Kind: Base, Label: "home", X: 4600, Z: 10200}))
	require.NoError(t, s.Add(Marker{Kind: Enemy, Label: "camp", X: 1, Z: 2}))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "home", got[0].Label)
	assert.Equal(t, "camp", got[1].Label)

	got[0].Label = "changed"
	assert.Equal(t, "home", s.List()[0].Label)

	s.Clear()
	assert.Empty(t, s.List())
}

func TestMemoryStoreRejectsEmptyKind(t *testing.T) {
	s := NewMemoryStore()
	require.ErrorIs(t, s.Add(Marker{Label: "x"}), ErrEmptyKind)
	assert.Empty(t, s.List())
}

func TestMemoryStoreConcurrentAdd(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Add(Marker{Kind: Loot})
		}()
	}
	wg.Wait()
	assert.Len(t, s.List(), 50)
}

func TestKindHelpers(t *testing.T) {
	assert.Equal(t, Vehicle, Base.Next())
	assert.Equal(t, Base, Enemy.Next())
	assert.Equal(t, Base, Kind("nope").Next())
	assert.Equal(t, icons[POI], Kind("nope").Icon())
	assert.Equal(t, 'V', Vehicle.Letter())
	assert.Equal(t, '?', Kind("nope").Letter())

	seen := map[rune]Kind{}
	for _, k := range Kinds {
		r := k.Letter()
		assert.NotContains(t, seen, r, "%s and %s share a letter", seen[r], k)
		seen[r] = k
	}
	assert.Equal(t, "4.6 / 10.2", Marker{X: 4600, Z: 10200}.Grid())
}

var _ Store = (*MemoryStore)(nil)
