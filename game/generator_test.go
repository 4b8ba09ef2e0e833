package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandoMatchesReferenceSequence(t *testing.T) {
	r := NewRando(1)
	assert.Equal(t, uint32(16838), r.Next())

	a, b := NewRando(42), NewRando(42)
	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		require.Equal(t, va, vb)
		require.LessOrEqual(t, va, uint32(RandoMax))
	}
}

func TestRandoSeedRestarts(t *testing.T) {
	r := NewRando(7)
	first := []uint32{r.Next(), r.Next(), r.Next()}
	r.Seed(7)
	assert.Equal(t, first, []uint32{r.Next(), r.Next(), r.Next()})
}

func TestDrawStaysInRangeAndScale(t *testing.T) {
	dMajor := Presets[PresetByName("D major")].Apply(DefaultConfig()).Scale
	r := NewRando(3)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		n := Draw(&r, 60, 12, dMajor)
		require.GreaterOrEqual(t, n, 60)
		require.Less(t, n, 72)
		require.True(t, dMajor.Contains(n), "note %d outside scale", n)
		seen[n] = true
	}
	assert.Len(t, seen, dMajor.Count(), "every scale note should eventually be drawn")
}

func TestDrawFallsBackToRoot(t *testing.T) {
	r := NewRando(3)
	assert.Equal(t, 60, Draw(&r, 60, 12, Scale{}))

	// only F# is enabled but the range holds no F#
	var s Scale
	s[6] = true
	assert.Equal(t, 60, Draw(&r, 60, 5, s))
}

func TestDrawConsumesOneValue(t *testing.T) {
	a, b := NewRando(9), NewRando(9)
	Draw(&a, 60, 12, Scale{})
	b.Next()
	assert.Equal(t, b.Next(), a.Next())
}

func TestDrawNeverLeavesMidiRange(t *testing.T) {
	r := NewRando(5)
	for i := 0; i < 500; i++ {
		n := Draw(&r, 120, 128, FullScale())
		require.GreaterOrEqual(t, n, 120)
		require.LessOrEqual(t, n, MaxNote)
	}
}
