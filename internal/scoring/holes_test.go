package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHoles(t *testing.T) {
	holes := DefaultHoles()

	assert.Equal(t, 72, holes.Par())
	seen := map[int]bool{}
	for i, h := range holes {
		assert.Equal(t, i+1, h.Number)
		seen[h.StrokeIndex] = true
	}
	assert.Len(t, seen, HoleCount)
}

func TestNormalizeHoles(t *testing.T) {
	custom := make([]Hole, HoleCount)
	for i := range custom {
		// Supplied in reverse order; stroke index equals hole number.
		n := HoleCount - i
		custom[i] = Hole{Number: n, Par: 3, StrokeIndex: n}
	}

	got := NormalizeHoles(custom)
	assert.Equal(t, 54, got.Par())
	assert.Equal(t, Hole{Number: 1, Par: 3, StrokeIndex: 1}, got[0])

	tests := []struct {
		name  string
		holes func() []Hole
	}{
		{name: "nil", holes: func() []Hole { return nil }},
		{name: "nine holes", holes: func() []Hole { return custom[:9] }},
		{name: "duplicate stroke index", holes: func() []Hole {
			h := append([]Hole(nil), custom...)
			h[0].StrokeIndex = h[1].StrokeIndex
			return h
		}},
		{name: "zero par", holes: func() []Hole {
			h := append([]Hole(nil), custom...)
			h[3].Par = 0
			return h
		}},
		{name: "stroke index out of range", holes: func() []Hole {
			h := append([]Hole(nil), custom...)
			h[5].StrokeIndex = 19
			return h
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultHoles(), NormalizeHoles(tt.holes()))
		})
	}
}

func TestValidHoles(t *testing.T) {
	d := DefaultHoles()
	assert.True(t, ValidHoles(d[:]))
	assert.False(t, ValidHoles(d[:17]))
}
