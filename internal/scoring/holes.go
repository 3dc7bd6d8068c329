// Package scoring is the shared, pure scoring engine used by every surface of the app.
// It turns raw hole-by-hole gross entries into handicap-adjusted nets, Stableford points,
// team totals and ranked leaderboard rows, and classifies single hole results for the
// live "notable event" popups.
//
// Nothing in this package does I/O, logs, or returns errors. Every function is a pure
// function of its inputs, so the same score data always produces the same result no
// matter which process (or how many processes) computes it.
package scoring

import "sort"

// HoleCount is the number of holes on every scorecard this engine handles.
const HoleCount = 18

// FrontNine is the number of holes counted in the "front" (out) total.
// Holes 1–9 are the front nine, holes 10–18 the back nine.
const FrontNine = 9

// Hole is one row of a course card.
type Hole struct {
	Number      int `json:"number"`       // 1–18; ordering matters (front 9 = 1–9)
	Par         int `json:"par"`          // Usually 3, 4 or 5
	StrokeIndex int `json:"stroke_index"` // 1 = hardest hole, receives handicap strokes first
}

// Holes is a full 18-hole course card, indexed by hole number minus one.
type Holes [HoleCount]Hole

// defaultPars and defaultStrokeIndexes describe the course used when a competition
// does not supply its own card. Par 72, odd indexes on the front, even on the back.
var (
	defaultPars          = [HoleCount]int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 5, 4}
	defaultStrokeIndexes = [HoleCount]int{7, 11, 15, 1, 3, 13, 17, 5, 9, 8, 16, 2, 12, 6, 10, 18, 14, 4}
)

// DefaultHoles returns the built-in course card.
func DefaultHoles() Holes {
	var h Holes
	for i := range h {
		h[i] = Hole{Number: i + 1, Par: defaultPars[i], StrokeIndex: defaultStrokeIndexes[i]}
	}
	return h
}

// NormalizeHoles turns a competition-supplied list of holes into a course card.
// The list is accepted only when ValidHoles accepts it; anything else falls back to
// DefaultHoles, so callers always get a usable card.
func NormalizeHoles(in []Hole) Holes {
	h, ok := cardFrom(in)
	if !ok {
		return DefaultHoles()
	}
	return h
}

// ValidHoles reports whether in is a complete card: exactly 18 holes numbered 1–18 in
// any order, every par positive and the stroke indexes a permutation of 1–18.
func ValidHoles(in []Hole) bool {
	_, ok := cardFrom(in)
	return ok
}

func cardFrom(in []Hole) (Holes, bool) {
	var h Holes
	if len(in) != HoleCount {
		return h, false
	}

	sorted := make([]Hole, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var seenIndex [HoleCount + 1]bool
	for i, hole := range sorted {
		if hole.Number != i+1 || hole.Par <= 0 {
			return h, false
		}
		if hole.StrokeIndex < 1 || hole.StrokeIndex > HoleCount || seenIndex[hole.StrokeIndex] {
			return h, false
		}
		seenIndex[hole.StrokeIndex] = true
		h[i] = hole
	}
	return h, true
}

// Par returns the total par of the card.
func (h Holes) Par() int {
	total := 0
	for _, hole := range h {
		total += hole.Par
	}
	return total
}
