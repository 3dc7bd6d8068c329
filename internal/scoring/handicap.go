package scoring

import (
	"math"
	"strconv"
	"strings"
)

// PlayingHandicap converts a Course Handicap into the Playing Handicap used to allocate
// strokes: round(courseHandicap * allowancePercent / 100), halves rounded away from zero.
//
// Bad input never fails. A NaN or infinite course handicap counts as 0, and an allowance
// that is NaN, infinite or negative counts as 100%.
func PlayingHandicap(courseHandicap, allowancePercent float64) int {
	if !finite(courseHandicap) {
		courseHandicap = 0
	}
	if !finite(allowancePercent) || allowancePercent < 0 {
		allowancePercent = 100
	}
	return int(math.Round(courseHandicap * allowancePercent / 100))
}

// StrokesReceived returns how many handicap strokes a player with the given Playing
// Handicap gets on a hole with the given stroke index. The result is always 0, 1 or 2.
//
// From 18 upwards every hole gets one stroke, and a hole gets a second stroke when
// (ph-18) >= strokeIndex OR strokeIndex <= ph%18. Either condition is enough. This is
// the rule the club's scorecards have always used; it does not match the textbook
// floor(ph/18)+remainder allocation for every handicap, and the tests pin it down.
func StrokesReceived(playingHandicap, strokeIndex int) int {
	switch {
	case playingHandicap <= 0:
		return 0
	case playingHandicap < HoleCount:
		if strokeIndex <= playingHandicap {
			return 1
		}
		return 0
	}

	if playingHandicap-HoleCount >= strokeIndex || strokeIndex <= playingHandicap%HoleCount {
		return 2
	}
	return 1
}

// ParseHandicap reads a course handicap as typed into a form field.
// Empty or non-numeric input is 0.
func ParseHandicap(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !finite(v) {
		return 0
	}
	return v
}

// ParseAllowance reads a handicap allowance percentage. Empty, non-numeric or negative
// input returns fallback.
func ParseAllowance(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%")), 64)
	if err != nil || !finite(v) || v < 0 {
		return fallback
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
