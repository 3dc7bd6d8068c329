package scoring

import (
	"strconv"
	"strings"
)

// Gross is a raw gross entry for one hole. The zero value is a hole that has not been
// played yet, which is different from any entered number (including 0).
type Gross struct {
	Strokes int  `json:"strokes"`
	Played  bool `json:"played"`
}

// Strokes returns an entered gross score of n.
func Strokes(n int) Gross {
	return Gross{Strokes: n, Played: true}
}

// ParseGross reads a cell as typed by a scorer. Empty or non-numeric input is an
// unplayed hole; it is never an error, because live entry is always partial.
func ParseGross(raw string) Gross {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Gross{}
	}
	return Strokes(n)
}

// Net returns gross minus strokes received. ok is false for an unplayed hole.
func Net(g Gross, strokesReceived int) (net int, ok bool) {
	if !g.Played {
		return 0, false
	}
	return g.Strokes - strokesReceived, true
}

// StablefordPoints maps a net score against par to points:
//
//	par-4 or better: 6, par-3: 5, par-2: 4, par-1: 3, par: 2, par+1: 1, worse: 0
func StablefordPoints(net, par int) int {
	diff := par - net
	switch {
	case diff >= 4:
		return 6
	case diff < -1:
		return 0
	default:
		return diff + 2
	}
}

// Player is one competitor as the engine sees them.
type Player struct {
	Name           string
	CourseHandicap float64
	Gross          [HoleCount]Gross
}

// PlayerRound is everything derived from one player's card.
//
// Front, Back and Total add up net strokes for medal play and Stableford points for
// every other format. Holes without a gross score contribute nothing and have a nil
// PerHoleNet entry, which is how "not played" is told apart from a 0-point hole.
type PlayerRound struct {
	Name            string          `json:"name"`
	PlayingHandicap int             `json:"playing_handicap"`
	StrokesReceived [HoleCount]int  `json:"strokes_received"`
	PerHoleNet      [HoleCount]*int `json:"per_hole_net"`
	PerHolePoints   [HoleCount]int  `json:"per_hole_points"`
	Front           int             `json:"front"`
	Back            int             `json:"back"`
	Total           int             `json:"total"`
	GrossTotal      int             `json:"gross_total"`
	DTHNet          float64         `json:"dth_net"` // Gross total minus the course handicap (not the playing handicap)
	HolesPlayed     int             `json:"holes_played"`
}

// ComputePlayerRound derives a PlayerRound from a player's entries.
func ComputePlayerRound(p Player, holes Holes, allowancePercent float64, format Format) PlayerRound {
	ph := PlayingHandicap(p.CourseHandicap, allowancePercent)
	r := PlayerRound{Name: p.Name, PlayingHandicap: ph}

	for i, hole := range holes {
		strokes := StrokesReceived(ph, hole.StrokeIndex)
		r.StrokesReceived[i] = strokes

		net, ok := Net(p.Gross[i], strokes)
		if !ok {
			continue
		}
		n := net
		r.PerHoleNet[i] = &n
		r.PerHolePoints[i] = StablefordPoints(net, hole.Par)
		r.GrossTotal += p.Gross[i].Strokes
		r.HolesPlayed++

		stat := net
		if format.UsesPoints() {
			stat = r.PerHolePoints[i]
		}
		if i < FrontNine {
			r.Front += stat
		} else {
			r.Back += stat
		}
	}

	r.Total = r.Front + r.Back
	ch := p.CourseHandicap
	if !finite(ch) {
		ch = 0
	}
	r.DTHNet = float64(r.GrossTotal) - ch
	return r
}

// Finished reports whether every hole has a score.
func (r PlayerRound) Finished() bool {
	return r.HolesPlayed == HoleCount
}

// Thru is the progress label shown next to a player: "F" when finished, "-" before the
// first score, otherwise the number of holes played.
func (r PlayerRound) Thru() string {
	switch r.HolesPlayed {
	case HoleCount:
		return "F"
	case 0:
		return "-"
	}
	return strconv.Itoa(r.HolesPlayed)
}
