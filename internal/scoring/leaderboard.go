package scoring

import "sort"

// RankedRow is one line of a leaderboard.
type RankedRow struct {
	Position int       `json:"position"`
	Team     TeamRound `json:"team"`
	Total    int       `json:"total"`
	Thru     string    `json:"thru"`
	Stale    bool      `json:"stale"`
}

// RankTeams orders teams by total, highest first, and numbers them. Equal totals share a
// position and the next lower total takes the following number, so [40, 38, 38, 35]
// ranks as [1, 2, 2, 3]. The sort is stable.
func RankTeams(teams []TeamRound) []RankedRow {
	return rank(teams, func(a, b TeamRound) bool { return a.Total > b.Total })
}

// RankTeamsAscending is RankTeams for medal play: lowest total first. Teams that have
// not played a hole go after everyone who has.
func RankTeamsAscending(teams []TeamRound) []RankedRow {
	return rank(teams, func(a, b TeamRound) bool {
		if (a.HolesPlayed == 0) != (b.HolesPlayed == 0) {
			return b.HolesPlayed == 0
		}
		return a.Total < b.Total
	})
}

func rank(teams []TeamRound, less func(a, b TeamRound) bool) []RankedRow {
	sorted := make([]TeamRound, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	rows := make([]RankedRow, len(sorted))
	for i, t := range sorted {
		pos := 1
		if i > 0 {
			prev := rows[i-1]
			pos = prev.Position
			if t.Total != prev.Total {
				pos++
			}
		}
		rows[i] = RankedRow{
			Position: pos,
			Team:     t,
			Total:    t.Total,
			Thru:     thru(t.HolesPlayed),
			Stale:    t.Stale(),
		}
	}
	return rows
}

func thru(holesPlayed int) string {
	return PlayerRound{HolesPlayed: holesPlayed}.Thru()
}

// Competition is everything needed to build a leaderboard.
type Competition struct {
	Format    Format
	Allowance float64
	Holes     Holes
	Groups    [][]Player
}

// Standings is a computed leaderboard together with the rounds it was built from.
type Standings struct {
	Rounds [][]PlayerRound `json:"rounds"` // Per group, in member order
	Teams  []TeamRound     `json:"teams"`
	Rows   []RankedRow     `json:"rows"`
}

// BuildStandings runs the whole pipeline: player rounds, teams per the format's rule,
// then ranking. stored maps (group, slot) to a persisted team total; it may be nil.
func BuildStandings(c Competition, stored map[TeamKey]int) Standings {
	var s Standings
	s.Rounds = make([][]PlayerRound, len(c.Groups))

	for g, group := range c.Groups {
		rounds := make([]PlayerRound, len(group))
		for i, p := range group {
			rounds[i] = ComputePlayerRound(p, c.Holes, c.Allowance, c.Format)
		}
		s.Rounds[g] = rounds

		var teams []TeamRound
		switch c.Format {
		case FormatFourBall:
			teams = SplitFourBallGroup(rounds)
		case FormatAlliance:
			if len(rounds) > 0 {
				teams = []TeamRound{AllianceTeam(rounds)}
			}
		default:
			for i, r := range rounds {
				t := IndividualTeam(r, c.Format)
				t.Slot = i
				teams = append(teams, t)
			}
		}

		for _, t := range teams {
			t.Group = g
			if v, ok := stored[TeamKey{Group: g, Slot: t.Slot}]; ok {
				t.StoredTotal = &v
			}
			s.Teams = append(s.Teams, t)
		}
	}

	if c.Format.UsesPoints() {
		s.Rows = RankTeams(s.Teams)
	} else {
		s.Rows = RankTeamsAscending(s.Teams)
	}
	return s
}

// TeamKey identifies a team within a competition.
type TeamKey struct {
	Group int
	Slot  int
}
