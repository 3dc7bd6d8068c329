package scoring

import "sort"

// TeamRound is a team's combined card. For individual formats a "team" has one member.
type TeamRound struct {
	Group       int            `json:"group"` // Index of the group the team came from
	Slot        int            `json:"slot"`  // Position of the team within its group (4BBB has two)
	Members     []string       `json:"members"`
	PerHoleBest [HoleCount]int `json:"per_hole_best"`
	Front       int            `json:"front"`
	Back        int            `json:"back"`
	Total       int            `json:"total"`
	HolesPlayed int            `json:"holes_played"` // Most holes played by any member

	// StoredTotal is the last persisted aggregate for this team, if any. The engine never
	// prefers it over Total; it is carried so callers can show both and flag staleness.
	StoredTotal *int `json:"stored_total,omitempty"`
}

// Stale reports whether a stored aggregate exists and disagrees with the live total.
func (t TeamRound) Stale() bool {
	return t.StoredTotal != nil && *t.StoredTotal != t.Total
}

// AggregateBestOf combines member rounds on Stableford points. On every hole the
// members' points are sorted high to low and the top countBest are added up. A member
// with no score on a hole counts 0 for that hole. countBest below 1 is treated as 1.
func AggregateBestOf(members []PlayerRound, countBest int) TeamRound {
	if countBest < 1 {
		countBest = 1
	}

	t := TeamRound{Members: make([]string, 0, len(members))}
	for _, m := range members {
		t.Members = append(t.Members, m.Name)
		if m.HolesPlayed > t.HolesPlayed {
			t.HolesPlayed = m.HolesPlayed
		}
	}

	values := make([]int, len(members))
	for hole := 0; hole < HoleCount; hole++ {
		for i, m := range members {
			values[i] = m.PerHolePoints[hole]
		}
		sort.Sort(sort.Reverse(sort.IntSlice(values)))

		best := 0
		for i := 0; i < countBest && i < len(values); i++ {
			best += values[i]
		}
		t.PerHoleBest[hole] = best
	}

	t.sum()
	return t
}

// SplitFourBallGroup splits a 4BBB group positionally into pairs, members [0,1] and
// [2,3], and scores each pair on better ball. Groups of another size are chunked the
// same way; a trailing odd player makes a one-member team.
func SplitFourBallGroup(group []PlayerRound) []TeamRound {
	teams := make([]TeamRound, 0, (len(group)+1)/2)
	for start := 0; start < len(group); start += 2 {
		end := start + 2
		if end > len(group) {
			end = len(group)
		}
		team := AggregateBestOf(group[start:end], 1)
		team.Slot = len(teams)
		teams = append(teams, team)
	}
	return teams
}

// AllianceTeam scores a whole group on the best two Stableford scores per hole.
func AllianceTeam(group []PlayerRound) TeamRound {
	return AggregateBestOf(group, 2)
}

// IndividualTeam wraps one player's round as a single-member team. Medal teams carry the
// player's per-hole net (0 for unplayed holes); every other format carries points.
func IndividualTeam(r PlayerRound, format Format) TeamRound {
	t := TeamRound{Members: []string{r.Name}, HolesPlayed: r.HolesPlayed}
	for i := range t.PerHoleBest {
		if format.UsesPoints() {
			t.PerHoleBest[i] = r.PerHolePoints[i]
		} else if r.PerHoleNet[i] != nil {
			t.PerHoleBest[i] = *r.PerHoleNet[i]
		}
	}
	t.sum()
	return t
}

func (t *TeamRound) sum() {
	t.Front, t.Back = 0, 0
	for i, v := range t.PerHoleBest {
		if i < FrontNine {
			t.Front += v
		} else {
			t.Back += v
		}
	}
	t.Total = t.Front + t.Back
}
