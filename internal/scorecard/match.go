package scorecard

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match pairs a card row with a competitor.
type Match struct {
	Row    int // Index into Card.Rows
	Player int // Index into the names passed to MatchPlayers
}

// MatchPlayers assigns card rows to competitor names. Exact (case-insensitive) matches
// are taken first; the remaining rows are matched fuzzily, closest first, and each
// competitor is used at most once. Rows that find nobody are returned by name.
func MatchPlayers(names []string, rows []Row) ([]Match, []string) {
	taken := make([]bool, len(names))
	matched := make([]bool, len(rows))
	var out []Match

	for r, row := range rows {
		for p, name := range names {
			if !taken[p] && strings.EqualFold(strings.TrimSpace(name), row.Name) {
				taken[p], matched[r] = true, true
				out = append(out, Match{Row: r, Player: p})
				break
			}
		}
	}

	type candidate struct {
		row, player, distance int
	}
	var candidates []candidate
	for r, row := range rows {
		if matched[r] {
			continue
		}
		for _, rank := range fuzzy.RankFindNormalizedFold(row.Name, names) {
			candidates = append(candidates, candidate{row: r, player: rank.OriginalIndex, distance: rank.Distance})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].distance < candidates[j].distance })

	for _, c := range candidates {
		if matched[c.row] || taken[c.player] {
			continue
		}
		taken[c.player], matched[c.row] = true, true
		out = append(out, Match{Row: c.row, Player: c.player})
	}

	var unmatched []string
	for r, row := range rows {
		if !matched[r] {
			unmatched = append(unmatched, row.Name)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out, unmatched
}
