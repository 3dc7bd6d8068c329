package scorecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPlayers(t *testing.T) {
	names := []string{"Ann Smith", "Bob Jones", "Robert Brown"}
	rows := []Row{
		{Name: "bob jones"},
		{Name: "Ann"},
		{Name: "Zed"},
		{Name: "RBrown"},
	}

	matches, unmatched := MatchPlayers(names, rows)

	assert.Equal(t, []Match{
		{Row: 0, Player: 1},
		{Row: 1, Player: 0},
		{Row: 3, Player: 2},
	}, matches)
	assert.Equal(t, []string{"Zed"}, unmatched)
}

func TestMatchPlayers_EachPlayerOnce(t *testing.T) {
	matches, unmatched := MatchPlayers([]string{"Ann Smith"}, []Row{{Name: "Ann Smith"}, {Name: "Ann"}})

	assert.Equal(t, []Match{{Row: 0, Player: 0}}, matches)
	assert.Equal(t, []string{"Ann"}, unmatched)
}
