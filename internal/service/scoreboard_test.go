package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/repository"
	"github.com/trentd187/golf-scoring/internal/scorecard"
	"github.com/trentd187/golf-scoring/internal/scoring"
)

func newBoard(t *testing.T) (*Scoreboard, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemory()
	return New(repo, zap.NewNop()), repo
}

func fourBall(t *testing.T, s *Scoreboard) (*models.Competition, *models.Group) {
	t.Helper()
	ctx := context.Background()

	c, err := s.CreateCompetition(ctx, NewCompetition{Name: "Club 4BBB", Type: scoring.FormatFourBall})
	require.NoError(t, err)
	g, err := s.AddGroup(ctx, c.ID, []NewPlayer{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}, nil)
	require.NoError(t, err)
	return c, g
}

func TestCreateCompetition_Validation(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	negative := -1.0
	badHoles := scoring.DefaultHoles()
	badHoles[0].StrokeIndex = 2

	tests := []struct {
		name string
		in   NewCompetition
	}{
		{name: "missing name", in: NewCompetition{Name: " ", Type: scoring.FormatMedal}},
		{name: "unknown type", in: NewCompetition{Name: "X", Type: "skins"}},
		{name: "negative allowance", in: NewCompetition{Name: "X", Type: scoring.FormatMedal, Allowance: &negative}},
		{name: "invalid holes", in: NewCompetition{Name: "X", Type: scoring.FormatMedal, Holes: badHoles[:]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateCompetition(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCreateCompetition_Defaults(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()

	c, err := s.CreateCompetition(ctx, NewCompetition{Name: "Alliance", Type: scoring.FormatAlliance})
	require.NoError(t, err)
	assert.Equal(t, 85.0, c.Allowance())

	lb, err := s.Leaderboard(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultHoles(), lb.Holes)
	assert.Empty(t, lb.Standings.Rows)
}

func TestAddGroup_Validation(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	c, _ := fourBall(t, s)

	_, err := s.AddGroup(ctx, c.ID, nil, nil)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.AddGroup(ctx, c.ID, []NewPlayer{{Name: "Ann"}, {Name: "ann"}}, nil)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.AddGroup(ctx, c.ID, []NewPlayer{{Name: ""}}, nil)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.AddGroup(ctx, uuid.New(), []NewPlayer{{Name: "Ann"}}, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordScore(t *testing.T) {
	s, repo := newBoard(t)
	ctx := context.Background()
	c, g := fourBall(t, s)
	a := g.Players[0].ID

	// Hole 1 of the default card is a par 4.
	res, err := s.RecordScore(ctx, c.ID, a, 1, "3")
	require.NoError(t, err)
	assert.True(t, res.Notable)
	assert.Equal(t, scoring.CategoryBirdie, res.Category)
	assert.Equal(t, scoring.Strokes(3), res.Gross)
	assert.False(t, res.Previous.Played)
	assert.Equal(t, 3, res.Round.Total)
	require.Len(t, res.Leaderboard.Standings.Rows, 2)
	assert.Equal(t, []string{"A", "B"}, res.Leaderboard.Standings.Rows[0].Team.Members)
	assert.Equal(t, models.CompetitionStatusActive, res.Leaderboard.Competition.Status)

	stored, err := repo.GetCompetition(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionStatusActive, stored.Status)

	// Same value again is not announced twice.
	res, err = s.RecordScore(ctx, c.ID, a, 1, "3")
	require.NoError(t, err)
	assert.False(t, res.Notable)

	// Clearing the cell removes it from the totals.
	res, err = s.RecordScore(ctx, c.ID, a, 1, "")
	require.NoError(t, err)
	assert.False(t, res.Gross.Played)
	assert.Equal(t, 0, res.Round.HolesPlayed)
	assert.Equal(t, 0, res.Round.Total)
}

func TestRecordScore_Errors(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	c, g := fourBall(t, s)

	_, err := s.RecordScore(ctx, c.ID, g.Players[0].ID, 0, "4")
	assert.ErrorIs(t, err, ErrInvalidHole)
	_, err = s.RecordScore(ctx, c.ID, g.Players[0].ID, 19, "4")
	assert.ErrorIs(t, err, ErrInvalidHole)
	_, err = s.RecordScore(ctx, c.ID, uuid.New(), 1, "4")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.RecordScore(ctx, uuid.New(), g.Players[0].ID, 1, "4")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateCourseHandicap(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	c, g := fourBall(t, s)

	r, err := s.UpdateCourseHandicap(ctx, c.ID, g.Players[1].ID, "20")
	require.NoError(t, err)
	assert.Equal(t, 17, r.PlayingHandicap)

	r, err = s.UpdateCourseHandicap(ctx, c.ID, g.Players[1].ID, "junk")
	require.NoError(t, err)
	assert.Equal(t, 0, r.PlayingHandicap)

	_, err = s.PlayerRound(ctx, c.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotTeams_DetectsStaleAggregates(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	c, g := fourBall(t, s)
	s.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

	_, err := s.RecordScore(ctx, c.ID, g.Players[0].ID, 1, "3")
	require.NoError(t, err)

	stale, err := s.SnapshotActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stale)

	res, err := s.RecordScore(ctx, c.ID, g.Players[3].ID, 1, "4")
	require.NoError(t, err)
	var cd scoring.RankedRow
	for _, row := range res.Leaderboard.Standings.Rows {
		if row.Team.Slot == 1 {
			cd = row
		}
	}
	assert.Equal(t, 2, cd.Total)
	require.NotNil(t, cd.Team.StoredTotal)
	assert.Equal(t, 0, *cd.Team.StoredTotal)
	assert.True(t, cd.Stale)

	stale, err = s.SnapshotTeams(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stale)

	lb, err := s.Leaderboard(ctx, c.ID)
	require.NoError(t, err)
	for _, row := range lb.Standings.Rows {
		assert.False(t, row.Stale)
	}
}

func TestApplyScorecard(t *testing.T) {
	s, _ := newBoard(t)
	ctx := context.Background()
	c, g := fourBall(t, s)

	holes := make([]scoring.Hole, scoring.HoleCount)
	for i := range holes {
		holes[i] = scoring.Hole{Number: i + 1, Par: 3, StrokeIndex: scoring.HoleCount - i}
	}
	card := &scorecard.Card{
		Holes: holes,
		Rows: []scorecard.Row{
			{Name: "a"},
			{Name: "Nobody"},
		},
	}
	card.Rows[0].Gross[0] = scoring.Strokes(2)
	card.Rows[0].Gross[1] = scoring.Strokes(3)

	res, err := s.ApplyScorecard(ctx, c.ID, card)
	require.NoError(t, err)
	assert.True(t, res.HolesUpdated)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 2, res.ScoresWritten)
	assert.Equal(t, []string{"Nobody"}, res.Unmatched)

	r, err := s.PlayerRound(ctx, c.ID, g.Players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.HolesPlayed)
	assert.Equal(t, 5, r.Total) // birdie 3 + par 2 on the par 3 card

	card.Holes[0].StrokeIndex = card.Holes[1].StrokeIndex
	_, err = s.ApplyScorecard(ctx, c.ID, card)
	assert.ErrorIs(t, err, ErrInvalid)
}
