//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trentd187/golf-scoring/internal/database"
	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/scoring"
)

func newGormRepository(t *testing.T) *GormRepository {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("golf"),
		postgres.WithUsername("golf"),
		postgres.WithPassword("golf"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations("file://../../migrations", dsn))

	db, err := database.Connect(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Ping(ctx, db))
	return NewGorm(db)
}

func TestGormRepository(t *testing.T) {
	ctx := context.Background()
	r := newGormRepository(t)

	holes := scoring.DefaultHoles()
	c := &models.Competition{Name: "Spring 4BBB", Type: scoring.FormatFourBall, Status: models.CompetitionStatusUpcoming}
	for _, h := range holes {
		c.Holes = append(c.Holes, models.Hole{HoleNumber: h.Number, Par: h.Par, StrokeIndex: h.StrokeIndex})
	}
	require.NoError(t, r.CreateCompetition(ctx, c))

	g := &models.Group{CompetitionID: c.ID, StartingHole: 1, Players: []models.Player{
		{Name: "A", CourseHandicap: 10.4}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}}
	require.NoError(t, r.CreateGroup(ctx, g))
	assert.Equal(t, 1, g.GroupNumber)

	a := g.Players[0].ID
	require.NoError(t, r.UpsertScore(ctx, a, 1, 5))
	require.NoError(t, r.UpsertScore(ctx, a, 1, 4))
	require.NoError(t, r.UpsertScore(ctx, a, 2, 3))
	require.NoError(t, r.DeleteScore(ctx, a, 2))

	p, err := r.GetPlayer(ctx, c.ID, a)
	require.NoError(t, err)
	require.Len(t, p.Scores, 1)
	assert.Equal(t, 4, p.Scores[0].GrossScore)
	assert.Equal(t, 10.4, p.CourseHandicap)

	_, err = r.GetPlayer(ctx, uuid.New(), a)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := r.GetCompetition(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Holes, scoring.HoleCount)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, []string{
		got.Groups[0].Players[0].Name, got.Groups[0].Players[1].Name,
		got.Groups[0].Players[2].Name, got.Groups[0].Players[3].Name,
	})

	require.NoError(t, r.SetCompetitionStatus(ctx, c.ID, models.CompetitionStatusActive))
	ids, err := r.ListCompetitionIDsByStatus(ctx, models.CompetitionStatusActive)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID}, ids)

	now := time.Now().UTC()
	snap := []models.TeamSnapshot{{CompetitionID: c.ID, GroupID: g.ID, Slot: 0, Total: 3, ComputedAt: now}}
	require.NoError(t, r.SaveTeamSnapshots(ctx, snap))
	snap[0].ID = uuid.Nil
	snap[0].Total = 5
	require.NoError(t, r.SaveTeamSnapshots(ctx, snap))

	stored, err := r.ListTeamSnapshots(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 5, stored[0].Total)

	require.NoError(t, r.UpdateCourseHandicap(ctx, g.Players[1].ID, 18))
	assert.ErrorIs(t, r.UpdateCourseHandicap(ctx, uuid.New(), 1), ErrNotFound)
	assert.ErrorIs(t, r.CreateGroup(ctx, &models.Group{CompetitionID: uuid.New()}), ErrNotFound)
}
