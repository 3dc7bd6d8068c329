// Package repository is the storage boundary for competitions, players and scores.
// Handlers and services only see the Repository interface; the Postgres (GORM)
// implementation is used in deployment and the in-memory one for local runs and tests.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trentd187/golf-scoring/internal/models"
)

// ErrNotFound is returned when a competition or player does not exist.
var ErrNotFound = errors.New("record not found")

// Repository stores competitions and their scores.
//
// Score writes are last-write-wins per (player, hole): UpsertScore overwrites whatever is
// in the cell and DeleteScore empties it. No other conflict handling exists.
type Repository interface {
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	// CreateCompetition inserts the competition and any holes attached to it.
	CreateCompetition(ctx context.Context, c *models.Competition) error
	// GetCompetition loads a competition with holes (by number), groups (by number),
	// players (by position) and their scores.
	GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	ListCompetitionIDsByStatus(ctx context.Context, status models.CompetitionStatus) ([]uuid.UUID, error)
	SetCompetitionStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error
	ReplaceHoles(ctx context.Context, competitionID uuid.UUID, holes []models.Hole) error

	// CreateGroup inserts the group and its players. GroupNumber is assigned as the next
	// number in the competition.
	CreateGroup(ctx context.Context, g *models.Group) error
	GetPlayer(ctx context.Context, competitionID, playerID uuid.UUID) (*models.Player, error)
	UpdateCourseHandicap(ctx context.Context, playerID uuid.UUID, courseHandicap float64) error

	UpsertScore(ctx context.Context, playerID uuid.UUID, hole, gross int) error
	DeleteScore(ctx context.Context, playerID uuid.UUID, hole int) error

	ListTeamSnapshots(ctx context.Context, competitionID uuid.UUID) ([]models.TeamSnapshot, error)
	// SaveTeamSnapshots upserts one row per (competition, group, slot).
	SaveTeamSnapshots(ctx context.Context, snapshots []models.TeamSnapshot) error
}
