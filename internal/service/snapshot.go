package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/models"
)

// SnapshotTeams persists every team's live total for one competition and returns how
// many stored totals were stale before the refresh.
func (s *Scoreboard) SnapshotTeams(ctx context.Context, competitionID uuid.UUID) (int, error) {
	lb, err := s.Leaderboard(ctx, competitionID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	stale := 0
	snapshots := make([]models.TeamSnapshot, 0, len(lb.Standings.Teams))
	for _, t := range lb.Standings.Teams {
		if t.Stale() {
			stale++
		}
		snapshots = append(snapshots, models.TeamSnapshot{
			CompetitionID: competitionID,
			GroupID:       lb.GroupIDs[t.Group],
			Slot:          t.Slot,
			Total:         t.Total,
			ComputedAt:    now,
		})
	}
	if err := s.repo.SaveTeamSnapshots(ctx, snapshots); err != nil {
		return 0, err
	}
	return stale, nil
}

// SnapshotActive refreshes team snapshots of every active competition. It keeps going
// past individual failures and returns them joined.
func (s *Scoreboard) SnapshotActive(ctx context.Context) (int, error) {
	ids, err := s.repo.ListCompetitionIDsByStatus(ctx, models.CompetitionStatusActive)
	if err != nil {
		return 0, err
	}

	var errs []error
	stale := 0
	for _, id := range ids {
		n, err := s.SnapshotTeams(ctx, id)
		if err != nil {
			s.logger.Error("team snapshot failed", zap.String("competition_id", id.String()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		stale += n
	}
	return stale, errors.Join(errs...)
}
