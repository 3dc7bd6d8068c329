// Package service holds the application logic between the HTTP layer and storage: it loads
// a competition, converts it into the scoring engine's inputs, and records score changes.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/repository"
	"github.com/trentd187/golf-scoring/internal/scoring"
)

// ErrInvalidHole is returned for a hole number outside 1–18.
var ErrInvalidHole = errors.New("hole must be between 1 and 18")

// Scoreboard computes leaderboards and records scores for competitions.
type Scoreboard struct {
	repo   repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Scoreboard backed by repo.
func New(repo repository.Repository, logger *zap.Logger) *Scoreboard {
	return &Scoreboard{repo: repo, logger: logger, now: time.Now}
}

// Leaderboard is a computed competition: the card in use, every player round and the
// ranked rows.
type Leaderboard struct {
	Competition *models.Competition
	Holes       scoring.Holes
	Allowance   float64
	Standings   scoring.Standings
	// GroupIDs maps a group index in Standings back to the stored group.
	GroupIDs []uuid.UUID
	// PlayerIDs mirrors Standings.Rounds.
	PlayerIDs [][]uuid.UUID
}

// RoundFor returns the computed round of the given player.
func (l *Leaderboard) RoundFor(playerID uuid.UUID) (scoring.PlayerRound, bool) {
	for g, ids := range l.PlayerIDs {
		for i, id := range ids {
			if id == playerID {
				return l.Standings.Rounds[g][i], true
			}
		}
	}
	return scoring.PlayerRound{}, false
}

// HolesFor returns the scoring card of a stored competition.
func HolesFor(c *models.Competition) scoring.Holes {
	in := make([]scoring.Hole, len(c.Holes))
	for i, h := range c.Holes {
		in[i] = scoring.Hole{Number: h.HoleNumber, Par: h.Par, StrokeIndex: h.StrokeIndex}
	}
	return scoring.NormalizeHoles(in)
}

// PlayerFor converts a stored player and their scores into an engine Player.
// Scores for hole numbers outside 1–18 are ignored.
func PlayerFor(p models.Player) scoring.Player {
	out := scoring.Player{Name: p.Name, CourseHandicap: p.CourseHandicap}
	for _, s := range p.Scores {
		if s.HoleNumber >= 1 && s.HoleNumber <= scoring.HoleCount {
			out.Gross[s.HoleNumber-1] = scoring.Strokes(s.GrossScore)
		}
	}
	return out
}

// Leaderboard loads and computes the competition's current standings.
func (s *Scoreboard) Leaderboard(ctx context.Context, competitionID uuid.UUID) (*Leaderboard, error) {
	c, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.repo.ListTeamSnapshots(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return s.compute(c, snapshots), nil
}

func (s *Scoreboard) compute(c *models.Competition, snapshots []models.TeamSnapshot) *Leaderboard {
	lb := &Leaderboard{
		Competition: c,
		Holes:       HolesFor(c),
		Allowance:   c.Allowance(),
		GroupIDs:    make([]uuid.UUID, len(c.Groups)),
		PlayerIDs:   make([][]uuid.UUID, len(c.Groups)),
	}

	groupIndex := make(map[uuid.UUID]int, len(c.Groups))
	groups := make([][]scoring.Player, len(c.Groups))
	for g, group := range c.Groups {
		lb.GroupIDs[g] = group.ID
		groupIndex[group.ID] = g
		groups[g] = make([]scoring.Player, len(group.Players))
		lb.PlayerIDs[g] = make([]uuid.UUID, len(group.Players))
		for i, p := range group.Players {
			groups[g][i] = PlayerFor(p)
			lb.PlayerIDs[g][i] = p.ID
		}
	}

	stored := make(map[scoring.TeamKey]int, len(snapshots))
	for _, snap := range snapshots {
		if g, ok := groupIndex[snap.GroupID]; ok {
			stored[scoring.TeamKey{Group: g, Slot: snap.Slot}] = snap.Total
		}
	}

	lb.Standings = scoring.BuildStandings(scoring.Competition{
		Format:    c.Type,
		Allowance: lb.Allowance,
		Holes:     lb.Holes,
		Groups:    groups,
	}, stored)
	return lb
}

// PlayerRound computes one player's round.
func (s *Scoreboard) PlayerRound(ctx context.Context, competitionID, playerID uuid.UUID) (scoring.PlayerRound, error) {
	lb, err := s.Leaderboard(ctx, competitionID)
	if err != nil {
		return scoring.PlayerRound{}, err
	}
	r, ok := lb.RoundFor(playerID)
	if !ok {
		return scoring.PlayerRound{}, fmt.Errorf("player %s: %w", playerID, repository.ErrNotFound)
	}
	return r, nil
}

// ScoreResult describes an accepted score write.
type ScoreResult struct {
	PlayerID    uuid.UUID
	Hole        int
	Previous    scoring.Gross
	Gross       scoring.Gross
	Category    scoring.Category
	Notable     bool // Category is new for this cell and worth announcing
	Round       scoring.PlayerRound
	Leaderboard *Leaderboard
}

// RecordScore writes one cell. raw is the value as typed; empty or non-numeric input
// clears the cell. The write is last-write-wins and the returned leaderboard is computed
// from storage after the write, so it also reflects concurrent writers.
func (s *Scoreboard) RecordScore(ctx context.Context, competitionID, playerID uuid.UUID, hole int, raw string) (*ScoreResult, error) {
	if hole < 1 || hole > scoring.HoleCount {
		return nil, ErrInvalidHole
	}

	player, err := s.repo.GetPlayer(ctx, competitionID, playerID)
	if err != nil {
		return nil, err
	}
	previous := PlayerFor(*player).Gross[hole-1]
	gross := scoring.ParseGross(raw)

	if gross.Played {
		err = s.repo.UpsertScore(ctx, playerID, hole, gross.Strokes)
	} else {
		err = s.repo.DeleteScore(ctx, playerID, hole)
	}
	if err != nil {
		return nil, err
	}

	lb, err := s.Leaderboard(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if gross.Played && lb.Competition.Status == models.CompetitionStatusUpcoming {
		if err := s.repo.SetCompetitionStatus(ctx, competitionID, models.CompetitionStatusActive); err != nil {
			s.logger.Warn("failed to mark competition active", zap.String("competition_id", competitionID.String()), zap.Error(err))
		} else {
			lb.Competition.Status = models.CompetitionStatusActive
		}
	}

	res := &ScoreResult{
		PlayerID:    playerID,
		Hole:        hole,
		Previous:    previous,
		Gross:       gross,
		Leaderboard: lb,
	}
	res.Category, res.Notable = scoring.Detect(previous, gross, lb.Holes[hole-1].Par)
	res.Round, _ = lb.RoundFor(playerID)

	s.logger.Debug("score recorded",
		zap.String("competition_id", competitionID.String()),
		zap.String("player_id", playerID.String()),
		zap.Int("hole", hole),
		zap.Bool("played", gross.Played),
		zap.Int("gross", gross.Strokes),
		zap.String("category", string(res.Category)),
	)
	return res, nil
}

// UpdateCourseHandicap sets a player's course handicap from form input. Empty or
// non-numeric input is 0.
func (s *Scoreboard) UpdateCourseHandicap(ctx context.Context, competitionID, playerID uuid.UUID, raw string) (scoring.PlayerRound, error) {
	if _, err := s.repo.GetPlayer(ctx, competitionID, playerID); err != nil {
		return scoring.PlayerRound{}, err
	}
	if err := s.repo.UpdateCourseHandicap(ctx, playerID, scoring.ParseHandicap(raw)); err != nil {
		return scoring.PlayerRound{}, err
	}
	return s.PlayerRound(ctx, competitionID, playerID)
}
