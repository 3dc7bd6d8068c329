package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/scorecard"
	"github.com/trentd187/golf-scoring/internal/scoring"
)

// ErrInvalid marks input the caller has to fix. Wrapped errors carry the detail.
var ErrInvalid = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// NewCompetition is the input for CreateCompetition.
type NewCompetition struct {
	Name      string
	Type      scoring.Format
	Allowance *float64       // nil uses the type's default
	Holes     []scoring.Hole // empty uses the default course card
	PlayDate  *time.Time
}

// CreateCompetition validates and stores a new competition.
func (s *Scoreboard) CreateCompetition(ctx context.Context, in NewCompetition) (*models.Competition, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("type must be one of %q, %q, %q or %q",
			scoring.FormatMedal, scoring.FormatFourBall, scoring.FormatAlliance, scoring.FormatStableford)
	}
	if in.Allowance != nil && *in.Allowance < 0 {
		return nil, invalid("handicap_allowance must not be negative")
	}
	if len(in.Holes) > 0 && !scoring.ValidHoles(in.Holes) {
		return nil, invalid("holes must list 18 holes numbered 1-18 with positive pars and stroke indexes 1-18 used once")
	}

	c := &models.Competition{
		Name:              name,
		Type:              in.Type,
		Status:            models.CompetitionStatusUpcoming,
		HandicapAllowance: in.Allowance,
		PlayDate:          in.PlayDate,
		Holes:             holeModels(in.Holes),
	}
	if err := s.repo.CreateCompetition(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("competition created",
		zap.String("competition_id", c.ID.String()),
		zap.String("type", string(c.Type)),
		zap.Float64("allowance", c.Allowance()),
	)
	return c, nil
}

func holeModels(holes []scoring.Hole) []models.Hole {
	if len(holes) == 0 {
		return nil
	}
	out := make([]models.Hole, len(holes))
	for i, h := range holes {
		out[i] = models.Hole{HoleNumber: h.Number, Par: h.Par, StrokeIndex: h.StrokeIndex}
	}
	return out
}

// NewPlayer is one entry of AddGroup.
type NewPlayer struct {
	Name           string
	CourseHandicap float64
}

// AddGroup appends a group of players to a competition. Names must be unique within
// the group; order is kept and decides 4BBB pairs.
func (s *Scoreboard) AddGroup(ctx context.Context, competitionID uuid.UUID, players []NewPlayer, teeTime *time.Time) (*models.Group, error) {
	if len(players) == 0 {
		return nil, invalid("a group needs at least one player")
	}

	seen := make(map[string]bool, len(players))
	g := &models.Group{CompetitionID: competitionID, TeeTime: teeTime, StartingHole: 1}
	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, invalid("player name is required")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, invalid("player %q appears twice in the group", name)
		}
		seen[key] = true
		g.Players = append(g.Players, models.Player{Name: name, CourseHandicap: p.CourseHandicap})
	}

	if err := s.repo.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportResult summarises ApplyScorecard.
type ImportResult struct {
	HolesUpdated  bool     `json:"holes_updated"`
	Matched       int      `json:"matched"`
	ScoresWritten int      `json:"scores_written"`
	Unmatched     []string `json:"unmatched"`
}

// ApplyScorecard writes an imported card into a competition. A complete Par/SI block
// replaces the course card. Player rows are matched to competitors by name and every
// entered cell is written (last write wins); blank cells leave existing scores alone.
func (s *Scoreboard) ApplyScorecard(ctx context.Context, competitionID uuid.UUID, card *scorecard.Card) (*ImportResult, error) {
	c, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	if card.Holes != nil {
		if !scoring.ValidHoles(card.Holes) {
			return nil, invalid("scorecard Par/SI rows do not describe a valid 18-hole card")
		}
		if err := s.repo.ReplaceHoles(ctx, competitionID, holeModels(card.Holes)); err != nil {
			return nil, err
		}
		res.HolesUpdated = true
	}

	var ids []uuid.UUID
	var names []string
	for _, g := range c.Groups {
		for _, p := range g.Players {
			ids = append(ids, p.ID)
			names = append(names, p.Name)
		}
	}

	matches, unmatched := scorecard.MatchPlayers(names, card.Rows)
	res.Matched = len(matches)
	res.Unmatched = unmatched
	for _, m := range matches {
		row := card.Rows[m.Row]
		for i, g := range row.Gross {
			if !g.Played {
				continue
			}
			if err := s.repo.UpsertScore(ctx, ids[m.Player], i+1, g.Strokes); err != nil {
				return nil, err
			}
			res.ScoresWritten++
		}
	}

	if res.ScoresWritten > 0 && c.Status == models.CompetitionStatusUpcoming {
		if err := s.repo.SetCompetitionStatus(ctx, competitionID, models.CompetitionStatusActive); err != nil {
			return nil, err
		}
	}

	s.logger.Info("scorecard imported",
		zap.String("competition_id", competitionID.String()),
		zap.Bool("holes_updated", res.HolesUpdated),
		zap.Int("matched", res.Matched),
		zap.Int("scores_written", res.ScoresWritten),
		zap.Strings("unmatched", res.Unmatched),
	)
	return res, nil
}

// ListCompetitions returns every competition, newest first, without groups or holes.
func (s *Scoreboard) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	return s.repo.ListCompetitions(ctx)
}

// SetStatus moves a competition through its lifecycle. Completed competitions drop out
// of the snapshot job; scores can still be corrected.
func (s *Scoreboard) SetStatus(ctx context.Context, competitionID uuid.UUID, status models.CompetitionStatus) error {
	switch status {
	case models.CompetitionStatusUpcoming, models.CompetitionStatusActive, models.CompetitionStatusCompleted:
	default:
		return invalid("status must be one of %q, %q or %q",
			models.CompetitionStatusUpcoming, models.CompetitionStatusActive, models.CompetitionStatusCompleted)
	}
	return s.repo.SetCompetitionStatus(ctx, competitionID, status)
}
