package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/scoring"
	"github.com/trentd187/golf-scoring/internal/service"
)

// Response structs keep the JSON shape independent of the GORM models.

type CompetitionResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              scoring.Format  `json:"type"`
	Status            string          `json:"status"`
	HandicapAllowance float64         `json:"handicap_allowance"` // Effective percentage
	PlayDate          *string         `json:"play_date"`          // YYYY-MM-DD or null
	CreatedAt         string          `json:"created_at"`
	Holes             []scoring.Hole  `json:"holes,omitempty"`
	Groups            []GroupResponse `json:"groups,omitempty"`
}

type GroupResponse struct {
	ID          string           `json:"id"`
	GroupNumber int              `json:"group_number"`
	TeeTime     *string          `json:"tee_time"` // RFC 3339 or null
	Players     []PlayerResponse `json:"players"`
}

type PlayerResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Position       int     `json:"position"`
	CourseHandicap float64 `json:"course_handicap"`
}

// RoundResponse is a player's scorecard with everything derived from it.
type RoundResponse struct {
	PlayerID        string                  `json:"player_id"`
	Name            string                  `json:"name"`
	PlayingHandicap int                     `json:"playing_handicap"`
	StrokesReceived [scoring.HoleCount]int  `json:"strokes_received"`
	Gross           [scoring.HoleCount]*int `json:"gross"` // null for holes not played
	Net             [scoring.HoleCount]*int `json:"net"`
	Points          [scoring.HoleCount]int  `json:"points"`
	Front           int                     `json:"front"`
	Back            int                     `json:"back"`
	Total           int                     `json:"total"`
	GrossTotal      int                     `json:"gross_total"`
	DTHNet          float64                 `json:"dth_net"`
	HolesPlayed     int                     `json:"holes_played"`
	Thru            string                  `json:"thru"`
}

type LeaderboardRow struct {
	Position    int      `json:"position"`
	GroupID     string   `json:"group_id"`
	Slot        int      `json:"slot"`
	Members     []string `json:"members"`
	Total       int      `json:"total"`
	StoredTotal *int     `json:"stored_total,omitempty"`
	Stale       bool     `json:"stale"`
	Thru        string   `json:"thru"`
	Front       int      `json:"front"`
	Back        int      `json:"back"`
}

type LeaderboardResponse struct {
	CompetitionID string           `json:"competition_id"`
	Type          scoring.Format   `json:"type"`
	Allowance     float64          `json:"handicap_allowance"`
	Holes         scoring.Holes    `json:"holes"`
	Rows          []LeaderboardRow `json:"rows"`
	Rounds        []RoundResponse  `json:"rounds"`
}

// ScoreUpdate is the score_update message sent to spectators and returned by the
// score endpoint.
type ScoreUpdate struct {
	Type        string              `json:"type"`
	Hole        int                 `json:"hole"`
	Round       RoundResponse       `json:"round"`
	Leaderboard LeaderboardResponse `json:"leaderboard"`
}

// NotableEvent is the notable_event message.
type NotableEvent struct {
	Type          string           `json:"type"`
	CompetitionID string           `json:"competition_id"`
	PlayerID      string           `json:"player_id"`
	Player        string           `json:"player"`
	Hole          int              `json:"hole"`
	Par           int              `json:"par"`
	Gross         int              `json:"gross"`
	Category      scoring.Category `json:"category"`
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func competitionResponse(c *models.Competition) CompetitionResponse {
	resp := CompetitionResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Type:              c.Type,
		Status:            string(c.Status),
		HandicapAllowance: c.Allowance(),
		PlayDate:          formatOptionalDate(c.PlayDate),
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(c.Holes) > 0 || len(c.Groups) > 0 {
		holes := service.HolesFor(c)
		resp.Holes = holes[:]
	}
	for _, g := range c.Groups {
		resp.Groups = append(resp.Groups, groupResponse(g))
	}
	return resp
}

func groupResponse(g models.Group) GroupResponse {
	resp := GroupResponse{
		ID:          g.ID.String(),
		GroupNumber: g.GroupNumber,
		Players:     make([]PlayerResponse, 0, len(g.Players)),
	}
	if g.TeeTime != nil {
		s := g.TeeTime.UTC().Format(time.RFC3339)
		resp.TeeTime = &s
	}
	for _, p := range g.Players {
		resp.Players = append(resp.Players, PlayerResponse{
			ID:             p.ID.String(),
			Name:           p.Name,
			Position:       p.Position,
			CourseHandicap: p.CourseHandicap,
		})
	}
	return resp
}

func roundResponse(playerID uuid.UUID, r scoring.PlayerRound) RoundResponse {
	resp := RoundResponse{
		PlayerID:        playerID.String(),
		Name:            r.Name,
		PlayingHandicap: r.PlayingHandicap,
		StrokesReceived: r.StrokesReceived,
		Net:             r.PerHoleNet,
		Points:          r.PerHolePoints,
		Front:           r.Front,
		Back:            r.Back,
		Total:           r.Total,
		GrossTotal:      r.GrossTotal,
		DTHNet:          r.DTHNet,
		HolesPlayed:     r.HolesPlayed,
		Thru:            r.Thru(),
	}
	for i, net := range r.PerHoleNet {
		if net != nil {
			g := *net + r.StrokesReceived[i]
			resp.Gross[i] = &g
		}
	}
	return resp
}

func leaderboardResponse(lb *service.Leaderboard) LeaderboardResponse {
	resp := LeaderboardResponse{
		CompetitionID: lb.Competition.ID.String(),
		Type:          lb.Competition.Type,
		Allowance:     lb.Allowance,
		Holes:         lb.Holes,
		Rows:          make([]LeaderboardRow, 0, len(lb.Standings.Rows)),
		Rounds:        []RoundResponse{},
	}
	for _, row := range lb.Standings.Rows {
		resp.Rows = append(resp.Rows, LeaderboardRow{
			Position:    row.Position,
			GroupID:     lb.GroupIDs[row.Team.Group].String(),
			Slot:        row.Team.Slot,
			Members:     row.Team.Members,
			Total:       row.Total,
			StoredTotal: row.Team.StoredTotal,
			Stale:       row.Stale,
			Thru:        row.Thru,
			Front:       row.Team.Front,
			Back:        row.Team.Back,
		})
	}
	for g, rounds := range lb.Standings.Rounds {
		for i, r := range rounds {
			resp.Rounds = append(resp.Rounds, roundResponse(lb.PlayerIDs[g][i], r))
		}
	}
	return resp
}
