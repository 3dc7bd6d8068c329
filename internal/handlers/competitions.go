package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-scoring/internal/models"
	"github.com/trentd187/golf-scoring/internal/scoring"
	"github.com/trentd187/golf-scoring/internal/service"
)

// CreateCompetitionRequest is the body of POST /api/v1/competitions.
type CreateCompetitionRequest struct {
	Name              string         `json:"name"`
	Type              scoring.Format `json:"type"`
	HandicapAllowance *float64       `json:"handicap_allowance"` // Percent; omitted uses the type default
	Holes             []scoring.Hole `json:"holes"`              // Omitted uses the default course card
	PlayDate          *string        `json:"play_date"`          // YYYY-MM-DD
}

// CreateGroupRequest is the body of POST /api/v1/competitions/:id/groups. Player order
// decides 4BBB pairings: the first two play together, then the next two.
type CreateGroupRequest struct {
	TeeTime *string `json:"tee_time"` // RFC 3339
	Players []struct {
		Name           string  `json:"name"`
		CourseHandicap float64 `json:"course_handicap"`
	} `json:"players"`
}

// ListCompetitions handles GET /api/v1/competitions, newest first.
func ListCompetitions(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comps, err := s.ListCompetitions(c.UserContext())
		if err != nil {
			return err
		}
		resp := make([]CompetitionResponse, 0, len(comps))
		for i := range comps {
			resp = append(resp, competitionResponse(&comps[i]))
		}
		return c.JSON(resp)
	}
}

// CreateCompetition handles POST /api/v1/competitions.
func CreateCompetition(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCompetitionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		playDate, err := parseOptionalDate(req.PlayDate)
		if err != nil {
			return badRequest(c, "play_date must be in YYYY-MM-DD format")
		}

		comp, err := s.CreateCompetition(c.UserContext(), service.NewCompetition{
			Name:      req.Name,
			Type:      req.Type,
			Allowance: req.HandicapAllowance,
			Holes:     req.Holes,
			PlayDate:  playDate,
		})
		if err != nil {
			return fail(c, err, "competition not found")
		}
		return c.Status(fiber.StatusCreated).JSON(competitionResponse(comp))
	}
}

// GetCompetition handles GET /api/v1/competitions/:id: the competition with its card
// and groups.
func GetCompetition(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		lb, err := s.Leaderboard(c.UserContext(), id)
		if err != nil {
			return fail(c, err, "competition not found")
		}
		resp := competitionResponse(lb.Competition)
		resp.Holes = lb.Holes[:]
		return c.JSON(resp)
	}
}

// AddGroup handles POST /api/v1/competitions/:id/groups.
func AddGroup(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		var req CreateGroupRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		teeTime, err := parseOptionalTime(req.TeeTime)
		if err != nil {
			return badRequest(c, "tee_time must be an RFC 3339 timestamp")
		}

		players := make([]service.NewPlayer, len(req.Players))
		for i, p := range req.Players {
			players[i] = service.NewPlayer{Name: p.Name, CourseHandicap: p.CourseHandicap}
		}
		g, err := s.AddGroup(c.UserContext(), id, players, teeTime)
		if err != nil {
			return fail(c, err, "competition not found")
		}
		return c.Status(fiber.StatusCreated).JSON(groupResponse(*g))
	}
}

// GetLeaderboard handles GET /api/v1/competitions/:id/leaderboard.
func GetLeaderboard(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		lb, err := s.Leaderboard(c.UserContext(), id)
		if err != nil {
			return fail(c, err, "competition not found")
		}
		return c.JSON(leaderboardResponse(lb))
	}
}

// UpdateStatus handles PUT /api/v1/competitions/:id/status with {"status": "..."}.
func UpdateStatus(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		var req struct {
			Status models.CompetitionStatus `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := s.SetStatus(c.UserContext(), id, req.Status); err != nil {
			return fail(c, err, "competition not found")
		}
		return c.JSON(fiber.Map{"status": req.Status})
	}
}
