package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/metrics"
	"github.com/trentd187/golf-scoring/internal/notify"
	"github.com/trentd187/golf-scoring/internal/scoring"
	"github.com/trentd187/golf-scoring/internal/service"
	"github.com/trentd187/golf-scoring/internal/websocket"
)

// Live carries what the write handlers need to tell spectators about a change.
type Live struct {
	Broadcaster websocket.Broadcaster
	Announcer   *notify.Announcer
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// ScoreRequest is the body of PUT .../scores/:hole. gross may be a number, a string as
// typed into the cell, or null; anything that is not a whole number clears the cell.
type ScoreRequest struct {
	Gross any `json:"gross"`
}

// HandicapRequest is the body of PUT .../handicap. Non-numeric values count as 0.
type HandicapRequest struct {
	CourseHandicap any `json:"course_handicap"`
}

// ScoreResponse is a ScoreUpdate plus the notable result of the write, if any.
type ScoreResponse struct {
	ScoreUpdate
	Category scoring.Category `json:"category,omitempty"`
	Notable  bool             `json:"notable"`
}

// cellText turns a decoded JSON value back into the text a scorer would have typed.
func cellText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// RecordScore handles PUT /api/v1/competitions/:id/players/:playerID/scores/:hole.
// The write is last-write-wins; the recomputed leaderboard goes to every spectator of
// the competition and is also returned.
func RecordScore(s *service.Scoreboard, live Live) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		playerID, ok, err := uuidParam(c, "playerID")
		if !ok {
			return err
		}
		hole, err := c.ParamsInt("hole")
		if err != nil {
			return badRequest(c, "hole must be a number")
		}
		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		res, err := s.RecordScore(c.UserContext(), competitionID, playerID, hole, cellText(req.Gross))
		if err != nil {
			return fail(c, err, "competition or player not found")
		}
		if res.Gross.Played {
			live.Metrics.ScoresRecorded.Inc()
		} else {
			live.Metrics.ScoresCleared.Inc()
		}

		update := ScoreUpdate{
			Type:        "score_update",
			Hole:        hole,
			Round:       roundResponse(playerID, res.Round),
			Leaderboard: leaderboardResponse(res.Leaderboard),
		}
		live.publish(c, competitionID, update)

		if res.Notable {
			key := notify.Key{CompetitionID: competitionID, PlayerID: playerID, Hole: hole, Category: res.Category}
			if live.Announcer.ShouldAnnounce(c.UserContext(), key) {
				live.Metrics.Notable(res.Category)
				live.publish(c, competitionID, NotableEvent{
					Type:          "notable_event",
					CompetitionID: competitionID.String(),
					PlayerID:      playerID.String(),
					Player:        res.Round.Name,
					Hole:          hole,
					Par:           res.Leaderboard.Holes[hole-1].Par,
					Gross:         res.Gross.Strokes,
					Category:      res.Category,
				})
			}
		}

		return c.JSON(ScoreResponse{ScoreUpdate: update, Category: res.Category, Notable: res.Notable})
	}
}

// UpdateHandicap handles PUT /api/v1/competitions/:id/players/:playerID/handicap and
// returns the player's recomputed round.
func UpdateHandicap(s *service.Scoreboard, live Live) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		playerID, ok, err := uuidParam(c, "playerID")
		if !ok {
			return err
		}
		var req HandicapRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		r, err := s.UpdateCourseHandicap(c.UserContext(), competitionID, playerID, cellText(req.CourseHandicap))
		if err != nil {
			return fail(c, err, "competition or player not found")
		}

		// Strokes received change everywhere, so spectators get a fresh leaderboard.
		if lb, err := s.Leaderboard(c.UserContext(), competitionID); err == nil {
			live.publish(c, competitionID, ScoreUpdate{
				Type:        "score_update",
				Round:       roundResponse(playerID, r),
				Leaderboard: leaderboardResponse(lb),
			})
		}
		return c.JSON(roundResponse(playerID, r))
	}
}

// GetPlayerRound handles GET /api/v1/competitions/:id/players/:playerID/round.
func GetPlayerRound(s *service.Scoreboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		playerID, ok, err := uuidParam(c, "playerID")
		if !ok {
			return err
		}
		r, err := s.PlayerRound(c.UserContext(), competitionID, playerID)
		if err != nil {
			return fail(c, err, "competition or player not found")
		}
		return c.JSON(roundResponse(playerID, r))
	}
}

func (l Live) publish(c *fiber.Ctx, competitionID uuid.UUID, msg any) {
	data, err := c.App().Config().JSONEncoder(msg)
	if err != nil {
		l.Logger.Error("encode live message", zap.Error(err))
		return
	}
	l.Broadcaster.Broadcast(competitionID.String(), data)
}
