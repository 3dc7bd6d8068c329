package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-scoring/internal/service"
)

// RegisterAPI mounts the /api/v1 routes on app.
func RegisterAPI(app *fiber.App, s *service.Scoreboard, live Live) {
	api := app.Group("/api/v1")

	api.Get("/competitions", ListCompetitions(s))
	api.Post("/competitions", CreateCompetition(s))
	api.Get("/competitions/:id", GetCompetition(s))
	api.Put("/competitions/:id/status", UpdateStatus(s))
	api.Post("/competitions/:id/groups", AddGroup(s))
	api.Get("/competitions/:id/leaderboard", GetLeaderboard(s))
	api.Post("/competitions/:id/scorecard", ImportScorecard(s, live))

	api.Put("/competitions/:id/players/:playerID/handicap", UpdateHandicap(s, live))
	api.Put("/competitions/:id/players/:playerID/scores/:hole", RecordScore(s, live))
	api.Get("/competitions/:id/players/:playerID/round", GetPlayerRound(s))
}
