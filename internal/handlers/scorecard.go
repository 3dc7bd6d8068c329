package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-scoring/internal/scorecard"
	"github.com/trentd187/golf-scoring/internal/service"
)

// maxScorecardSize bounds uploads; a full card is a few kilobytes.
const maxScorecardSize = 2 << 20

// ImportScorecard handles POST /api/v1/competitions/:id/scorecard with a multipart
// "file" field holding a CSV or XLSX card. The response reports how many rows were
// matched to competitors and which were not.
func ImportScorecard(s *service.Scoreboard, live Live) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "multipart field \"file\" is required")
		}
		if fh.Size > maxScorecardSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "scorecard file too large"})
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}

		card, err := scorecard.Parse(fh.Filename, data)
		if err != nil {
			return badRequest(c, err.Error())
		}
		res, err := s.ApplyScorecard(c.UserContext(), id, card)
		if err != nil {
			return fail(c, err, "competition not found")
		}
		live.Metrics.ScoresRecorded.Add(float64(res.ScoresWritten))

		if lb, err := s.Leaderboard(c.UserContext(), id); err == nil {
			live.publish(c, id, ScoreUpdate{Type: "score_update", Leaderboard: leaderboardResponse(lb)})
		}
		return c.JSON(res)
	}
}
