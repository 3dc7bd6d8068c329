package websocket

import (
	fws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequireUpgrade rejects plain HTTP requests and malformed competition IDs before the
// connection is upgraded.
func RequireUpgrade(c *fiber.Ctx) error {
	if !fws.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid competition ID"})
	}
	return c.Next()
}

// Serve returns the handler for GET /ws/competitions/:id. The connection is write-only
// from the server's side; reads only detect the client going away.
func Serve(h *Hub, logger *zap.Logger) fiber.Handler {
	return fws.New(func(conn *fws.Conn) {
		client := NewClient(conn.Params("id"))
		h.Register(client)
		defer h.Unregister(client)

		logger.Debug("spectator connected", zap.String("competition_id", client.CompetitionID))

		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					h.Unregister(client)
					return
				}
			}
		}()

		for msg := range client.Send {
			if err := conn.WriteMessage(fws.TextMessage, msg); err != nil {
				logger.Debug("spectator write failed", zap.String("competition_id", client.CompetitionID), zap.Error(err))
				return
			}
		}
	})
}
