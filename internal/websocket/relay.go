package websocket

import (
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// SubjectPrefix is followed by the competition ID.
const SubjectPrefix = "golf.scores."

// Relay fans broadcasts out through NATS so every server instance delivers them to its
// own spectators.
type Relay struct {
	conn   *nats.Conn
	hub    *Hub
	sub    *nats.Subscription
	logger *zap.Logger
}

// NewRelay subscribes to every competition subject and forwards messages into hub.
func NewRelay(conn *nats.Conn, hub *Hub, logger *zap.Logger) (*Relay, error) {
	r := &Relay{conn: conn, hub: hub, logger: logger}

	sub, err := conn.Subscribe(SubjectPrefix+"*", func(m *nats.Msg) {
		hub.Broadcast(strings.TrimPrefix(m.Subject, SubjectPrefix), m.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s*: %w", SubjectPrefix, err)
	}
	r.sub = sub
	return r, nil
}

// Broadcast publishes data for competitionID. When publishing fails the message is
// still delivered to this instance's spectators.
func (r *Relay) Broadcast(competitionID string, data []byte) {
	if err := r.conn.Publish(SubjectPrefix+competitionID, data); err != nil {
		r.logger.Warn("nats publish failed, delivering locally",
			zap.String("competition_id", competitionID), zap.Error(err))
		r.hub.Broadcast(competitionID, data)
	}
}

// Close stops receiving relayed messages. The NATS connection belongs to the caller.
func (r *Relay) Close() error {
	return r.sub.Unsubscribe()
}
