package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/scoring"
)

// Key identifies one announcement.
type Key struct {
	CompetitionID uuid.UUID
	PlayerID      uuid.UUID
	Hole          int
	Category      scoring.Category
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d:%s", k.CompetitionID, k.PlayerID, k.Hole, k.Category)
}

// Announcer gates notable-event announcements through a Store.
type Announcer struct {
	store  Store
	logger *zap.Logger
}

func NewAnnouncer(store Store, logger *zap.Logger) *Announcer {
	return &Announcer{store: store, logger: logger}
}

// ShouldAnnounce reports whether the event is new within the dedupe window. A store
// failure suppresses the announcement; the score itself is already saved.
func (a *Announcer) ShouldAnnounce(ctx context.Context, k Key) bool {
	if k.Category == scoring.CategoryNone {
		return false
	}
	ok, err := a.store.Claim(ctx, k.String())
	if err != nil {
		a.logger.Warn("announcement dedupe failed", zap.String("key", k.String()), zap.Error(err))
		return false
	}
	return ok
}
