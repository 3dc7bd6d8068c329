// Package scheduler runs the periodic team snapshot job.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Snapshotter persists team aggregates of every active competition and reports how
// many stored totals had gone stale.
type Snapshotter interface {
	SnapshotActive(ctx context.Context) (int, error)
}

// Observer receives job results. Metrics implement it; nil is allowed.
type Observer interface {
	SnapshotDone(stale int, err error)
}

type Scheduler struct {
	s        gocron.Scheduler
	snap     Snapshotter
	observer Observer
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

func NewScheduler(snap Snapshotter, observer Observer, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("snapshot interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		snap:     snap,
		observer: observer,
		interval: interval,
		timeout:  interval,
		logger:   logger,
	}, nil
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.snapshot),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create snapshot job: %w", err)
	}

	s.s.Start()
	s.logger.Info("scheduler started", zap.Duration("snapshot_interval", s.interval))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) snapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stale, err := s.snap.SnapshotActive(ctx)
	if err != nil {
		s.logger.Error("team snapshot run failed", zap.Error(err))
	} else if stale > 0 {
		s.logger.Warn("stale team aggregates refreshed", zap.Int("stale", stale))
	}
	if s.observer != nil {
		s.observer.SnapshotDone(stale, err)
	}
}
