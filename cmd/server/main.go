// Command server runs the live golf scoring API: competitions, score entry, leaderboards
// and a websocket stream of score updates per competition.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/trentd187/golf-scoring/internal/config"
	"github.com/trentd187/golf-scoring/internal/database"
	"github.com/trentd187/golf-scoring/internal/handlers"
	"github.com/trentd187/golf-scoring/internal/logger"
	"github.com/trentd187/golf-scoring/internal/metrics"
	"github.com/trentd187/golf-scoring/internal/middleware"
	"github.com/trentd187/golf-scoring/internal/notify"
	"github.com/trentd187/golf-scoring/internal/repository"
	"github.com/trentd187/golf-scoring/internal/scheduler"
	"github.com/trentd187/golf-scoring/internal/service"
	"github.com/trentd187/golf-scoring/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; config errors go straight to stderr.
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		_, _ = os.Stderr.WriteString("build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres when configured, otherwise process memory.
	var repo repository.Repository
	var ready func(context.Context) error
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL, cfg.Debug)
		if err != nil {
			return err
		}
		if err := database.RunMigrations(database.MigrationsSource, cfg.DatabaseURL); err != nil {
			return err
		}
		repo = repository.NewGorm(db)
		ready = func(ctx context.Context) error { return database.Ping(ctx, db) }
		log.Info("using postgres repository")
	} else {
		repo = repository.NewMemory()
		log.Warn("DATABASE_URL not set, scores are kept in memory only")
	}

	scoreboard := service.New(repo, log)

	hub := websocket.NewHub()
	go hub.Run(ctx)
	m := metrics.New(hub.ClientCount)

	// Notable-event dedupe: shared through Redis when available.
	var store notify.Store = notify.NewMemoryStore(cfg.AnnounceCacheSize, cfg.AnnounceTTL)
	if cfg.RedisURL != "" {
		client, err := notify.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		store = notify.NewRedisStore(client, cfg.AnnounceTTL)
		log.Info("announcement dedupe via redis")
	}

	// Live updates go through NATS when several instances serve the same competitions.
	var broadcaster websocket.Broadcaster = hub
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("golf-scoring"))
		if err != nil {
			return err
		}
		defer nc.Close()
		relay, err := websocket.NewRelay(nc, hub, log)
		if err != nil {
			return err
		}
		defer func() { _ = relay.Close() }()
		broadcaster = relay
		log.Info("live updates relayed via nats")
	}

	if cfg.SnapshotInterval > 0 {
		sched, err := scheduler.NewScheduler(scoreboard, m, cfg.SnapshotInterval, log)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() { _ = sched.Stop() }()
	}

	app := fiber.New(fiber.Config{
		AppName:      "Golf Scoring API",
		ErrorHandler: middleware.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New())

	app.Get("/health", handlers.HealthCheck(ready))
	app.Get("/metrics", m.Handler())
	app.Get("/ws/competitions/:id", websocket.RequireUpgrade, websocket.Serve(hub, log))

	handlers.RegisterAPI(app, scoreboard, handlers.Live{
		Broadcaster: broadcaster,
		Announcer:   notify.NewAnnouncer(store, log),
		Metrics:     m,
		Logger:      log,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
