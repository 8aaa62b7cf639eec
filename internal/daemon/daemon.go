package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitquest-health/fitquest/internal/api"
	"github.com/fitquest-health/fitquest/internal/app/notify"
	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/app/tracker"
	_ "github.com/fitquest-health/fitquest/internal/infra/metrics" // Register Prometheus metrics
	"github.com/fitquest-health/fitquest/internal/infra/sqlite"
)

// Daemon is the core FitQuest runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Engine  *progress.Engine
	Tracker *tracker.Tracker
	Notify  *notify.Adapter
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(fitquestHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var opts []progress.Option
	if cfg.Engine.DailyGoalThreshold > 0 {
		opts = append(opts, progress.WithDailyGoalThreshold(cfg.Engine.DailyGoalThreshold))
	}
	engine := progress.New(opts...)

	policy := notify.DefaultPolicy()
	if cfg.Notifications.MaxPerDay > 0 {
		policy.MaxPerDay = cfg.Notifications.MaxPerDay
	}
	if cfg.Notifications.QuietStart != "" {
		policy.QuietStart = cfg.Notifications.QuietStart
	}
	if cfg.Notifications.QuietEnd != "" {
		policy.QuietEnd = cfg.Notifications.QuietEnd
	}
	sink := notify.NewWithPolicy(db, engine, policy)

	trk, err := tracker.New(engine, db, sink)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init tracker: %w", err)
	}

	srv := api.NewServer(trk, sink)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Engine:  engine,
		Tracker: trk,
		Notify:  sink,
		Server:  srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("FitQuest serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
