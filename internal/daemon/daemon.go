package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/upward-labs/upward/internal/api"
	"github.com/upward-labs/upward/internal/app/challenge"
	"github.com/upward-labs/upward/internal/app/goals"
	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/app/social"
	"github.com/upward-labs/upward/internal/health"
	_ "github.com/upward-labs/upward/internal/infra/metrics" // Register Prometheus metrics
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Daemon is the core Upward runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	Health *health.Checker
	cancel context.CancelFunc

	Ledger     *progress.Ledger
	Streaks    *progress.Tracker
	Orch       *progress.Orchestrator
	Feed       *progress.Feed
	Goals      *goals.Service
	Challenges *challenge.Service
	Social     *social.Service
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
	db, err := sqlite.Open(upwardHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		db.Close()
		return nil, err
	}

	d := &Daemon{Config: cfg, DB: db}

	d.Ledger = progress.NewLedger(db)
	d.Streaks = progress.NewTracker(db, loc)
	d.Orch = progress.NewOrchestrator(db, loc)
	d.Feed = progress.NewFeed(db)
	d.Goals = goals.NewService(db, d.Orch)
	d.Challenges = challenge.NewService(db, d.Orch, loc)
	d.Social = social.NewService(db, d.Orch)
	d.Health = health.NewChecker(db, upwardHome())

	srv := api.NewServer(api.Services{
		Ledger:     d.Ledger,
		Streaks:    d.Streaks,
		Orch:       d.Orch,
		Feed:       d.Feed,
		Goals:      d.Goals,
		Challenges: d.Challenges,
		Social:     d.Social,
	})
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	srv.SetHealthHandler(d.handleHealth)
	d.Server = srv

	return d, nil
}

// handleHealth reports the latest health check results.
func (d *Daemon) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if !d.Health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"healthy":%t}`, status == http.StatusOK)
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Upward serving on http://%s\n", addr)
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
