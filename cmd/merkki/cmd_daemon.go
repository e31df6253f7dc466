package main

import (
	"context"
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/yairfalse/merkki/telemetry"
)

var (
	daemonInterval    time.Duration
	daemonMetricsPort int
	daemonRegion      string
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run continuous tagging daemon",
	Long: `Run Merkki in daemon mode: a tagging pass at every interval,
so resources get their owner tags minutes after creation instead of
at the next manual run.

Features:
- Continuous tagging loop with an immediate first pass
- Prometheus metrics on /metrics endpoint
- Health checks on /health, /-/healthy, /-/ready
- Per-run history in the local store
- Graceful shutdown on SIGTERM/SIGINT`,
	Example: `  merkki daemon                     # Run with defaults
  merkki daemon --interval 10m      # Tag every 10 minutes
  merkki daemon --metrics-port 9090 # Custom metrics port
  merkki daemon --region us-west-2  # Specific region`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	daemonCmd.Flags().DurationVar(&daemonInterval, "interval", 15*time.Minute, "Tagging interval")
	daemonCmd.Flags().IntVar(&daemonMetricsPort, "metrics-port", 2112, "Metrics HTTP server port")
	daemonCmd.Flags().StringVar(&daemonRegion, "region", "", "AWS region (overrides config)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if daemonRegion != "" {
		cfg.Region = daemonRegion
	}
	// A lookback shorter than the interval would miss events between passes.
	if windowHours := int(daemonInterval.Hours()) + 1; cfg.LookbackHours < windowHours {
		cfg.LookbackHours = windowHours
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown, err := telemetry.InitOTEL(ctx, telemetry.Config{
		ServiceName:    "merkki",
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		_ = shutdown(flushCtx)
	}()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	fmt.Printf("Starting Merkki daemon...\n")
	fmt.Printf("   Region: %s\n", cfg.Region)
	fmt.Printf("   Interval: %s\n", daemonInterval)
	fmt.Printf("   Metrics: http://localhost:%d/metrics\n\n", daemonMetricsPort)

	var g run.Group

	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	srv := metricsServer(daemonMetricsPort)
	g.Add(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics server error: %w", err)
		}
		return nil
	}, func(error) {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = srv.Shutdown(stopCtx)
	})

	loopCtx, loopCancel := context.WithCancel(ctx)
	g.Add(func() error {
		return tagLoop(loopCtx, p, daemonInterval)
	}, func(error) {
		loopCancel()
	})

	err = g.Run()
	if _, ok := err.(run.SignalError); ok {
		fmt.Println("\nDaemon stopped")
		return nil
	}
	return err
}

// tagLoop runs one pass immediately, then one per tick until cancelled.
func tagLoop(ctx context.Context, p *pipeline, interval time.Duration) error {
	if err := tagPass(ctx, p); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := tagPass(ctx, p); err != nil {
				return err
			}
		}
	}
}

// tagPass runs one pipeline pass. Pass failures are logged, not fatal:
// CloudTrail hiccups should not take the daemon down.
func tagPass(ctx context.Context, p *pipeline) error {
	result, err := p.RunOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		p.logger.WithContext(ctx).Error().Err(err).Msg("tagging pass failed")
		return nil
	}

	fmt.Printf("[%s] processed=%d tagged=%d errors=%d\n",
		result.EndTime.Format(time.RFC3339),
		result.Stats.Processed, result.Stats.Tagged, result.Stats.Errors)
	return nil
}

// metricsServer serves the Prometheus registry plus health endpoints.
func metricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(telemetry.PrometheusRegistry, promhttp.HandlerOpts{}))

	healthy := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}
	mux.HandleFunc("/health", healthy)
	mux.HandleFunc("/-/healthy", healthy)
	mux.HandleFunc("/-/ready", healthy)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
