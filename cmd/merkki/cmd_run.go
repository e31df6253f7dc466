package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yairfalse/merkki/telemetry"
)

var (
	runRegion   string
	runLookback int
	runWorkers  int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Tag resources created in the lookback window",
	Long: `Run one tagging pass: fetch write events from CloudTrail for the
lookback window, extract the created resources, and tag each one with
its creator and creation time.

Resources that already carry the tags are tagged again with the same
values; reruns are safe.`,
	Example: `  merkki run                        # Tag last 24h in the default region
  merkki run --region eu-west-1     # Specific region
  merkki run --lookback 48          # Last 48 hours
  merkki run --workers 8            # Tag with 8 parallel workers`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runRegion, "region", "r", "", "AWS region (overrides config)")
	runCmd.Flags().IntVar(&runLookback, "lookback", 0, "Lookback window in hours (overrides config)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Parallel tagging workers (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runRegion != "" {
		cfg.Region = runRegion
	}
	if runLookback > 0 {
		cfg.LookbackHours = runLookback
	}
	if runWorkers > 0 {
		cfg.Workers = runWorkers
	}

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

	fmt.Printf("Tagging resources created in the last %dh in %s...\n\n", cfg.LookbackHours, cfg.Region)

	result, err := p.RunOnce(ctx)
	if err != nil {
		return err
	}

	printSummary(result)
	return nil
}
