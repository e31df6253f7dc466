package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/yairfalse/merkki/config"
	"github.com/yairfalse/merkki/extract"
	"github.com/yairfalse/merkki/history"
	"github.com/yairfalse/merkki/tagger"
	"github.com/yairfalse/merkki/tagging"
	"github.com/yairfalse/merkki/telemetry"
	"github.com/yairfalse/merkki/trail"
	"github.com/yairfalse/merkki/types"
)

// pipeline bundles everything one run needs: the event source, the
// tagger, and the run history store.
type pipeline struct {
	cfg     *config.Config
	trail   *trail.Client
	tagger  *tagger.Tagger
	history *history.Store
	metrics *telemetry.RunMetrics
	logger  *telemetry.Logger
}

// newPipeline wires the full pipeline from config. Callers own Close.
func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clients, err := tagging.NewClients(ctx, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS clients: %w", err)
	}

	strategies, err := tagging.NewAWSRegistry(clients)
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy registry: %w", err)
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	metrics, err := telemetry.NewRunMetrics()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	t := tagger.New(extract.NewRegistry(), strategies, cfg.Tagging, tagger.Options{
		Region:     cfg.Region,
		Workers:    cfg.Workers,
		TagTimeout: cfg.TagTimeout,
	})

	return &pipeline{
		cfg:     cfg,
		trail:   trail.NewClient(awsCfg),
		tagger:  t,
		history: store,
		metrics: metrics,
		logger:  telemetry.NewLogger("pipeline"),
	}, nil
}

// Close releases the history store.
func (p *pipeline) Close() error {
	return p.history.Close()
}

// RunOnce fetches one lookback window of events and tags everything in it.
func (p *pipeline) RunOnce(ctx context.Context) (types.ProcessingResult, error) {
	lookback := time.Duration(p.cfg.LookbackHours) * time.Hour

	events, err := p.trail.FetchWriteEvents(ctx, lookback)
	if err != nil {
		return types.ProcessingResult{}, fmt.Errorf("failed to fetch CloudTrail events: %w", err)
	}

	result := p.tagger.Process(ctx, events)

	p.metrics.RecordRun(ctx, result.Region,
		result.Stats.Processed, result.Stats.Tagged, result.Stats.Errors,
		result.Duration().Seconds())

	if err := p.history.Append(result); err != nil {
		p.logger.WithContext(ctx).Warn().Err(err).Msg("failed to record run history")
	}

	return result, nil
}

// printSummary renders one run result for the terminal.
func printSummary(result types.ProcessingResult) {
	fmt.Printf("Run Summary (%s):\n", result.Region)
	fmt.Printf("   Creation events: %d\n", result.Stats.Processed)
	fmt.Printf("   Tagged: %d\n", result.Stats.Tagged)
	fmt.Printf("   Errors: %d\n", result.Stats.Errors)
	fmt.Printf("   Duration: %s\n", result.Duration().Round(time.Millisecond))
	fmt.Printf("\n")

	if len(result.Outcomes) == 0 {
		fmt.Println("No resources to tag in this window.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RESOURCE\tTYPE\tEVENT\tPRINCIPAL\tRESULT")
	_, _ = fmt.Fprintln(w, "--------\t----\t-----\t---------\t------")

	for _, out := range result.Outcomes {
		status := "tagged"
		if !out.Tagged {
			status = truncate(out.Error, 50)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(out.Ref.ID, 40),
			out.Ref.Type,
			out.Ref.EventName,
			truncate(out.Ref.Principal, 20),
			status,
		)
	}

	_ = w.Flush()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
