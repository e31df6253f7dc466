package tagger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/merkki/config"
	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/extract"
	"github.com/yairfalse/merkki/tagging"
	"github.com/yairfalse/merkki/telemetry"
	"github.com/yairfalse/merkki/types"
)

// Tagger drives one batch through classify, extract, and tag. Each
// Process call is self-contained; a Tagger may run concurrent batches.
type Tagger struct {
	extractors *extract.Registry
	strategies *tagging.Registry
	tagging    config.Tagging
	region     string
	workers    int
	tagTimeout time.Duration
	logger     *telemetry.Logger
	tracer     trace.Tracer
}

// Options tune a Tagger beyond its registries.
type Options struct {
	Region     string
	Workers    int           // tagging fan-out; <=1 means sequential
	TagTimeout time.Duration // per tag call; 0 means no deadline
}

// New creates a Tagger over the given registries.
func New(extractors *extract.Registry, strategies *tagging.Registry, tcfg config.Tagging, opts Options) *Tagger {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Tagger{
		extractors: extractors,
		strategies: strategies,
		tagging:    tcfg,
		region:     opts.Region,
		workers:    opts.Workers,
		tagTimeout: opts.TagTimeout,
		logger:     telemetry.NewLogger("tagger"),
		tracer:     otel.Tracer("tagger"),
	}
}

// slot is one pending or already-decided outcome, keyed by its position
// in the canonical order: input event order, then extraction order.
type slot struct {
	ref  types.ResourceRef
	done bool // extraction already failed; outcome is final
	out  types.TaggingOutcome
}

// Process runs the pipeline over events and returns the aggregated
// result. No single event's failure aborts the batch; cancellation
// truncates processing and returns what was recorded so far.
func (t *Tagger) Process(ctx context.Context, events []event.RawEvent) types.ProcessingResult {
	ctx, span := t.tracer.Start(ctx, "Process")
	defer span.End()

	start := time.Now().UTC()
	t.logger.LogRunStart(ctx, t.region, len(events))

	stats := types.TaggingStats{}
	slots := t.collect(ctx, events, &stats)
	outcomes := t.dispatch(ctx, slots, &stats)

	end := time.Now().UTC()
	t.logger.LogRunComplete(ctx, stats.Processed, stats.Tagged, stats.Errors, end.Sub(start).Seconds())

	return types.ProcessingResult{
		Stats:     stats,
		Outcomes:  outcomes,
		StartTime: start,
		EndTime:   end,
		Region:    t.region,
	}
}

// collect classifies and extracts, producing the ordered slot list.
// Extraction failures become final error slots; Processed counts every
// creation event, extracted or not.
func (t *Tagger) collect(ctx context.Context, events []event.RawEvent, stats *types.TaggingStats) []slot {
	var slots []slot

	for _, ev := range events {
		if ctx.Err() != nil {
			break
		}
		if !t.extractors.IsCreationEvent(ev.Name) {
			continue
		}
		stats.Processed++

		refs, errs := t.extractors.Extract(ev)
		for _, ref := range refs {
			slots = append(slots, slot{ref: ref})
		}
		for _, err := range errs {
			stats.Errors++
			slots = append(slots, slot{
				done: true,
				out: types.TaggingOutcome{
					Ref:   types.ResourceRef{EventName: ev.Name, Principal: ev.Principal, EventTime: ev.Time},
					Error: fmt.Sprintf("extraction failed for %s: %v", ev.Name, err),
				},
			})
		}
	}

	return slots
}

// dispatch tags every pending slot and returns outcomes in slot order.
func (t *Tagger) dispatch(ctx context.Context, slots []slot, stats *types.TaggingStats) []types.TaggingOutcome {
	if t.workers > 1 {
		t.dispatchParallel(ctx, slots, stats)
	} else {
		for i := range slots {
			if slots[i].done {
				continue
			}
			if ctx.Err() != nil {
				break
			}
			slots[i].out = t.tagOne(ctx, slots[i].ref, stats)
			slots[i].done = true
		}
	}

	outcomes := make([]types.TaggingOutcome, 0, len(slots))
	for _, s := range slots {
		if !s.done {
			continue // truncated by cancellation
		}
		outcomes = append(outcomes, s.out)
	}
	return outcomes
}

// dispatchParallel fans tagging out across slots with a bounded worker
// pool. Outcomes land in their slot, so canonical order survives the
// parallelism; stats updates are serialized behind a mutex.
func (t *Tagger) dispatchParallel(ctx context.Context, slots []slot, stats *types.TaggingStats) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, t.workers)
	)

	for i := range slots {
		if slots[i].done {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(s *slot) {
			defer wg.Done()
			defer func() { <-sem }()

			var local types.TaggingStats
			out := t.tagOne(ctx, s.ref, &local)

			mu.Lock()
			stats.Tagged += local.Tagged
			stats.Errors += local.Errors
			s.out = out
			s.done = true
			mu.Unlock()
		}(&slots[i])
	}

	wg.Wait()
}

// tagOne builds the tag set, resolves the strategy, and applies it,
// converting every failure into a recorded outcome.
func (t *Tagger) tagOne(ctx context.Context, ref types.ResourceRef, stats *types.TaggingStats) types.TaggingOutcome {
	tags := BuildTagSet(ref, t.tagging)

	strategy, ok := t.strategies.Resolve(ref.Type)
	if !ok {
		stats.Errors++
		return types.TaggingOutcome{
			Ref:   ref,
			Error: fmt.Sprintf("no tagging strategy for %s (event %s)", ref.Type, ref.EventName),
		}
	}

	err := t.applyTags(ctx, strategy, ref.ID, tags)
	if err != nil {
		stats.Errors++
		t.logger.LogTagFailed(ctx, string(ref.Type), ref.ID, err)
		reason := fmt.Sprintf("tagging %s %s from %s: %v", ref.Type, ref.ID, ref.EventName, err)
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("tagging %s %s from %s timed out: %v", ref.Type, ref.ID, ref.EventName, err)
		}
		return types.TaggingOutcome{Ref: ref, Error: reason}
	}

	stats.Tagged++
	t.logger.LogTagged(ctx, string(ref.Type), ref.ID, len(tags))
	return types.TaggingOutcome{Ref: ref, Tagged: true}
}

func (t *Tagger) applyTags(ctx context.Context, strategy tagging.Strategy, id string, tags types.TagSet) error {
	if t.tagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.tagTimeout)
		defer cancel()
	}
	return strategy.Tag(ctx, id, tags)
}

// BuildTagSet assembles the labels for one reference: owner from the
// acting principal, creation time when configured and known, then the
// configured extras. Built-in keys win over extras on collision; extra
// keys are applied in sorted order so the set is deterministic.
func BuildTagSet(ref types.ResourceRef, cfg config.Tagging) types.TagSet {
	principal := ref.Principal
	if principal == "" {
		principal = "Unknown"
	}

	tags := types.TagSet{{Key: cfg.OwnerTagName, Value: principal}}

	if cfg.IncludeCreationTime && !ref.EventTime.IsZero() {
		tags = append(tags, types.Tag{
			Key:   cfg.CreationTimeTagName,
			Value: ref.EventTime.UTC().Format(cfg.CreationTimeFormat),
		})
	}

	keys := make([]string, 0, len(cfg.AdditionalTags))
	for key := range cfg.AdditionalTags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if tags.Has(key) {
			continue
		}
		tags = append(tags, types.Tag{Key: key, Value: cfg.AdditionalTags[key]})
	}

	return tags
}
