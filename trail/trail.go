// Package trail fetches write-mode CloudTrail events for the tagging
// pipeline. Fetching is the one fatal failure mode of a run: without
// events there is nothing to process.
package trail

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/telemetry"
)

// Client queries CloudTrail for resource-creation audit records.
type Client struct {
	client *cloudtrail.Client
	region string
	logger *telemetry.Logger
	tracer trace.Tracer
}

// NewClient creates a CloudTrail client.
func NewClient(cfg aws.Config) *Client {
	return &Client{
		client: cloudtrail.NewFromConfig(cfg),
		region: cfg.Region,
		logger: telemetry.NewLogger("trail"),
		tracer: otel.Tracer("trail"),
	}
}

// FetchWriteEvents returns all write-mode events in the lookback
// window, oldest metadata intact, paginating until exhausted.
func (c *Client) FetchWriteEvents(ctx context.Context, lookback time.Duration) ([]event.RawEvent, error) {
	ctx, span := c.tracer.Start(ctx, "FetchWriteEvents")
	defer span.End()

	endTime := time.Now().UTC()
	startTime := endTime.Add(-lookback)

	input := &cloudtrail.LookupEventsInput{
		StartTime: &startTime,
		EndTime:   &endTime,
		LookupAttributes: []ctypes.LookupAttribute{
			{
				AttributeKey:   ctypes.LookupAttributeKeyReadOnly,
				AttributeValue: aws.String("false"),
			},
		},
		MaxResults: aws.Int32(50), // max allowed per request
	}

	var events []event.RawEvent
	paginator := cloudtrail.NewLookupEventsPaginator(c.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup CloudTrail events: %w", err)
		}
		events = append(events, c.convertEvents(ctx, page.Events)...)
	}

	c.logger.WithContext(ctx).Debug().
		Int("events", len(events)).
		Str("region", c.region).
		Msg("fetched CloudTrail events")

	return events, nil
}

func (c *Client) convertEvents(ctx context.Context, raw []ctypes.Event) []event.RawEvent {
	events := make([]event.RawEvent, 0, len(raw))
	for _, e := range raw {
		converted, err := c.convertEvent(e)
		if err != nil {
			// A record with an unparseable body still classifies by
			// name; extraction will just find nothing in it.
			c.logger.WithContext(ctx).Warn().
				Err(err).
				Str("event_name", aws.ToString(e.EventName)).
				Msg("failed to parse event body")
		}
		events = append(events, converted)
	}
	return events
}

func (c *Client) convertEvent(e ctypes.Event) (event.RawEvent, error) {
	ev := event.RawEvent{
		ID:        aws.ToString(e.EventId),
		Name:      aws.ToString(e.EventName),
		Source:    aws.ToString(e.EventSource),
		Time:      aws.ToTime(e.EventTime),
		Principal: aws.ToString(e.Username),
		Region:    c.region,
	}

	body := aws.ToString(e.CloudTrailEvent)
	if body == "" {
		return ev, nil
	}
	return ev.ParseBody([]byte(body))
}
