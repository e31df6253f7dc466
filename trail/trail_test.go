package trail

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/merkki/event"
)

func TestConvertEvent(t *testing.T) {
	c := NewClient(aws.Config{Region: "us-east-1"})
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	ev, err := c.convertEvent(ctypes.Event{
		EventId:     aws.String("ev-1"),
		EventName:   aws.String("CreateBucket"),
		EventSource: aws.String("s3.amazonaws.com"),
		EventTime:   aws.Time(when),
		Username:    aws.String("alice"),
		CloudTrailEvent: aws.String(`{
			"requestParameters": {"bucketName": "logs-prod"}
		}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "CreateBucket", ev.Name)
	assert.Equal(t, "s3.amazonaws.com", ev.Source)
	assert.Equal(t, "alice", ev.Principal)
	assert.Equal(t, "us-east-1", ev.Region)
	assert.True(t, ev.Time.Equal(when))

	name, ok := ev.Section(event.RequestParameters).Field("bucketName")
	require.True(t, ok)
	text, _ := name.Text()
	assert.Equal(t, "logs-prod", text)
}

func TestConvertEvent_EmptyBody(t *testing.T) {
	c := NewClient(aws.Config{Region: "us-east-1"})

	ev, err := c.convertEvent(ctypes.Event{
		EventId:   aws.String("ev-2"),
		EventName: aws.String("CreateBucket"),
	})
	require.NoError(t, err)
	assert.True(t, ev.Body.IsNull())
}

func TestConvertEvents_BadBodyStillListed(t *testing.T) {
	c := NewClient(aws.Config{Region: "us-east-1"})

	events := c.convertEvents(context.Background(), []ctypes.Event{
		{
			EventId:         aws.String("ev-bad"),
			EventName:       aws.String("RunInstances"),
			CloudTrailEvent: aws.String(`{broken`),
		},
		{
			EventId:         aws.String("ev-ok"),
			EventName:       aws.String("CreateBucket"),
			CloudTrailEvent: aws.String(`{"requestParameters": {"bucketName": "b"}}`),
		},
	})

	// The broken record keeps its name so classification still counts it.
	require.Len(t, events, 2)
	assert.Equal(t, "RunInstances", events[0].Name)
	assert.True(t, events[0].Body.IsNull())
	assert.Equal(t, "CreateBucket", events[1].Name)
}
