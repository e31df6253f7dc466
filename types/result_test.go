package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaggingStats_Rates(t *testing.T) {
	t.Run("empty run has zero rates", func(t *testing.T) {
		stats := TaggingStats{}
		assert.Equal(t, 0.0, stats.SuccessRate())
		assert.Equal(t, 0.0, stats.ErrorRate())
	})

	t.Run("rates are percentages of processed", func(t *testing.T) {
		stats := TaggingStats{Processed: 4, Tagged: 3, Errors: 1}
		assert.InDelta(t, 75.0, stats.SuccessRate(), 0.001)
		assert.InDelta(t, 25.0, stats.ErrorRate(), 0.001)
	})

	t.Run("multi-resource events can push rates past 100", func(t *testing.T) {
		stats := TaggingStats{Processed: 1, Tagged: 3}
		assert.InDelta(t, 300.0, stats.SuccessRate(), 0.001)
	})
}

func TestProcessingResult_Duration(t *testing.T) {
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	result := ProcessingResult{StartTime: start, EndTime: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, result.Duration())
}
