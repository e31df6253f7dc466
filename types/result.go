package types

import "time"

// TaggingOutcome records one tagging attempt for one extracted resource.
type TaggingOutcome struct {
	Ref    ResourceRef `json:"ref"`
	Tagged bool        `json:"tagged"`
	Error  string      `json:"error,omitempty"`
}

// TaggingStats holds the running counters for one pipeline run.
// Processed counts creation events, Tagged and Errors count per-resource
// outcomes, so Tagged+Errors can exceed Processed when one event creates
// several resources and fall short when extraction finds none.
type TaggingStats struct {
	Processed int `json:"processed"`
	Tagged    int `json:"tagged"`
	Errors    int `json:"errors"`
}

// SuccessRate returns tagged/processed as a percentage, 0 for an empty run.
func (s TaggingStats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Tagged) / float64(s.Processed) * 100
}

// ErrorRate returns errors/processed as a percentage, 0 for an empty run.
func (s TaggingStats) ErrorRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Processed) * 100
}

// ProcessingResult is the sole durable output of one pipeline run.
type ProcessingResult struct {
	Stats     TaggingStats     `json:"stats"`
	Outcomes  []TaggingOutcome `json:"outcomes"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Region    string           `json:"region"`
}

// Duration returns how long the run took.
func (r ProcessingResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
