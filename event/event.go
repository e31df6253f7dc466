package event

import "time"

// Section names the part of a CloudTrail record a path starts from.
type Section string

const (
	RequestParameters Section = "requestParameters"
	ResponseElements  Section = "responseElements"
)

// RawEvent is one audit record: flat lookup metadata plus the parsed
// record body. Immutable once built.
type RawEvent struct {
	ID        string
	Name      string
	Source    string // service identifier, e.g. "eks.amazonaws.com"
	Time      time.Time
	Principal string
	Region    string
	Body      Value
}

// Section returns the named section of the body. A missing section
// yields Null, so path resolution degrades to an empty result.
func (e RawEvent) Section(s Section) Value {
	v, _ := e.Body.Field(string(s))
	return v
}

// ParseBody attaches a parsed CloudTrail JSON body to the event and
// fills Source and Region from the record when they are unset.
func (e RawEvent) ParseBody(raw []byte) (RawEvent, error) {
	body, err := ParseValue(raw)
	if err != nil {
		return e, err
	}
	e.Body = body
	if e.Source == "" {
		if src, ok := body.Field("eventSource"); ok {
			e.Source, _ = src.Text()
		}
	}
	if e.Region == "" {
		if region, ok := body.Field("awsRegion"); ok {
			e.Region, _ = region.Text()
		}
	}
	return e, nil
}
