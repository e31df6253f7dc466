package types

// Tag is one key/value label applied to a resource.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TagSet is an ordered list of tags. Order matters: it is the order
// tags are sent to the tagging APIs and the order built-in tags win
// over configured extras on key collision.
type TagSet []Tag

// Get returns the value for key and whether it is present.
func (ts TagSet) Get(key string) (string, bool) {
	for _, t := range ts {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present in the set.
func (ts TagSet) Has(key string) bool {
	_, ok := ts.Get(key)
	return ok
}

// Map flattens the set into a plain map for APIs that take one.
func (ts TagSet) Map() map[string]string {
	m := make(map[string]string, len(ts))
	for _, t := range ts {
		m[t.Key] = t.Value
	}
	return m
}
