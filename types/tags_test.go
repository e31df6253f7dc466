package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSet(t *testing.T) {
	ts := TagSet{
		{Key: "owner", Value: "alice"},
		{Key: "created_at", Value: "2026-08-30 10:00:00 UTC"},
	}

	t.Run("get", func(t *testing.T) {
		v, ok := ts.Get("owner")
		require.True(t, ok)
		assert.Equal(t, "alice", v)

		_, ok = ts.Get("absent")
		assert.False(t, ok)
	})

	t.Run("has", func(t *testing.T) {
		assert.True(t, ts.Has("created_at"))
		assert.False(t, ts.Has("team"))
	})

	t.Run("map", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"owner":      "alice",
			"created_at": "2026-08-30 10:00:00 UTC",
		}, ts.Map())
	})
}

func TestAllResourceTypes_Distinct(t *testing.T) {
	seen := make(map[ResourceType]bool)
	for _, rt := range AllResourceTypes() {
		assert.False(t, seen[rt], "duplicate resource type %s", rt)
		seen[rt] = true
	}
	assert.NotEmpty(t, seen)
}
