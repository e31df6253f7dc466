package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/merkki/types"
)

var sampleTags = types.TagSet{
	{Key: "owner", Value: "alice"},
	{Key: "created_at", Value: "2026-08-30 12:00:00 UTC"},
}

func TestEC2Tags(t *testing.T) {
	converted := ec2Tags(sampleTags)

	require.Len(t, converted, 2)
	assert.Equal(t, "owner", *converted[0].Key)
	assert.Equal(t, "alice", *converted[0].Value)
	assert.Equal(t, "created_at", *converted[1].Key)
}

func TestKMSTags(t *testing.T) {
	converted := kmsTags(sampleTags)

	require.Len(t, converted, 2)
	assert.Equal(t, "owner", *converted[0].TagKey)
	assert.Equal(t, "alice", *converted[0].TagValue)
}

func TestASGTags(t *testing.T) {
	converted := asgTags("web-asg", sampleTags)

	require.Len(t, converted, 2)
	for _, tag := range converted {
		assert.Equal(t, "web-asg", *tag.ResourceId)
		assert.Equal(t, "auto-scaling-group", *tag.ResourceType)
		assert.False(t, *tag.PropagateAtLaunch)
	}
	assert.Equal(t, "owner", *converted[0].Key)
	assert.Equal(t, "created_at", *converted[1].Key)
}

func TestIAMTags(t *testing.T) {
	converted := iamTags(sampleTags)

	require.Len(t, converted, 2)
	assert.Equal(t, "owner", *converted[0].Key)
	assert.Equal(t, "alice", *converted[0].Value)
}

func TestRoute53Tags(t *testing.T) {
	converted := route53Tags(sampleTags)

	require.Len(t, converted, 2)
	assert.Equal(t, "owner", *converted[0].Key)
	assert.Equal(t, "alice", *converted[0].Value)
}
