package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/types"
)

func TestRegistry_IsCreationEvent(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.IsCreationEvent("RunInstances"))
	assert.True(t, r.IsCreationEvent("CreateBucket"))
	assert.True(t, r.IsCreationEvent("CreateCluster"))
	assert.False(t, r.IsCreationEvent("DeleteBucket"))
	assert.False(t, r.IsCreationEvent("DescribeInstances"))
	assert.False(t, r.IsCreationEvent(""))
}

func TestRegistry_Extract_RunInstances(t *testing.T) {
	r := NewRegistry()
	ev := testEvent(t, "RunInstances", "ec2.amazonaws.com", `{
		"responseElements": {"instancesSet": {"items": [
			{"instanceId": "i-111"},
			{"instanceId": "i-222"}
		]}}
	}`)

	refs, errs := r.Extract(ev)
	require.Empty(t, errs)
	require.Len(t, refs, 2)

	assert.Equal(t, types.EC2Instance, refs[0].Type)
	assert.Equal(t, "i-111", refs[0].ID)
	assert.Equal(t, "i-222", refs[1].ID)
	assert.Equal(t, "RunInstances", refs[0].EventName)
	assert.Equal(t, "alice", refs[0].Principal)
}

func TestRegistry_Extract_CreateBucket(t *testing.T) {
	r := NewRegistry()
	ev := testEvent(t, "CreateBucket", "s3.amazonaws.com", `{
		"requestParameters": {"bucketName": "logs-prod"}
	}`)

	refs, errs := r.Extract(ev)
	require.Empty(t, errs)
	require.Len(t, refs, 1)
	assert.Equal(t, types.S3Bucket, refs[0].Type)
	assert.Equal(t, "logs-prod", refs[0].ID)
}

func TestRegistry_Extract_CreateClusterBySource(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		source string
		body   string
		want   types.ResourceType
		wantID string
	}{
		{
			source: "eks.amazonaws.com",
			body:   `{"responseElements": {"cluster": {"name": "prod"}}}`,
			want:   types.EKSCluster,
			wantID: "prod",
		},
		{
			source: "ecs.amazonaws.com",
			body:   `{"responseElements": {"cluster": {"clusterName": "workers"}}}`,
			want:   types.ECSCluster,
			wantID: "workers",
		},
		{
			source: "redshift.amazonaws.com",
			body:   `{"requestParameters": {"clusterIdentifier": "analytics"}}`,
			want:   types.RedshiftCluster,
			wantID: "analytics",
		},
		{
			source: "memorydb.amazonaws.com",
			body:   `{"responseElements": {"cluster": {"name": "cache"}}}`,
			want:   types.MemoryDBCluster,
			wantID: "cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			ev := testEvent(t, "CreateCluster", tt.source, tt.body)
			refs, errs := r.Extract(ev)
			require.Empty(t, errs)
			require.Len(t, refs, 1)
			assert.Equal(t, tt.want, refs[0].Type)
			assert.Equal(t, tt.wantID, refs[0].ID)
		})
	}
}

func TestRegistry_Extract_CreateNodegroup(t *testing.T) {
	r := NewRegistry()
	ev := testEvent(t, "CreateNodegroup", "eks.amazonaws.com", `{
		"responseElements": {"nodegroup": {
			"clusterName": "prod",
			"nodegroupName": "workers",
			"resources": {"autoScalingGroups": [{"name": "eks-workers-asg"}]}
		}}
	}`)

	refs, errs := r.Extract(ev)
	require.Empty(t, errs)
	require.Len(t, refs, 2)

	assert.Equal(t, types.EKSNodeGroup, refs[0].Type)
	assert.Equal(t, "prod/workers", refs[0].ID)
	assert.Equal(t, types.AutoScalingGroup, refs[1].Type)
	assert.Equal(t, "eks-workers-asg", refs[1].ID)
}

func TestRegistry_Extract_MissingPathIsEmpty(t *testing.T) {
	r := NewRegistry()
	ev := testEvent(t, "RunInstances", "ec2.amazonaws.com", `{
		"responseElements": null
	}`)

	refs, errs := r.Extract(ev)
	assert.Empty(t, refs)
	assert.Empty(t, errs)
}

func TestRegistry_Register_Appends(t *testing.T) {
	r := NewRegistry()
	r.Register("CreateBucket", FuncEntry{
		Fn: func(ev event.RawEvent) []types.ResourceRef {
			return []types.ResourceRef{MakeRef(ev, types.S3Bucket, "extra")}
		},
	})

	ev := testEvent(t, "CreateBucket", "s3.amazonaws.com", `{
		"requestParameters": {"bucketName": "logs-prod"}
	}`)

	refs, errs := r.Extract(ev)
	require.Empty(t, errs)
	require.Len(t, refs, 2)
	assert.Equal(t, "logs-prod", refs[0].ID)
	assert.Equal(t, "extra", refs[1].ID)
}

func TestRegistry_Extract_PanicContained(t *testing.T) {
	r := NewRegistry()
	r.Register("CreateWidget", FuncEntry{
		Fn: func(ev event.RawEvent) []types.ResourceRef {
			panic("boom")
		},
	})

	ev := testEvent(t, "CreateWidget", "widgets.amazonaws.com", `{}`)

	refs, errs := r.Extract(ev)
	assert.Empty(t, refs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "panicked")
}

func TestRegistry_Extract_SourceFilterSkips(t *testing.T) {
	r := NewRegistry()

	// CreateService is registered for ECS only.
	ev := testEvent(t, "CreateService", "apprunner.amazonaws.com", `{
		"responseElements": {"service": {"serviceName": "api"}}
	}`)

	refs, errs := r.Extract(ev)
	assert.Empty(t, refs)
	assert.Empty(t, errs)
}

func TestRegistry_EventNames(t *testing.T) {
	names := NewRegistry().EventNames()

	assert.Contains(t, names, "RunInstances")
	assert.Contains(t, names, "CreateHostedZone")
	assert.IsIncreasing(t, names)
}
