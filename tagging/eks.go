package tagging

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"

	"github.com/yairfalse/merkki/types"
)

// EKSClusterStrategy tags clusters. The cluster ARN is deterministic
// from the name, so no lookup is needed.
type EKSClusterStrategy struct {
	client    *eks.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *EKSClusterStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	clusterARN := arn("eks", s.region, s.accountID, "cluster/"+resourceID)

	_, err := s.client.TagResource(ctx, &eks.TagResourceInput{
		ResourceArn: aws.String(clusterARN),
		Tags:        tags.Map(),
	})
	if err != nil {
		return fmt.Errorf("failed to tag EKS cluster %s: %w", resourceID, err)
	}
	return nil
}

// EKSNodeGroupStrategy tags node groups. Node group ARNs carry a
// generated suffix that cannot be derived from the name, so this is a
// describe-then-tag round trip on the cluster/nodegroup composite id.
type EKSNodeGroupStrategy struct {
	client *eks.Client
}

// Tag implements Strategy.
func (s *EKSNodeGroupStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	cluster, nodegroup, ok := strings.Cut(resourceID, "/")
	if !ok {
		return fmt.Errorf("invalid node group id %q, want cluster/nodegroup", resourceID)
	}

	describe, err := s.client.DescribeNodegroup(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   aws.String(cluster),
		NodegroupName: aws.String(nodegroup),
	})
	if err != nil {
		return fmt.Errorf("failed to describe node group %s: %w", resourceID, err)
	}

	_, err = s.client.TagResource(ctx, &eks.TagResourceInput{
		ResourceArn: describe.Nodegroup.NodegroupArn,
		Tags:        tags.Map(),
	})
	if err != nil {
		return fmt.Errorf("failed to tag EKS node group %s: %w", resourceID, err)
	}
	return nil
}
