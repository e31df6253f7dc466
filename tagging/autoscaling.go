package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/yairfalse/merkki/types"
)

// AutoScalingStrategy tags auto scaling groups. Each tag carries the
// group name itself; tags are not propagated to instances launched
// before the tag existed.
type AutoScalingStrategy struct {
	client *autoscaling.Client
}

// Tag implements Strategy.
func (s *AutoScalingStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.CreateOrUpdateTags(ctx, &autoscaling.CreateOrUpdateTagsInput{
		Tags: asgTags(resourceID, tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag auto scaling group %s: %w", resourceID, err)
	}
	return nil
}

func asgTags(groupName string, tags types.TagSet) []asgtypes.Tag {
	result := make([]asgtypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = asgtypes.Tag{
			ResourceId:        aws.String(groupName),
			ResourceType:      aws.String("auto-scaling-group"),
			Key:               aws.String(t.Key),
			Value:             aws.String(t.Value),
			PropagateAtLaunch: aws.Bool(false),
		}
	}
	return result
}
