package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/yairfalse/merkki/types"
)

// ELBStrategy tags load balancers and target groups. Both arrive from
// their creation events as full ARNs, which AddTags takes directly.
type ELBStrategy struct {
	client *elasticloadbalancingv2.Client
}

// Tag implements Strategy.
func (s *ELBStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.AddTags(ctx, &elasticloadbalancingv2.AddTagsInput{
		ResourceArns: []string{resourceID},
		Tags:         elbTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag ELB resource %s: %w", resourceID, err)
	}
	return nil
}

func elbTags(tags types.TagSet) []elbv2types.Tag {
	result := make([]elbv2types.Tag, len(tags))
	for i, t := range tags {
		result[i] = elbv2types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
