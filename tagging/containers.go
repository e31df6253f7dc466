package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/yairfalse/merkki/types"
)

// ECSStrategy tags clusters and services; kind selects the ARN form.
type ECSStrategy struct {
	client    *ecs.Client
	kind      string // "cluster" or "service"
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *ECSStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	resourceARN := arn("ecs", s.region, s.accountID, s.kind+"/"+resourceID)

	_, err := s.client.TagResource(ctx, &ecs.TagResourceInput{
		ResourceArn: aws.String(resourceARN),
		Tags:        ecsTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag ECS %s %s: %w", s.kind, resourceID, err)
	}
	return nil
}

func ecsTags(tags types.TagSet) []ecstypes.Tag {
	result := make([]ecstypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = ecstypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}

// ECRStrategy tags repositories by constructed repository ARN.
type ECRStrategy struct {
	client    *ecr.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *ECRStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	repositoryARN := arn("ecr", s.region, s.accountID, "repository/"+resourceID)

	_, err := s.client.TagResource(ctx, &ecr.TagResourceInput{
		ResourceArn: aws.String(repositoryARN),
		Tags:        ecrTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag ECR repository %s: %w", resourceID, err)
	}
	return nil
}

func ecrTags(tags types.TagSet) []ecrtypes.Tag {
	result := make([]ecrtypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = ecrtypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
