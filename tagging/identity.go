package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"

	"github.com/yairfalse/merkki/types"
)

// KMSStrategy tags keys by key id, in the TagKey/TagValue pair shape
// KMS insists on.
type KMSStrategy struct {
	client *kms.Client
}

// Tag implements Strategy.
func (s *KMSStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.TagResource(ctx, &kms.TagResourceInput{
		KeyId: aws.String(resourceID),
		Tags:  kmsTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag KMS key %s: %w", resourceID, err)
	}
	return nil
}

func kmsTags(tags types.TagSet) []kmstypes.Tag {
	result := make([]kmstypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = kmstypes.Tag{TagKey: aws.String(t.Key), TagValue: aws.String(t.Value)}
	}
	return result
}

// IAMRoleStrategy tags roles by name.
type IAMRoleStrategy struct {
	client *iam.Client
}

// Tag implements Strategy.
func (s *IAMRoleStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.TagRole(ctx, &iam.TagRoleInput{
		RoleName: aws.String(resourceID),
		Tags:     iamTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag IAM role %s: %w", resourceID, err)
	}
	return nil
}

// IAMUserStrategy tags users by name.
type IAMUserStrategy struct {
	client *iam.Client
}

// Tag implements Strategy.
func (s *IAMUserStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.TagUser(ctx, &iam.TagUserInput{
		UserName: aws.String(resourceID),
		Tags:     iamTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag IAM user %s: %w", resourceID, err)
	}
	return nil
}

// IAMPolicyStrategy tags customer managed policies by ARN, which is
// what the creation event carries.
type IAMPolicyStrategy struct {
	client *iam.Client
}

// Tag implements Strategy.
func (s *IAMPolicyStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.TagPolicy(ctx, &iam.TagPolicyInput{
		PolicyArn: aws.String(resourceID),
		Tags:      iamTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag IAM policy %s: %w", resourceID, err)
	}
	return nil
}

func iamTags(tags types.TagSet) []iamtypes.Tag {
	result := make([]iamtypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = iamtypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
