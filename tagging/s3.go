package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/yairfalse/merkki/types"
)

// S3Strategy tags buckets. PutBucketTagging replaces the whole tag set,
// which is what makes re-tagging idempotent.
type S3Strategy struct {
	client *s3.Client
}

// Tag implements Strategy.
func (s *S3Strategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.PutBucketTagging(ctx, &s3.PutBucketTaggingInput{
		Bucket: aws.String(resourceID),
		Tagging: &s3types.Tagging{
			TagSet: s3Tags(tags),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to tag S3 bucket %s: %w", resourceID, err)
	}
	return nil
}

func s3Tags(tags types.TagSet) []s3types.Tag {
	result := make([]s3types.Tag, len(tags))
	for i, t := range tags {
		result[i] = s3types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
