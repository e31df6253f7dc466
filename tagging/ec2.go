package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/yairfalse/merkki/types"
)

// EC2Strategy tags any EC2-family resource. CreateTags takes the bare
// identifier (instance, volume, VPC, subnet, snapshot, image, security
// group, allocation id alike), so one strategy covers the whole family.
type EC2Strategy struct {
	client *ec2.Client
}

// Tag implements Strategy.
func (s *EC2Strategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags:      ec2Tags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag EC2 resource %s: %w", resourceID, err)
	}
	return nil
}

func ec2Tags(tags types.TagSet) []ec2types.Tag {
	result := make([]ec2types.Tag, len(tags))
	for i, t := range tags {
		result[i] = ec2types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
