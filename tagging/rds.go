package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/yairfalse/merkki/types"
)

// RDSStrategy tags DB instances and clusters. AddTagsToResource wants
// an ARN; kind selects the db vs cluster ARN form for the identifier
// the creation event carries.
type RDSStrategy struct {
	client    *rds.Client
	kind      string // "db" or "cluster"
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *RDSStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	resourceARN := arn("rds", s.region, s.accountID, s.kind+":"+resourceID)

	_, err := s.client.AddTagsToResource(ctx, &rds.AddTagsToResourceInput{
		ResourceName: aws.String(resourceARN),
		Tags:         rdsTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag RDS %s %s: %w", s.kind, resourceID, err)
	}
	return nil
}

func rdsTags(tags types.TagSet) []rdstypes.Tag {
	result := make([]rdstypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = rdstypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
