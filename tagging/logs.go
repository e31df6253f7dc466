package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/yairfalse/merkki/types"
)

// LogGroupStrategy tags log groups by constructed log-group ARN.
type LogGroupStrategy struct {
	client    *cloudwatchlogs.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *LogGroupStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	logGroupARN := arn("logs", s.region, s.accountID, "log-group:"+resourceID)

	_, err := s.client.TagResource(ctx, &cloudwatchlogs.TagResourceInput{
		ResourceArn: aws.String(logGroupARN),
		Tags:        tags.Map(),
	})
	if err != nil {
		return fmt.Errorf("failed to tag log group %s: %w", resourceID, err)
	}
	return nil
}
