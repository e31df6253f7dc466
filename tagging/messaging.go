package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/yairfalse/merkki/types"
)

// SQSStrategy tags queues. The creation event's responseElements carry
// the queue URL, which TagQueue takes directly.
type SQSStrategy struct {
	client *sqs.Client
}

// Tag implements Strategy.
func (s *SQSStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	_, err := s.client.TagQueue(ctx, &sqs.TagQueueInput{
		QueueUrl: aws.String(resourceID),
		Tags:     tags.Map(),
	})
	if err != nil {
		return fmt.Errorf("failed to tag SQS queue %s: %w", resourceID, err)
	}
	return nil
}
