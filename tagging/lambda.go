package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/yairfalse/merkki/types"
)

// LambdaStrategy tags functions. The creation event carries the bare
// function name; TagResource wants the function ARN.
type LambdaStrategy struct {
	client    *lambda.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *LambdaStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	functionARN := arn("lambda", s.region, s.accountID, "function:"+resourceID)

	_, err := s.client.TagResource(ctx, &lambda.TagResourceInput{
		Resource: aws.String(functionARN),
		Tags:     tags.Map(),
	})
	if err != nil {
		return fmt.Errorf("failed to tag Lambda function %s: %w", resourceID, err)
	}
	return nil
}
