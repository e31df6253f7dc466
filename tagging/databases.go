package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/memorydb"
	memorydbtypes "github.com/aws/aws-sdk-go-v2/service/memorydb/types"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	redshifttypes "github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/yairfalse/merkki/types"
)

// DynamoDBStrategy tags tables by constructed table ARN.
type DynamoDBStrategy struct {
	client    *dynamodb.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *DynamoDBStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	tableARN := arn("dynamodb", s.region, s.accountID, "table/"+resourceID)

	_, err := s.client.TagResource(ctx, &dynamodb.TagResourceInput{
		ResourceArn: aws.String(tableARN),
		Tags:        dynamodbTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag DynamoDB table %s: %w", resourceID, err)
	}
	return nil
}

func dynamodbTags(tags types.TagSet) []ddbtypes.Tag {
	result := make([]ddbtypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = ddbtypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}

// RedshiftStrategy tags clusters by constructed cluster ARN.
type RedshiftStrategy struct {
	client    *redshift.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *RedshiftStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	clusterARN := arn("redshift", s.region, s.accountID, "cluster:"+resourceID)

	_, err := s.client.CreateTags(ctx, &redshift.CreateTagsInput{
		ResourceName: aws.String(clusterARN),
		Tags:         redshiftTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag Redshift cluster %s: %w", resourceID, err)
	}
	return nil
}

func redshiftTags(tags types.TagSet) []redshifttypes.Tag {
	result := make([]redshifttypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = redshifttypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}

// MemoryDBStrategy tags clusters by constructed cluster ARN.
type MemoryDBStrategy struct {
	client    *memorydb.Client
	region    string
	accountID string
}

// Tag implements Strategy.
func (s *MemoryDBStrategy) Tag(ctx context.Context, resourceID string, tags types.TagSet) error {
	clusterARN := arn("memorydb", s.region, s.accountID, "cluster/"+resourceID)

	_, err := s.client.TagResource(ctx, &memorydb.TagResourceInput{
		ResourceArn: aws.String(clusterARN),
		Tags:        memorydbTags(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to tag MemoryDB cluster %s: %w", resourceID, err)
	}
	return nil
}

func memorydbTags(tags types.TagSet) []memorydbtypes.Tag {
	result := make([]memorydbtypes.Tag, len(tags))
	for i, t := range tags {
		result[i] = memorydbtypes.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	}
	return result
}
