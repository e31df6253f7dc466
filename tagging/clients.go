package tagging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/memorydb"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Clients bundles every per-service tagging client plus the region and
// account ID the ARN-building strategies need.
type Clients struct {
	EC2         *ec2.Client
	S3          *s3.Client
	RDS         *rds.Client
	Lambda      *lambda.Client
	EKS         *eks.Client
	ELBv2       *elasticloadbalancingv2.Client
	ECS         *ecs.Client
	ECR         *ecr.Client
	DynamoDB    *dynamodb.Client
	SQS         *sqs.Client
	KMS         *kms.Client
	IAM         *iam.Client
	Redshift    *redshift.Client
	MemoryDB    *memorydb.Client
	Route53     *route53.Client
	Logs        *cloudwatchlogs.Client
	AutoScaling *autoscaling.Client

	Region    string
	AccountID string
}

// NewClients builds the client bundle from a loaded AWS config and
// discovers the account ID once, via EC2 account attributes.
func NewClients(ctx context.Context, cfg aws.Config) (*Clients, error) {
	ec2Client := ec2.NewFromConfig(cfg)

	accountID, err := lookupAccountID(ctx, ec2Client)
	if err != nil {
		return nil, fmt.Errorf("failed to get account ID: %w", err)
	}

	return &Clients{
		EC2:         ec2Client,
		S3:          s3.NewFromConfig(cfg),
		RDS:         rds.NewFromConfig(cfg),
		Lambda:      lambda.NewFromConfig(cfg),
		EKS:         eks.NewFromConfig(cfg),
		ELBv2:       elasticloadbalancingv2.NewFromConfig(cfg),
		ECS:         ecs.NewFromConfig(cfg),
		ECR:         ecr.NewFromConfig(cfg),
		DynamoDB:    dynamodb.NewFromConfig(cfg),
		SQS:         sqs.NewFromConfig(cfg),
		KMS:         kms.NewFromConfig(cfg),
		IAM:         iam.NewFromConfig(cfg),
		Redshift:    redshift.NewFromConfig(cfg),
		MemoryDB:    memorydb.NewFromConfig(cfg),
		Route53:     route53.NewFromConfig(cfg),
		Logs:        cloudwatchlogs.NewFromConfig(cfg),
		AutoScaling: autoscaling.NewFromConfig(cfg),
		Region:      cfg.Region,
		AccountID:   accountID,
	}, nil
}

func lookupAccountID(ctx context.Context, client *ec2.Client) (string, error) {
	output, err := client.DescribeAccountAttributes(ctx, &ec2.DescribeAccountAttributesInput{})
	if err != nil {
		return "", err
	}

	for _, attr := range output.AccountAttributes {
		if aws.ToString(attr.AttributeName) == "account-id" && len(attr.AttributeValues) > 0 {
			return aws.ToString(attr.AttributeValues[0].AttributeValue), nil
		}
	}

	return "", fmt.Errorf("account-id attribute not found")
}
