package types

import "time"

// ResourceType identifies a taggable AWS resource kind.
// The set is closed: adding a value here requires a matching tagging
// strategy, which the strategy registry asserts at construction.
type ResourceType string

const (
	EC2Instance       ResourceType = "ec2:instance"
	EC2Volume         ResourceType = "ec2:volume"
	EC2SecurityGroup  ResourceType = "ec2:security-group"
	EC2VPC            ResourceType = "ec2:vpc"
	EC2Subnet         ResourceType = "ec2:subnet"
	EC2Snapshot       ResourceType = "ec2:snapshot"
	EC2Image          ResourceType = "ec2:image"
	EC2ElasticIP      ResourceType = "ec2:elastic-ip"
	S3Bucket          ResourceType = "s3:bucket"
	RDSInstance       ResourceType = "rds:db"
	RDSCluster        ResourceType = "rds:cluster"
	LambdaFunction    ResourceType = "lambda:function"
	ELBLoadBalancer   ResourceType = "elbv2:loadbalancer"
	ELBTargetGroup    ResourceType = "elbv2:targetgroup"
	EKSCluster        ResourceType = "eks:cluster"
	EKSNodeGroup      ResourceType = "eks:nodegroup"
	ECSCluster        ResourceType = "ecs:cluster"
	ECSService        ResourceType = "ecs:service"
	ECRRepository     ResourceType = "ecr:repository"
	DynamoDBTable     ResourceType = "dynamodb:table"
	SQSQueue          ResourceType = "sqs:queue"
	KMSKey            ResourceType = "kms:key"
	IAMRole           ResourceType = "iam:role"
	IAMUser           ResourceType = "iam:user"
	IAMPolicy         ResourceType = "iam:policy"
	RedshiftCluster   ResourceType = "redshift:cluster"
	MemoryDBCluster   ResourceType = "memorydb:cluster"
	Route53HostedZone ResourceType = "route53:hostedzone"
	LogGroup          ResourceType = "logs:log-group"
	AutoScalingGroup  ResourceType = "autoscaling:group"
)

// AllResourceTypes returns every supported resource type.
// The strategy registry uses this to verify its mapping is total.
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		EC2Instance,
		EC2Volume,
		EC2SecurityGroup,
		EC2VPC,
		EC2Subnet,
		EC2Snapshot,
		EC2Image,
		EC2ElasticIP,
		S3Bucket,
		RDSInstance,
		RDSCluster,
		LambdaFunction,
		ELBLoadBalancer,
		ELBTargetGroup,
		EKSCluster,
		EKSNodeGroup,
		ECSCluster,
		ECSService,
		ECRRepository,
		DynamoDBTable,
		SQSQueue,
		KMSKey,
		IAMRole,
		IAMUser,
		IAMPolicy,
		RedshiftCluster,
		MemoryDBCluster,
		Route53HostedZone,
		LogGroup,
		AutoScalingGroup,
	}
}

// ResourceRef is one resource identifier extracted from a creation event.
type ResourceRef struct {
	Type      ResourceType `json:"type"`
	ID        string       `json:"id"`
	EventName string       `json:"event_name"`
	Principal string       `json:"principal"`
	EventTime time.Time    `json:"event_time"`
}
