package tagging

import (
	"fmt"

	"github.com/yairfalse/merkki/types"
)

// Registry maps every resource type to its tagging strategy. The
// mapping is total over types.AllResourceTypes, checked at construction
// rather than probed at dispatch time.
type Registry struct {
	strategies map[types.ResourceType]Strategy
}

// NewRegistry builds a registry from an explicit mapping. It fails when
// any resource type lacks a strategy, so a new enumeration variant
// without a matching strategy cannot ship.
func NewRegistry(strategies map[types.ResourceType]Strategy) (*Registry, error) {
	for _, rt := range types.AllResourceTypes() {
		if strategies[rt] == nil {
			return nil, fmt.Errorf("no tagging strategy for resource type %s", rt)
		}
	}
	return &Registry{strategies: strategies}, nil
}

// Resolve returns the strategy for a resource type. The bool is false
// only for types outside the closed enumeration; callers treat that as
// a reportable per-resource failure, never a batch abort.
func (r *Registry) Resolve(rt types.ResourceType) (Strategy, bool) {
	s, ok := r.strategies[rt]
	return s, ok
}

// NewAWSRegistry wires every resource type to its AWS strategy.
func NewAWSRegistry(clients *Clients) (*Registry, error) {
	ec2Strategy := &EC2Strategy{client: clients.EC2}

	return NewRegistry(map[types.ResourceType]Strategy{
		types.EC2Instance:      ec2Strategy,
		types.EC2Volume:        ec2Strategy,
		types.EC2SecurityGroup: ec2Strategy,
		types.EC2VPC:           ec2Strategy,
		types.EC2Subnet:        ec2Strategy,
		types.EC2Snapshot:      ec2Strategy,
		types.EC2Image:         ec2Strategy,
		types.EC2ElasticIP:     ec2Strategy,

		types.S3Bucket: &S3Strategy{client: clients.S3},

		types.RDSInstance: &RDSStrategy{client: clients.RDS, kind: "db", region: clients.Region, accountID: clients.AccountID},
		types.RDSCluster:  &RDSStrategy{client: clients.RDS, kind: "cluster", region: clients.Region, accountID: clients.AccountID},

		types.LambdaFunction: &LambdaStrategy{client: clients.Lambda, region: clients.Region, accountID: clients.AccountID},

		types.ELBLoadBalancer: &ELBStrategy{client: clients.ELBv2},
		types.ELBTargetGroup:  &ELBStrategy{client: clients.ELBv2},

		types.EKSCluster:   &EKSClusterStrategy{client: clients.EKS, region: clients.Region, accountID: clients.AccountID},
		types.EKSNodeGroup: &EKSNodeGroupStrategy{client: clients.EKS},

		types.ECSCluster:    &ECSStrategy{client: clients.ECS, kind: "cluster", region: clients.Region, accountID: clients.AccountID},
		types.ECSService:    &ECSStrategy{client: clients.ECS, kind: "service", region: clients.Region, accountID: clients.AccountID},
		types.ECRRepository: &ECRStrategy{client: clients.ECR, region: clients.Region, accountID: clients.AccountID},

		types.DynamoDBTable:   &DynamoDBStrategy{client: clients.DynamoDB, region: clients.Region, accountID: clients.AccountID},
		types.RedshiftCluster: &RedshiftStrategy{client: clients.Redshift, region: clients.Region, accountID: clients.AccountID},
		types.MemoryDBCluster: &MemoryDBStrategy{client: clients.MemoryDB, region: clients.Region, accountID: clients.AccountID},

		types.SQSQueue: &SQSStrategy{client: clients.SQS},

		types.KMSKey:    &KMSStrategy{client: clients.KMS},
		types.IAMRole:   &IAMRoleStrategy{client: clients.IAM},
		types.IAMUser:   &IAMUserStrategy{client: clients.IAM},
		types.IAMPolicy: &IAMPolicyStrategy{client: clients.IAM},

		types.Route53HostedZone: &Route53Strategy{client: clients.Route53},
		types.LogGroup:          &LogGroupStrategy{client: clients.Logs, region: clients.Region, accountID: clients.AccountID},
		types.AutoScalingGroup:  &AutoScalingStrategy{client: clients.AutoScaling},
	})
}
