package extract

import (
	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/types"
)

func respPath(rt types.ResourceType, steps ...Step) PathEntry {
	return PathEntry{Spec: PathSpec{Section: event.ResponseElements, Type: rt, Path: steps}}
}

func reqPath(rt types.ResourceType, steps ...Step) PathEntry {
	return PathEntry{Spec: PathSpec{Section: event.RequestParameters, Type: rt, Path: steps}}
}

func withSource(e PathEntry, source string) PathEntry {
	e.Source = source
	return e
}

// registerBuiltins seeds the registry with every supported creation
// event. Event names shared by several services (CreateCluster and
// friends) carry an eventSource filter so only the matching entry runs.
func registerBuiltins(r *Registry) {
	// EC2
	r.Register("RunInstances", respPath(types.EC2Instance,
		Field("instancesSet"), Field("items"), Expand(), Field("instanceId")))
	r.Register("CreateVolume", respPath(types.EC2Volume, Field("volumeId")))
	r.Register("CreateSecurityGroup", respPath(types.EC2SecurityGroup, Field("groupId")))
	r.Register("CreateVpc", respPath(types.EC2VPC, Field("vpc"), Field("vpcId")))
	r.Register("CreateSubnet", respPath(types.EC2Subnet, Field("subnet"), Field("subnetId")))
	r.Register("CreateSnapshot", respPath(types.EC2Snapshot, Field("snapshotId")))
	r.Register("CreateImage", respPath(types.EC2Image, Field("imageId")))
	r.Register("AllocateAddress", respPath(types.EC2ElasticIP, Field("allocationId")))

	// S3
	r.Register("CreateBucket", reqPath(types.S3Bucket, Field("bucketName")))

	// RDS
	r.Register("CreateDBInstance", reqPath(types.RDSInstance, Field("dBInstanceIdentifier")))
	r.Register("CreateDBCluster", reqPath(types.RDSCluster, Field("dBClusterIdentifier")))

	// Lambda
	r.Register("CreateFunction20150331", reqPath(types.LambdaFunction, Field("functionName")))

	// ELBv2
	r.Register("CreateLoadBalancer", respPath(types.ELBLoadBalancer,
		Field("loadBalancers"), Expand(), Field("loadBalancerArn")))
	r.Register("CreateTargetGroup", respPath(types.ELBTargetGroup,
		Field("targetGroups"), Expand(), Field("targetGroupArn")))

	// CreateCluster is used by EKS, ECS, Redshift and MemoryDB;
	// the eventSource filter picks the right entry.
	r.Register("CreateCluster", withSource(respPath(types.EKSCluster,
		Field("cluster"), Field("name")), "eks.amazonaws.com"))
	r.Register("CreateCluster", withSource(respPath(types.ECSCluster,
		Field("cluster"), Field("clusterName")), "ecs.amazonaws.com"))
	r.Register("CreateCluster", withSource(reqPath(types.RedshiftCluster,
		Field("clusterIdentifier")), "redshift.amazonaws.com"))
	r.Register("CreateCluster", withSource(respPath(types.MemoryDBCluster,
		Field("cluster"), Field("name")), "memorydb.amazonaws.com"))

	// EKS node groups: the id is cluster-name/nodegroup-name, and the
	// same event also names the backing auto scaling groups when the
	// response carries them.
	r.Register("CreateNodegroup", FuncEntry{Source: "eks.amazonaws.com", Fn: extractNodegroup})
	r.Register("CreateNodegroup", withSource(respPath(types.AutoScalingGroup,
		Field("nodegroup"), Field("resources"), Field("autoScalingGroups"),
		Expand(), Field("name")), "eks.amazonaws.com"))

	// ECS / ECR
	r.Register("CreateService", withSource(respPath(types.ECSService,
		Field("service"), Field("serviceName")), "ecs.amazonaws.com"))
	r.Register("CreateRepository", withSource(respPath(types.ECRRepository,
		Field("repository"), Field("repositoryName")), "ecr.amazonaws.com"))

	// DynamoDB / SQS
	r.Register("CreateTable", withSource(respPath(types.DynamoDBTable,
		Field("tableDescription"), Field("tableName")), "dynamodb.amazonaws.com"))
	r.Register("CreateQueue", withSource(respPath(types.SQSQueue,
		Field("queueUrl")), "sqs.amazonaws.com"))

	// KMS / IAM
	r.Register("CreateKey", respPath(types.KMSKey, Field("keyMetadata"), Field("keyId")))
	r.Register("CreateRole", respPath(types.IAMRole, Field("role"), Field("roleName")))
	r.Register("CreateUser", withSource(respPath(types.IAMUser,
		Field("user"), Field("userName")), "iam.amazonaws.com"))
	r.Register("CreatePolicy", respPath(types.IAMPolicy, Field("policy"), Field("arn")))

	// Route53 / CloudWatch Logs / Auto Scaling
	r.Register("CreateHostedZone", respPath(types.Route53HostedZone,
		Field("hostedZone"), Field("id")))
	r.Register("CreateLogGroup", reqPath(types.LogGroup, Field("logGroupName")))
	r.Register("CreateAutoScalingGroup", reqPath(types.AutoScalingGroup,
		Field("autoScalingGroupName")))
}

// extractNodegroup builds the cluster/nodegroup composite id the EKS
// tagging ARN needs.
func extractNodegroup(ev event.RawEvent) []types.ResourceRef {
	ng, ok := ev.Section(event.ResponseElements).Field("nodegroup")
	if !ok {
		return nil
	}
	cluster := fieldText(ng, "clusterName")
	name := fieldText(ng, "nodegroupName")
	if cluster == "" || name == "" {
		return nil
	}
	return []types.ResourceRef{MakeRef(ev, types.EKSNodeGroup, cluster+"/"+name)}
}

func fieldText(v event.Value, key string) string {
	child, ok := v.Field(key)
	if !ok {
		return ""
	}
	text, _ := child.Text()
	return text
}
