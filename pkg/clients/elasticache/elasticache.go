/*
Copyright 2024 The Cloudconstructs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package elasticache turns declarative cache cluster and cache subnet group
// descriptions into inputs suitable for use with the AWS ElastiCache API.
package elasticache

import (
	"context"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	elasticachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mitchellh/copystructure"
	"github.com/pkg/errors"

	cachev1alpha1 "github.com/cloudconstructs/awscache/apis/cache/v1alpha1"
	clients "github.com/cloudconstructs/awscache/pkg/clients"
)

const errCheckUpToDate = "unable to determine if external resource is up to date"

// A Client handles CRUD operations for ElastiCache resources.
type Client interface {
	DescribeCacheClusters(context.Context, *elasticache.DescribeCacheClustersInput, ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error)
	CreateCacheCluster(context.Context, *elasticache.CreateCacheClusterInput, ...func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error)
	ModifyCacheCluster(context.Context, *elasticache.ModifyCacheClusterInput, ...func(*elasticache.Options)) (*elasticache.ModifyCacheClusterOutput, error)
	DeleteCacheCluster(context.Context, *elasticache.DeleteCacheClusterInput, ...func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error)

	DescribeCacheSubnetGroups(context.Context, *elasticache.DescribeCacheSubnetGroupsInput, ...func(*elasticache.Options)) (*elasticache.DescribeCacheSubnetGroupsOutput, error)
	CreateCacheSubnetGroup(context.Context, *elasticache.CreateCacheSubnetGroupInput, ...func(*elasticache.Options)) (*elasticache.CreateCacheSubnetGroupOutput, error)
	ModifyCacheSubnetGroup(context.Context, *elasticache.ModifyCacheSubnetGroupInput, ...func(*elasticache.Options)) (*elasticache.ModifyCacheSubnetGroupOutput, error)
	DeleteCacheSubnetGroup(context.Context, *elasticache.DeleteCacheSubnetGroupInput, ...func(*elasticache.Options)) (*elasticache.DeleteCacheSubnetGroupOutput, error)
}

// NewClient returns a new ElastiCache client.
func NewClient(cfg aws.Config) Client {
	return elasticache.NewFromConfig(cfg)
}

// NewDescribeCacheClustersInput returns ElastiCache cache cluster describe
// input suitable for use with the AWS API.
func NewDescribeCacheClustersInput(clusterID string) *elasticache.DescribeCacheClustersInput {
	return &elasticache.DescribeCacheClustersInput{
		CacheClusterId:    aws.String(clusterID),
		ShowCacheNodeInfo: aws.Bool(true),
	}
}

// NewDescribeCacheSubnetGroupsInput returns cache subnet group describe input
// suitable for use with the AWS API.
func NewDescribeCacheSubnetGroupsInput(name string) *elasticache.DescribeCacheSubnetGroupsInput {
	return &elasticache.DescribeCacheSubnetGroupsInput{CacheSubnetGroupName: aws.String(name)}
}

// GenerateCreateCacheClusterInput returns Cache Cluster creation input
// suitable for use with the AWS API.
func GenerateCreateCacheClusterInput(p cachev1alpha1.CacheClusterParameters, id string) *elasticache.CreateCacheClusterInput {
	c := &elasticache.CreateCacheClusterInput{
		CacheClusterId:             aws.String(id),
		CacheNodeType:              aws.String(p.CacheNodeType),
		NumCacheNodes:              aws.Int32(p.NumCacheNodes),
		AutoMinorVersionUpgrade:    p.AutoMinorVersionUpgrade,
		CacheParameterGroupName:    p.CacheParameterGroupName,
		CacheSubnetGroupName:       p.CacheSubnetGroupName,
		Engine:                     p.Engine,
		EngineVersion:              p.EngineVersion,
		NotificationTopicArn:       p.NotificationTopicARN,
		Port:                       p.Port,
		PreferredAvailabilityZone:  p.PreferredAvailabilityZone,
		PreferredAvailabilityZones: p.PreferredAvailabilityZones,
		PreferredMaintenanceWindow: p.PreferredMaintenanceWindow,
		ReplicationGroupId:         p.ReplicationGroupID,
		SecurityGroupIds:           p.SecurityGroupIDs,
		SnapshotArns:               p.SnapshotARNs,
		SnapshotName:               p.SnapshotName,
		SnapshotRetentionLimit:     p.SnapshotRetentionLimit,
		SnapshotWindow:             p.SnapshotWindow,
		TransitEncryptionEnabled:   p.TransitEncryptionEnabled,
	}

	if len(p.Tags) != 0 {
		c.Tags = make([]elasticachetypes.Tag, len(p.Tags))
		for i, tag := range p.Tags {
			c.Tags[i] = elasticachetypes.Tag{
				Key:   clients.String(tag.Key),
				Value: tag.Value,
			}
		}
	}

	return c
}

// GenerateModifyCacheClusterInput returns ElastiCache Cache Cluster
// modification input suitable for use with the AWS API.
func GenerateModifyCacheClusterInput(p cachev1alpha1.CacheClusterParameters, id string) *elasticache.ModifyCacheClusterInput {
	return &elasticache.ModifyCacheClusterInput{
		CacheClusterId:             aws.String(id),
		AutoMinorVersionUpgrade:    p.AutoMinorVersionUpgrade,
		CacheNodeType:              aws.String(p.CacheNodeType),
		CacheParameterGroupName:    p.CacheParameterGroupName,
		EngineVersion:              p.EngineVersion,
		NewAvailabilityZones:       p.PreferredAvailabilityZones,
		NotificationTopicArn:       p.NotificationTopicARN,
		NumCacheNodes:              aws.Int32(p.NumCacheNodes),
		PreferredMaintenanceWindow: p.PreferredMaintenanceWindow,
		SecurityGroupIds:           p.SecurityGroupIDs,
		SnapshotRetentionLimit:     p.SnapshotRetentionLimit,
		SnapshotWindow:             p.SnapshotWindow,
	}
}

// GenerateCreateCacheSubnetGroupInput returns cache subnet group creation
// input suitable for use with the AWS API.
func GenerateCreateCacheSubnetGroupInput(p cachev1alpha1.CacheSubnetGroupParameters, name string) *elasticache.CreateCacheSubnetGroupInput {
	return &elasticache.CreateCacheSubnetGroupInput{
		CacheSubnetGroupName:        aws.String(name),
		CacheSubnetGroupDescription: aws.String(p.Description),
		SubnetIds:                   p.SubnetIDs,
	}
}

// GenerateModifyCacheSubnetGroupInput returns cache subnet group modification
// input suitable for use with the AWS API.
func GenerateModifyCacheSubnetGroupInput(p cachev1alpha1.CacheSubnetGroupParameters, name string) *elasticache.ModifyCacheSubnetGroupInput {
	return &elasticache.ModifyCacheSubnetGroupInput{
		CacheSubnetGroupName:        aws.String(name),
		CacheSubnetGroupDescription: aws.String(p.Description),
		SubnetIds:                   p.SubnetIDs,
	}
}

// GenerateClusterObservation produces a CacheClusterObservation out of a
// received elasticache CacheCluster object.
func GenerateClusterObservation(c elasticachetypes.CacheCluster) cachev1alpha1.CacheClusterObservation {
	o := cachev1alpha1.CacheClusterObservation{
		AtRestEncryptionEnabled:  clients.BoolValue(c.AtRestEncryptionEnabled),
		TransitEncryptionEnabled: clients.BoolValue(c.TransitEncryptionEnabled),
		CacheClusterStatus:       aws.ToString(c.CacheClusterStatus),
	}

	if c.ConfigurationEndpoint != nil {
		o.ConfigurationEndpoint = cachev1alpha1.Endpoint{
			Address: aws.ToString(c.ConfigurationEndpoint.Address),
			Port:    int(clients.Int32Value(c.ConfigurationEndpoint.Port)),
		}
	}

	if c.NotificationConfiguration != nil {
		o.NotificationConfiguration = cachev1alpha1.NotificationConfiguration{
			TopicARN:    aws.ToString(c.NotificationConfiguration.TopicArn),
			TopicStatus: c.NotificationConfiguration.TopicStatus,
		}
	}

	if len(c.CacheNodes) > 0 {
		nodes := make([]cachev1alpha1.CacheNode, len(c.CacheNodes))
		for i, v := range c.CacheNodes {
			nodes[i] = cachev1alpha1.CacheNode{
				CacheNodeID:              aws.ToString(v.CacheNodeId),
				CacheNodeStatus:          aws.ToString(v.CacheNodeStatus),
				CustomerAvailabilityZone: aws.ToString(v.CustomerAvailabilityZone),
				ParameterGroupStatus:     aws.ToString(v.ParameterGroupStatus),
				SourceCacheNodeID:        v.SourceCacheNodeId,
			}
			if v.Endpoint != nil {
				nodes[i].Endpoint = &cachev1alpha1.Endpoint{
					Address: aws.ToString(v.Endpoint.Address),
					Port:    int(clients.Int32Value(v.Endpoint.Port)),
				}
			}
		}
		o.CacheNodes = nodes
	}
	return o
}

// LateInitializeCluster assigns the observed configurations to the
// corresponding unset fields in CacheClusterParameters in order to let the
// user know the defaults and change them as wished.
func LateInitializeCluster(p *cachev1alpha1.CacheClusterParameters, c elasticachetypes.CacheCluster) {
	p.SnapshotRetentionLimit = clients.LateInitializeInt32Ptr(p.SnapshotRetentionLimit, c.SnapshotRetentionLimit)
	p.SnapshotWindow = clients.LateInitializeStringPtr(p.SnapshotWindow, c.SnapshotWindow)
	p.CacheSubnetGroupName = clients.LateInitializeStringPtr(p.CacheSubnetGroupName, c.CacheSubnetGroupName)
	p.EngineVersion = clients.LateInitializeStringPtr(p.EngineVersion, c.EngineVersion)
	p.AutoMinorVersionUpgrade = clients.LateInitializeBoolPtr(p.AutoMinorVersionUpgrade, c.AutoMinorVersionUpgrade)
	p.PreferredAvailabilityZone = clients.LateInitializeStringPtr(p.PreferredAvailabilityZone, c.PreferredAvailabilityZone)
	p.PreferredMaintenanceWindow = clients.LateInitializeStringPtr(p.PreferredMaintenanceWindow, c.PreferredMaintenanceWindow)
	p.ReplicationGroupID = clients.LateInitializeStringPtr(p.ReplicationGroupID, c.ReplicationGroupId)

	if c.NotificationConfiguration != nil {
		p.NotificationTopicARN = clients.LateInitializeStringPtr(p.NotificationTopicARN, c.NotificationConfiguration.TopicArn)
	}
	if c.CacheParameterGroup != nil {
		p.CacheParameterGroupName = clients.LateInitializeStringPtr(p.CacheParameterGroupName, c.CacheParameterGroup.CacheParameterGroupName)
	}
}

// GenerateCluster modifies the supplied elasticache CacheCluster with values
// from CacheClusterParameters.
func GenerateCluster(name string, p cachev1alpha1.CacheClusterParameters, c *elasticachetypes.CacheCluster) {
	c.CacheClusterId = aws.String(name)
	c.CacheNodeType = aws.String(p.CacheNodeType)
	c.EngineVersion = p.EngineVersion
	c.NumCacheNodes = aws.Int32(p.NumCacheNodes)
	c.PreferredMaintenanceWindow = p.PreferredMaintenanceWindow
	c.SnapshotRetentionLimit = p.SnapshotRetentionLimit
	c.SnapshotWindow = p.SnapshotWindow

	if len(p.SecurityGroupIDs) > 0 {
		sg := make([]elasticachetypes.SecurityGroupMembership, len(p.SecurityGroupIDs))
		for i, v := range p.SecurityGroupIDs {
			sg[i] = elasticachetypes.SecurityGroupMembership{
				SecurityGroupId: aws.String(v),
				Status:          aws.String("active"),
			}
		}
		c.SecurityGroups = sg
	}

	if c.CacheParameterGroup != nil {
		c.CacheParameterGroup.CacheParameterGroupName = p.CacheParameterGroupName
	}

	if c.NotificationConfiguration != nil {
		c.NotificationConfiguration.TopicArn = p.NotificationTopicARN
	}
}

// IsClusterUpToDate checks whether current state is up-to-date compared to
// the given set of parameters.
func IsClusterUpToDate(name string, in *cachev1alpha1.CacheClusterParameters, observed *elasticachetypes.CacheCluster) (bool, error) {
	generated, err := copystructure.Copy(observed)
	if err != nil {
		return true, errors.Wrap(err, errCheckUpToDate)
	}
	desired, ok := generated.(*elasticachetypes.CacheCluster)
	if !ok {
		return true, errors.New(errCheckUpToDate)
	}
	GenerateCluster(name, *in, desired)

	// The SDK types carry unexported smithy serde markers that cmp refuses
	// to walk without an exporter.
	return cmp.Equal(desired, observed, cmpopts.EquateEmpty(),
		cmp.Exporter(func(reflect.Type) bool { return true })), nil
}

// IsSubnetGroupUpToDate checks if CacheSubnetGroupParameters are in sync with
// provider values.
func IsSubnetGroupUpToDate(p cachev1alpha1.CacheSubnetGroupParameters, sg elasticachetypes.CacheSubnetGroup) bool {
	if p.Description != aws.ToString(sg.CacheSubnetGroupDescription) {
		return false
	}

	if len(p.SubnetIDs) != len(sg.Subnets) {
		return false
	}

	exists := make(map[string]bool)
	for _, s := range sg.Subnets {
		exists[aws.ToString(s.SubnetIdentifier)] = true
	}
	for _, id := range p.SubnetIDs {
		if !exists[id] {
			return false
		}
	}

	return true
}

// IsClusterNotFound returns true if the supplied error indicates a Cache
// Cluster was not found.
func IsClusterNotFound(err error) bool {
	var nf *elasticachetypes.CacheClusterNotFoundFault
	return errors.As(err, &nf)
}

// IsClusterAlreadyExists returns true if the supplied error indicates a Cache
// Cluster already exists.
func IsClusterAlreadyExists(err error) bool {
	var ae *elasticachetypes.CacheClusterAlreadyExistsFault
	return errors.As(err, &ae)
}

// IsSubnetGroupNotFound returns true if the supplied error indicates a Cache
// Subnet Group was not found.
func IsSubnetGroupNotFound(err error) bool {
	var nf *elasticachetypes.CacheSubnetGroupNotFoundFault
	return errors.As(err, &nf)
}

// IsSubnetGroupAlreadyExists returns true if the supplied error indicates a
// Cache Subnet Group already exists.
func IsSubnetGroupAlreadyExists(err error) bool {
	var ae *elasticachetypes.CacheSubnetGroupAlreadyExistsFault
	return errors.As(err, &ae)
}
