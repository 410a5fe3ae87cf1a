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

package v1alpha1

import (
	xpv1 "github.com/crossplane/crossplane-runtime/apis/common/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CacheCluster states.
const (
	StatusCreating            = "creating"
	StatusAvailable           = "available"
	StatusModifying           = "modifying"
	StatusDeleted             = "deleted"
	StatusDeleting            = "deleting"
	StatusCreateFailed        = "create-failed"
	StatusIncompatibleNetwork = "incompatible-network"
	StatusSnapshotting        = "snapshotting"
)

// Supported cache engines.
const (
	EngineRedis     = "redis"
	EngineMemcached = "memcached"
)

// A Tag is used to tag the ElastiCache resources in AWS.
type Tag struct {
	// Key for the tag.
	Key string `json:"key"`

	// Value of the tag.
	// +optional
	Value *string `json:"value,omitempty"`
}

// CacheNode represents a node in the cluster.
type CacheNode struct {
	// The cache node identifier.
	CacheNodeID string `json:"cacheNodeId,omitempty"`

	// The current state of this cache node.
	CacheNodeStatus string `json:"cacheNodeStatus,omitempty"`

	// The Availability Zone where this node was created and now resides.
	CustomerAvailabilityZone string `json:"customerAvailabilityZone,omitempty"`

	// The hostname for connecting to this cache node.
	Endpoint *Endpoint `json:"endpoint,omitempty"`

	// The status of the parameter group applied to this cache node.
	ParameterGroupStatus string `json:"parameterGroupStatus,omitempty"`

	// The ID of the primary node to which this read replica node is synchronized.
	SourceCacheNodeID *string `json:"sourceCacheNodeId,omitempty"`
}

// Endpoint represents the information required for client programs to connect
// to a cache node.
type Endpoint struct {
	// Address is the DNS hostname of the cache node.
	Address string `json:"address,omitempty"`

	// Port number that the cache engine is listening on.
	Port int `json:"port,omitempty"`
}

// NotificationConfiguration represents configuration of an SNS topic used to
// publish cluster events.
type NotificationConfiguration struct {
	// The Amazon Resource Name (ARN) that identifies the topic.
	TopicARN string `json:"topicArn,omitempty"`

	// The current state of the topic.
	TopicStatus *string `json:"topicStatus,omitempty"`
}

// CacheClusterObservation contains the observed state of a Cache Cluster.
// Fields here are only known once the described infrastructure has actually
// been materialized.
type CacheClusterObservation struct {
	// A flag that enables encryption at-rest when set to true.
	AtRestEncryptionEnabled bool `json:"atRestEncryptionEnabled,omitempty"`

	// A flag that enables in-transit encryption when set to true.
	TransitEncryptionEnabled bool `json:"transitEncryptionEnabled,omitempty"`

	// The current state of this cluster.
	CacheClusterStatus string `json:"cacheClusterStatus,omitempty"`

	// A list of cache nodes that are members of the cluster.
	CacheNodes []CacheNode `json:"cacheNodes,omitempty"`

	// Represents a Memcached cluster endpoint which, if Automatic Discovery is
	// enabled on the cluster, can be used by an application to connect to any
	// node in the cluster. The configuration endpoint will always have .cfg in
	// it.
	ConfigurationEndpoint Endpoint `json:"configurationEndpoint,omitempty"`

	// Describes a notification topic and its status.
	NotificationConfiguration NotificationConfiguration `json:"notificationConfiguration,omitempty"`
}

// CacheClusterParameters define the desired state of an AWS ElastiCache Cache
// Cluster. Most fields map directly to a CreateCacheCluster request:
// https://docs.aws.amazon.com/AmazonElastiCache/latest/APIReference/API_CreateCacheCluster.html
type CacheClusterParameters struct {
	// Region is the region the cluster is created in.
	// +optional
	Region *string `json:"region,omitempty"`

	// The name of the cache engine to be used for this cluster, either
	// "redis" or "memcached".
	// +optional
	// +immutable
	Engine *string `json:"engine,omitempty"`

	// The version number of the cache engine to be used for this cluster.
	// +optional
	EngineVersion *string `json:"engineVersion,omitempty"`

	// The compute and memory capacity of the nodes in the cluster.
	CacheNodeType string `json:"cacheNodeType"`

	// The initial number of cache nodes that the cluster has.
	NumCacheNodes int32 `json:"numCacheNodes"`

	// The port number on which each of the cache nodes accepts connections.
	// +optional
	// +immutable
	Port *int32 `json:"port,omitempty"`

	// The name of the parameter group to associate with this cluster. If this
	// argument is omitted, the default parameter group for the specified
	// engine is used.
	// +optional
	CacheParameterGroupName *string `json:"cacheParameterGroupName,omitempty"`

	// The name of the subnet group to be used for the cluster.
	// +optional
	CacheSubnetGroupName *string `json:"cacheSubnetGroupName,omitempty"`

	// One or more VPC security groups associated with the cluster.
	// +optional
	SecurityGroupIDs []string `json:"securityGroupIds,omitempty"`

	// If true, minor engine upgrades are applied automatically to the cluster
	// during the maintenance window.
	// +optional
	AutoMinorVersionUpgrade *bool `json:"autoMinorVersionUpgrade,omitempty"`

	// The EC2 Availability Zone in which the cluster is created.
	// Default: System chosen Availability Zone.
	// +optional
	PreferredAvailabilityZone *string `json:"preferredAvailabilityZone,omitempty"`

	// A list of the Availability Zones in which cache nodes are created.
	// +optional
	PreferredAvailabilityZones []string `json:"preferredAvailabilityZones,omitempty"`

	// Specifies the weekly time range during which maintenance on the cluster
	// is performed.
	// +optional
	PreferredMaintenanceWindow *string `json:"preferredMaintenanceWindow,omitempty"`

	// The Amazon Resource Name (ARN) of the Amazon Simple Notification Service
	// (SNS) topic to which notifications are sent.
	// +optional
	NotificationTopicARN *string `json:"notificationTopicArn,omitempty"`

	// One or more Amazon Resource Names (ARNs) that uniquely identify Redis
	// RDB snapshot files stored in Amazon S3 to seed the new cluster with.
	// +optional
	// +immutable
	SnapshotARNs []string `json:"snapshotArns,omitempty"`

	// The name of a Redis snapshot from which to restore data into the new
	// cluster.
	// +optional
	// +immutable
	SnapshotName *string `json:"snapshotName,omitempty"`

	// The number of days for which ElastiCache retains automatic snapshots
	// before deleting them.
	// +optional
	SnapshotRetentionLimit *int32 `json:"snapshotRetentionLimit,omitempty"`

	// The daily time range (in UTC) during which ElastiCache begins taking a
	// daily snapshot of the cluster.
	// +optional
	SnapshotWindow *string `json:"snapshotWindow,omitempty"`

	// A flag that enables encryption at-rest when set to true.
	// +optional
	// +immutable
	AtRestEncryptionEnabled *bool `json:"atRestEncryptionEnabled,omitempty"`

	// A flag that enables in-transit encryption when set to true.
	// +optional
	// +immutable
	TransitEncryptionEnabled *bool `json:"transitEncryptionEnabled,omitempty"`

	// The ID of the KMS key used to encrypt the cluster at rest.
	// +optional
	// +immutable
	KMSKeyID *string `json:"kmsKeyId,omitempty"`

	// The ID of the replication group to which this cluster should belong.
	// +optional
	// +immutable
	ReplicationGroupID *string `json:"replicationGroupId,omitempty"`

	// A list of cost allocation tags to be added to this resource.
	// +optional
	Tags []Tag `json:"tags,omitempty"`
}

// A CacheClusterSpec defines the desired state of a CacheCluster.
type CacheClusterSpec struct {
	xpv1.ResourceSpec `json:",inline"`
	ForProvider       CacheClusterParameters `json:"forProvider"`
}

// A CacheClusterStatus defines the observed state of a CacheCluster.
type CacheClusterStatus struct {
	xpv1.ResourceStatus `json:",inline"`
	AtProvider          CacheClusterObservation `json:"atProvider,omitempty"`
}

// A CacheCluster is a declarative resource that represents an AWS ElastiCache
// Cache Cluster.
type CacheCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CacheClusterSpec   `json:"spec"`
	Status CacheClusterStatus `json:"status,omitempty"`
}

// CacheClusterList contains a list of CacheCluster.
type CacheClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CacheCluster `json:"items"`
}
