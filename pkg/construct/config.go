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

package construct

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	cachev1alpha1 "github.com/cloudconstructs/awscache/apis/cache/v1alpha1"
	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
)

// An Engine selects the cache engine a cluster runs.
type Engine string

// Supported engines.
const (
	EngineRedis     Engine = cachev1alpha1.EngineRedis
	EngineMemcached Engine = cachev1alpha1.EngineMemcached
)

// Default engine ports.
const (
	defaultRedisPort     int32 = 6379
	defaultMemcachedPort int32 = 11211
)

// DefaultPort returns the port the engine listens on when no explicit port is
// configured.
func (e Engine) DefaultPort() int32 {
	if e == EngineRedis {
		return defaultRedisPort
	}
	return defaultMemcachedPort
}

// A KeyRef is an opaque handle to a KMS key, identified by its key ID or ARN.
type KeyRef struct {
	// ID of the key.
	ID string `json:"id"`
}

// EncryptionSpec configures cluster encryption. When absent from the
// configuration no encryption properties are set at all and the cluster
// defaults to disabled.
type EncryptionSpec struct {
	// AtRest enables encryption of data at rest.
	AtRest bool `json:"atRest"`

	// InTransit enables encryption of data in transit.
	InTransit bool `json:"inTransit"`

	// Key is the KMS key used for at-rest encryption. When nil the service
	// managed key is used.
	// +optional
	Key *KeyRef `json:"key,omitempty"`
}

// BackupSpec configures automatic snapshots. When absent from the
// configuration the provider's own defaulting applies.
type BackupSpec struct {
	// Retention is how long automatic snapshots are kept. It is converted to
	// whole days for the underlying resource.
	Retention metav1.Duration `json:"retention"`

	// PreferredWindow is the daily time range (in UTC) during which snapshots
	// are taken, e.g. "05:00-09:00". When nil the provider picks a window.
	// +optional
	PreferredWindow *string `json:"preferredWindow,omitempty"`
}

// retentionDays converts the retention to whole days.
func (b BackupSpec) retentionDays() int32 {
	return int32(b.Retention.Hours() / 24)
}

// ClusterConfig describes the desired cache cluster. VPC, Engine,
// CacheNodeType and NumCacheNodes are required; everything else is optional
// and defers to engine or provider defaulting when unset.
type ClusterConfig struct {
	// VPC is the network the cluster and its supporting resources are placed
	// into. It is consumed read-only.
	VPC networkv1alpha1.VPC `json:"vpc"`

	// Engine the cluster runs, either "redis" or "memcached".
	Engine Engine `json:"engine"`

	// The compute and memory capacity of the nodes.
	CacheNodeType string `json:"cacheNodeType"`

	// The initial number of cache nodes.
	NumCacheNodes int32 `json:"numCacheNodes"`

	// Region the cluster is created in.
	// +optional
	Region *string `json:"region,omitempty"`

	// The version number of the cache engine.
	// +optional
	EngineVersion *string `json:"engineVersion,omitempty"`

	// The port each cache node accepts connections on. Defaults to the
	// engine's well known port. Passed through verbatim when set.
	// +optional
	Port *int32 `json:"port,omitempty"`

	// An existing cache subnet group to place the cluster into. When nil a
	// subnet group is created from the VPC's private-with-egress subnets.
	// +optional
	SubnetGroup *cachev1alpha1.CacheSubnetGroup `json:"subnetGroup,omitempty"`

	// Existing security groups to associate with the cluster. Only the first
	// entry is used; any further entries are tolerated but ignored. When
	// empty a security group is created with all outbound traffic allowed
	// and no inbound rules.
	// +optional
	SecurityGroups []*networkv1alpha1.SecurityGroup `json:"securityGroups,omitempty"`

	// The name of the parameter group to associate with the cluster.
	// +optional
	CacheParameterGroupName *string `json:"cacheParameterGroupName,omitempty"`

	// If true, minor engine upgrades are applied automatically during the
	// maintenance window.
	// +optional
	AutoMinorVersionUpgrade *bool `json:"autoMinorVersionUpgrade,omitempty"`

	// The EC2 Availability Zone in which the cluster is created.
	// +optional
	PreferredAvailabilityZone *string `json:"preferredAvailabilityZone,omitempty"`

	// A list of the Availability Zones in which cache nodes are created.
	// +optional
	PreferredAvailabilityZones []string `json:"preferredAvailabilityZones,omitempty"`

	// The weekly time range during which maintenance is performed.
	// +optional
	PreferredMaintenanceWindow *string `json:"preferredMaintenanceWindow,omitempty"`

	// The ARN of the SNS topic to which notifications are sent.
	// +optional
	NotificationTopicARN *string `json:"notificationTopicArn,omitempty"`

	// ARNs of Redis RDB snapshot files in S3 to seed the cluster with.
	// +optional
	SnapshotARNs []string `json:"snapshotArns,omitempty"`

	// The name of a Redis snapshot from which to restore data.
	// +optional
	SnapshotName *string `json:"snapshotName,omitempty"`

	// The number of days automatic snapshots are retained. Overridden by
	// Backups when both are set.
	// +optional
	SnapshotRetentionLimit *int32 `json:"snapshotRetentionLimit,omitempty"`

	// The daily time range during which snapshots are taken.
	// +optional
	SnapshotWindow *string `json:"snapshotWindow,omitempty"`

	// Encryption enables at-rest and in-transit encryption.
	// +optional
	Encryption *EncryptionSpec `json:"encryption,omitempty"`

	// Backups configures automatic snapshots.
	// +optional
	Backups *BackupSpec `json:"backups,omitempty"`

	// Tags applied to the construct and every resource it owns.
	// +optional
	Tags map[string]string `json:"tags,omitempty"`
}
