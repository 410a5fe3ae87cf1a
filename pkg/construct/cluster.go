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

// Package construct assembles a managed cache cluster together with its
// supporting subnet group and security group into a set of declarative
// resource descriptions.
package construct

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	cachev1alpha1 "github.com/cloudconstructs/awscache/apis/cache/v1alpha1"
	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
)

// API group/version/kind values stamped onto rendered resources.
const (
	cacheAPIVersion   = "cache.aws.cloudconstructs.io/v1alpha1"
	networkAPIVersion = "network.aws.cloudconstructs.io/v1alpha1"

	kindCacheCluster     = "CacheCluster"
	kindCacheSubnetGroup = "CacheSubnetGroup"
	kindSecurityGroup    = "SecurityGroup"
)

// ErrReadReplicaUnsupported is returned by AddReadReplica. Standalone cache
// clusters cannot grow read replicas; a replication group is required for
// that topology.
var ErrReadReplicaUnsupported = errors.New("read replicas are not supported for a standalone cache cluster; use a replication group")

// ReadReplicaOptions configure a requested read replica.
type ReadReplicaOptions struct {
	// NumCacheNodes the replica cluster should have.
	// +optional
	NumCacheNodes *int32

	// Region the replica cluster should be created in.
	// +optional
	Region *string
}

// Resources is the set of resource descriptions a cluster construct is made
// of. The owned flags report whether the construct created the supporting
// resource itself or merely references one supplied by the caller.
type Resources struct {
	SecurityGroup      *networkv1alpha1.SecurityGroup
	SecurityGroupOwned bool

	SubnetGroup      *cachev1alpha1.CacheSubnetGroup
	SubnetGroupOwned bool

	CacheCluster *cachev1alpha1.CacheCluster
}

// A Cluster composes a cache cluster resource, its subnet group and its
// security group from a single configuration. All child resources are
// created once, synchronously, at construction time.
type Cluster struct {
	name string
	port int32

	securityGroup      *networkv1alpha1.SecurityGroup
	securityGroupOwned bool

	subnetGroup      *cachev1alpha1.CacheSubnetGroup
	subnetGroupOwned bool

	resource *cachev1alpha1.CacheCluster
	conns    *Connections
}

// New assembles a cluster construct from the given configuration. The steps
// run in a fixed order: port resolution, security group resolution, subnet
// group resolution, primary resource mapping, encryption overlay, backup
// overlay, tag overlay, connections derivation. Overlays always overwrite
// what the base mapping set. No input validation is performed; malformed
// combinations surface when the description is planned or deployed.
func New(name string, cfg ClusterConfig) *Cluster {
	port := resolvePort(cfg)
	sg, sgOwned := resolveSecurityGroup(name, cfg)
	sng, sngOwned := resolveSubnetGroup(name, cfg)

	params := generateClusterParameters(cfg, port, sg, sng)
	applyEncryptionOverlay(&params, cfg.Encryption)
	applyBackupsOverlay(&params, cfg.Backups)

	c := &Cluster{
		name:               name,
		port:               port,
		securityGroup:      sg,
		securityGroupOwned: sgOwned,
		subnetGroup:        sng,
		subnetGroupOwned:   sngOwned,
		resource: &cachev1alpha1.CacheCluster{
			TypeMeta:   metav1.TypeMeta{APIVersion: cacheAPIVersion, Kind: kindCacheCluster},
			ObjectMeta: metav1.ObjectMeta{Name: name},
			Spec:       cachev1alpha1.CacheClusterSpec{ForProvider: params},
		},
	}

	c.applyTagOverlay(cfg.Tags)
	c.conns = NewConnections(sg, aws.Int32(port))
	return c
}

// resolvePort picks the explicit port if set, and the engine's well known
// port otherwise. A user-supplied port is passed through without range
// checks.
func resolvePort(cfg ClusterConfig) int32 {
	if cfg.Port != nil {
		return *cfg.Port
	}
	return cfg.Engine.DefaultPort()
}

// resolveSecurityGroup turns the configured security groups into a single
// owned-or-borrowed handle. The first supplied group wins; further entries
// are tolerated but ignored. With none supplied a group is created in the
// VPC with all outbound traffic allowed and no inbound rules.
func resolveSecurityGroup(name string, cfg ClusterConfig) (sg *networkv1alpha1.SecurityGroup, owned bool) {
	if len(cfg.SecurityGroups) > 0 {
		return cfg.SecurityGroups[0], false
	}

	groupName := name + "-sg"
	return &networkv1alpha1.SecurityGroup{
		TypeMeta:   metav1.TypeMeta{APIVersion: networkAPIVersion, Kind: kindSecurityGroup},
		ObjectMeta: metav1.ObjectMeta{Name: groupName},
		Spec: networkv1alpha1.SecurityGroupSpec{
			ForProvider: networkv1alpha1.SecurityGroupParameters{
				GroupName:   groupName,
				Description: fmt.Sprintf("Security group for the %s cache cluster", name),
				VPCID:       aws.String(cfg.VPC.VPCID),
				Egress: []networkv1alpha1.IPPermission{{
					IPProtocol: "-1",
					IPRanges: []networkv1alpha1.IPRange{{
						CIDRIP:      "0.0.0.0/0",
						Description: aws.String("Allow all outbound traffic"),
					}},
				}},
			},
		},
	}, true
}

// resolveSubnetGroup reuses the supplied subnet group, or creates one whose
// members are every private-with-egress subnet of the VPC. An empty
// selection is not an error here; it fails at plan or deployment time.
func resolveSubnetGroup(name string, cfg ClusterConfig) (sng *cachev1alpha1.CacheSubnetGroup, owned bool) {
	if cfg.SubnetGroup != nil {
		return cfg.SubnetGroup, false
	}

	ids := cfg.VPC.SelectSubnets(networkv1alpha1.SubnetSelection{
		SubnetType: networkv1alpha1.SubnetTypePrivateWithEgress,
	})
	return &cachev1alpha1.CacheSubnetGroup{
		TypeMeta:   metav1.TypeMeta{APIVersion: cacheAPIVersion, Kind: kindCacheSubnetGroup},
		ObjectMeta: metav1.ObjectMeta{Name: name + "-subnets"},
		Spec: cachev1alpha1.CacheSubnetGroupSpec{
			ForProvider: cachev1alpha1.CacheSubnetGroupParameters{
				Description: fmt.Sprintf("Subnet group for the %s cache cluster", name),
				SubnetIDs:   ids,
			},
		},
	}, true
}

// generateClusterParameters maps the configuration onto the primary resource
// 1:1, with the resolved port, the resolved subnet group's name and a
// single-element security group list holding the resolved group's
// identifier. Unset fields stay nil and defer to provider defaulting.
func generateClusterParameters(cfg ClusterConfig, port int32, sg *networkv1alpha1.SecurityGroup, sng *cachev1alpha1.CacheSubnetGroup) cachev1alpha1.CacheClusterParameters {
	return cachev1alpha1.CacheClusterParameters{
		Region:                     cfg.Region,
		Engine:                     aws.String(string(cfg.Engine)),
		EngineVersion:              cfg.EngineVersion,
		CacheNodeType:              cfg.CacheNodeType,
		NumCacheNodes:              cfg.NumCacheNodes,
		Port:                       aws.Int32(port),
		CacheParameterGroupName:    cfg.CacheParameterGroupName,
		CacheSubnetGroupName:       aws.String(sng.GetName()),
		SecurityGroupIDs:           []string{securityGroupID(sg).String()},
		AutoMinorVersionUpgrade:    cfg.AutoMinorVersionUpgrade,
		PreferredAvailabilityZone:  cfg.PreferredAvailabilityZone,
		PreferredAvailabilityZones: cfg.PreferredAvailabilityZones,
		PreferredMaintenanceWindow: cfg.PreferredMaintenanceWindow,
		NotificationTopicARN:       cfg.NotificationTopicARN,
		SnapshotARNs:               cfg.SnapshotARNs,
		SnapshotName:               cfg.SnapshotName,
		SnapshotRetentionLimit:     cfg.SnapshotRetentionLimit,
		SnapshotWindow:             cfg.SnapshotWindow,
	}
}

// applyEncryptionOverlay writes the encryption overlay onto the draft
// parameters. The overlay always wins over whatever the base mapping set.
// A nil overlay sets nothing, leaving the cluster's encryption disabled.
func applyEncryptionOverlay(p *cachev1alpha1.CacheClusterParameters, e *EncryptionSpec) {
	if e == nil {
		return
	}
	p.AtRestEncryptionEnabled = aws.Bool(e.AtRest)
	p.TransitEncryptionEnabled = aws.Bool(e.InTransit)
	if e.Key != nil {
		p.KMSKeyID = aws.String(e.Key.ID)
	}
}

// applyBackupsOverlay writes the backup overlay onto the draft parameters.
// Retention always wins over a SnapshotRetentionLimit set by the base
// mapping; the window is only written when explicitly given, leaving the
// base value in place otherwise.
func applyBackupsOverlay(p *cachev1alpha1.CacheClusterParameters, b *BackupSpec) {
	if b == nil {
		return
	}
	p.SnapshotRetentionLimit = aws.Int32(b.retentionDays())
	if b.PreferredWindow != nil {
		p.SnapshotWindow = b.PreferredWindow
	}
}

// applyTagOverlay applies every configured tag to the construct scope,
// propagating to all owned resources. Keys are applied in sorted order so
// rendering is deterministic; duplicate keys overwrite.
func (c *Cluster) applyTagOverlay(tags map[string]string) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.AddTag(k, tags[k])
	}
}

// AddTag applies a tag to the construct and, transitively, to every resource
// it owns. Supplied (borrowed) resources are left untouched. An existing tag
// with the same key is overwritten.
func (c *Cluster) AddTag(key, value string) {
	c.resource.Spec.ForProvider.Tags = upsertCacheTag(c.resource.Spec.ForProvider.Tags, key, value)
	if c.securityGroupOwned {
		c.securityGroup.Spec.ForProvider.Tags = upsertNetworkTag(c.securityGroup.Spec.ForProvider.Tags, key, value)
	}
	// Subnet groups accept tags through the same API; the subnet group
	// resource carries none today, so owned groups are skipped.
}

func upsertCacheTag(tags []cachev1alpha1.Tag, key, value string) []cachev1alpha1.Tag {
	for i := range tags {
		if tags[i].Key == key {
			tags[i].Value = aws.String(value)
			return tags
		}
	}
	return append(tags, cachev1alpha1.Tag{Key: key, Value: aws.String(value)})
}

func upsertNetworkTag(tags []networkv1alpha1.Tag, key, value string) []networkv1alpha1.Tag {
	for i := range tags {
		if tags[i].Key == key {
			tags[i].Value = aws.String(value)
			return tags
		}
	}
	return append(tags, networkv1alpha1.Tag{Key: key, Value: aws.String(value)})
}

// securityGroupID returns the group's identifier attribute, concrete when
// the group has been materialized and symbolic otherwise.
func securityGroupID(sg *networkv1alpha1.SecurityGroup) Attribute {
	ref := fmt.Sprintf("${securitygroup/%s/status/securityGroupID}", sg.Spec.ForProvider.GroupName)
	if id := sg.Status.AtProvider.SecurityGroupID; id != "" {
		return ResolvedAttribute(ref, id)
	}
	return UnresolvedAttribute(ref)
}

// Name returns the construct's name, which is also the cache cluster ID.
func (c *Cluster) Name() string { return c.name }

// Port returns the resolved port the cluster accepts connections on.
func (c *Cluster) Port() int32 { return c.port }

// Connections returns the connections object other components use to
// authorize network reachability to this cluster.
func (c *Cluster) Connections() *Connections { return c.conns }

// Resources returns the resource descriptions the construct is made of.
func (c *Cluster) Resources() Resources {
	return Resources{
		SecurityGroup:      c.securityGroup,
		SecurityGroupOwned: c.securityGroupOwned,
		SubnetGroup:        c.subnetGroup,
		SubnetGroupOwned:   c.subnetGroupOwned,
		CacheCluster:       c.resource,
	}
}

// AllowConnectionsFrom asks the other party's connections to permit egress to
// this cluster on the given port, or the cluster's resolved port when nil.
// The rule pair lands in the two security group descriptions; nothing else
// changes locally.
func (c *Cluster) AllowConnectionsFrom(other Connectable, port *int32) error {
	desc := fmt.Sprintf("Access to the %s cache cluster", c.name)
	return other.Connections().AllowTo(c.conns, port, desc)
}

// AddReadReplica reports that read replicas are unsupported. It never
// silently succeeds and creates no resources.
func (c *Cluster) AddReadReplica(id string, o ReadReplicaOptions) error {
	return ErrReadReplicaUnsupported
}

// SetSecurityGroupID records the materialized identifier of the resolved
// security group and rewrites the primary resource's symbolic reference to
// it.
func (c *Cluster) SetSecurityGroupID(id string) {
	symbolic := securityGroupID(c.securityGroup).Ref()
	c.securityGroup.Status.AtProvider.SecurityGroupID = id
	for i, v := range c.resource.Spec.ForProvider.SecurityGroupIDs {
		if v == symbolic {
			c.resource.Spec.ForProvider.SecurityGroupIDs[i] = id
		}
	}
}

// MarkResolved attaches an observation of the materialized cluster, turning
// the endpoint and status accessors concrete.
func (c *Cluster) MarkResolved(o cachev1alpha1.CacheClusterObservation) {
	c.resource.Status.AtProvider = o
}

// Status returns the cluster's lifecycle state attribute.
func (c *Cluster) Status() Attribute {
	ref := fmt.Sprintf("${cachecluster/%s/status/cacheClusterStatus}", c.name)
	if s := c.resource.Status.AtProvider.CacheClusterStatus; s != "" {
		return ResolvedAttribute(ref, s)
	}
	return UnresolvedAttribute(ref)
}

// ConfigurationEndpoint returns the Memcached configuration endpoint address
// attribute.
func (c *Cluster) ConfigurationEndpoint() Attribute {
	ref := fmt.Sprintf("${cachecluster/%s/status/configurationEndpoint/address}", c.name)
	if a := c.resource.Status.AtProvider.ConfigurationEndpoint.Address; a != "" {
		return ResolvedAttribute(ref, a)
	}
	return UnresolvedAttribute(ref)
}

// Endpoint returns the address attribute of cache node 0, which is the
// connection endpoint for single node Redis clusters.
func (c *Cluster) Endpoint() Attribute {
	ref := fmt.Sprintf("${cachecluster/%s/status/cacheNodes/0/endpoint/address}", c.name)
	if nodes := c.resource.Status.AtProvider.CacheNodes; len(nodes) > 0 && nodes[0].Endpoint != nil {
		return ResolvedAttribute(ref, nodes[0].Endpoint.Address)
	}
	return UnresolvedAttribute(ref)
}

// EndpointPort returns the port attribute of cache node 0.
func (c *Cluster) EndpointPort() Attribute {
	ref := fmt.Sprintf("${cachecluster/%s/status/cacheNodes/0/endpoint/port}", c.name)
	if nodes := c.resource.Status.AtProvider.CacheNodes; len(nodes) > 0 && nodes[0].Endpoint != nil {
		return ResolvedAttribute(ref, fmt.Sprintf("%d", nodes[0].Endpoint.Port))
	}
	return UnresolvedAttribute(ref)
}
