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

// Package deploy materializes cluster constructs against AWS in a single
// one-shot pass, without a reconciliation loop.
package deploy

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2sdk "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/pkg/errors"

	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
	"github.com/cloudconstructs/awscache/pkg/clients/ec2"
	"github.com/cloudconstructs/awscache/pkg/clients/elasticache"
	"github.com/cloudconstructs/awscache/pkg/construct"
)

// Error strings.
const (
	errEmptySubnetGroup      = "cache subnet group has no member subnets; the VPC offers no private-with-egress subnets"
	errUnresolvedSubnetGroup = "supplied cache subnet group has neither member subnets nor a name"
	errCreateSecurityGroup   = "cannot create security group"
	errDescribeSecurityGroup = "cannot describe security group"
	errSecurityGroupNotFound = "security group does not exist"
	errAuthorizeIngress      = "cannot authorize security group ingress rules"
	errAuthorizeEgress       = "cannot authorize security group egress rules"
	errCreateSubnetGroup     = "cannot create cache subnet group"
	errDescribeSubnetGroup   = "cannot describe cache subnet group"
	errModifySubnetGroup     = "cannot modify cache subnet group"
	errSubnetGroupNotFound   = "cache subnet group does not exist"
	errCreateCluster         = "cannot create cache cluster"
	errDescribeCluster       = "cannot describe cache cluster"
	errModifyCluster         = "cannot modify cache cluster"
	errClusterNotFound       = "cache cluster does not exist"
)

// A Step is one materialization action the deployer would take.
type Step struct {
	// Kind of the resource the step touches.
	Kind string

	// Name of the resource.
	Name string

	// Action taken, "create" for owned resources and "use" for borrowed ones.
	Action string
}

func (s Step) String() string {
	return fmt.Sprintf("%s %s %q", s.Action, s.Kind, s.Name)
}

// Plan validates a construct and returns the ordered steps its
// materialization would take. Validation catches what construction defers:
// a construct whose subnet group ended up with no member subnets cannot be
// deployed.
func Plan(c *construct.Cluster) ([]Step, error) {
	r := c.Resources()

	if len(r.SubnetGroup.Spec.ForProvider.SubnetIDs) == 0 {
		if r.SubnetGroupOwned {
			return nil, errors.New(errEmptySubnetGroup)
		}
		if r.SubnetGroup.GetName() == "" {
			return nil, errors.New(errUnresolvedSubnetGroup)
		}
	}

	action := func(owned bool) string {
		if owned {
			return "create"
		}
		return "use"
	}

	return []Step{
		{Kind: "SecurityGroup", Name: r.SecurityGroup.GetName(), Action: action(r.SecurityGroupOwned)},
		{Kind: "CacheSubnetGroup", Name: r.SubnetGroup.GetName(), Action: action(r.SubnetGroupOwned)},
		{Kind: "CacheCluster", Name: r.CacheCluster.GetName(), Action: "create"},
	}, nil
}

// A Deployer materializes constructs using AWS API clients. Apply is
// idempotent; resources and rules that already exist are left in place.
type Deployer struct {
	cache elasticache.Client
	net   ec2.Client
	log   logging.Logger
}

// A DeployerOption configures a Deployer.
type DeployerOption func(*Deployer)

// WithLogger configures the logger the deployer uses.
func WithLogger(l logging.Logger) DeployerOption {
	return func(d *Deployer) {
		d.log = l
	}
}

// NewDeployer returns a Deployer that materializes constructs with the given
// clients.
func NewDeployer(cache elasticache.Client, net ec2.Client, o ...DeployerOption) *Deployer {
	d := &Deployer{
		cache: cache,
		net:   net,
		log:   logging.NewNopLogger(),
	}
	for _, f := range o {
		f(d)
	}
	return d
}

// Apply materializes the construct: the security group first, then its
// rules, then the subnet group, then the cluster itself. The construct's
// symbolic security group reference is rewritten to the real identifier as
// soon as it is known.
func (d *Deployer) Apply(ctx context.Context, c *construct.Cluster) error {
	if _, err := Plan(c); err != nil {
		return err
	}

	if err := d.applySecurityGroup(ctx, c); err != nil {
		return err
	}
	if err := d.applySubnetGroup(ctx, c); err != nil {
		return err
	}
	return d.applyCluster(ctx, c)
}

func (d *Deployer) applySecurityGroup(ctx context.Context, c *construct.Cluster) error {
	r := c.Resources()
	sg := r.SecurityGroup
	p := sg.Spec.ForProvider

	id := sg.Status.AtProvider.SecurityGroupID
	if id == "" && r.SecurityGroupOwned {
		out, err := d.net.CreateSecurityGroup(ctx, ec2.GenerateCreateSecurityGroupInput(p))
		switch {
		case ec2.IsGroupAlreadyExistsErr(err):
			d.log.Debug("Security group already exists", "group", p.GroupName)
		case err != nil:
			return errors.Wrap(err, errCreateSecurityGroup)
		default:
			id = aws.ToString(out.GroupId)
			d.log.Debug("Created security group", "group", p.GroupName, "id", id)
		}
	}
	if id == "" {
		found, err := d.findSecurityGroupID(ctx, p)
		if err != nil {
			return err
		}
		id = found
	}
	c.SetSecurityGroupID(id)

	if perms := ec2.GenerateEC2Permissions(p.Egress); perms != nil {
		_, err := d.net.AuthorizeSecurityGroupEgress(ctx, &ec2sdk.AuthorizeSecurityGroupEgressInput{
			GroupId:       aws.String(id),
			IpPermissions: perms,
		})
		if err != nil && !ec2.IsRuleAlreadyExistsErr(err) {
			return errors.Wrap(err, errAuthorizeEgress)
		}
	}
	if perms := ec2.GenerateEC2Permissions(p.Ingress); perms != nil {
		_, err := d.net.AuthorizeSecurityGroupIngress(ctx, &ec2sdk.AuthorizeSecurityGroupIngressInput{
			GroupId:       aws.String(id),
			IpPermissions: perms,
		})
		if err != nil && !ec2.IsRuleAlreadyExistsErr(err) {
			return errors.Wrap(err, errAuthorizeIngress)
		}
	}
	return nil
}

// findSecurityGroupID looks up a group by name. Group names are only unique
// within a VPC, so the lookup is scoped to the group's VPC when one is set.
func (d *Deployer) findSecurityGroupID(ctx context.Context, p networkv1alpha1.SecurityGroupParameters) (string, error) {
	filters := []ec2types.Filter{{
		Name:   aws.String("group-name"),
		Values: []string{p.GroupName},
	}}
	if p.VPCID != nil {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("vpc-id"),
			Values: []string{*p.VPCID},
		})
	}
	out, err := d.net.DescribeSecurityGroups(ctx, &ec2sdk.DescribeSecurityGroupsInput{Filters: filters})
	if err != nil {
		return "", errors.Wrap(err, errDescribeSecurityGroup)
	}
	if len(out.SecurityGroups) == 0 {
		return "", errors.New(errSecurityGroupNotFound)
	}
	return aws.ToString(out.SecurityGroups[0].GroupId), nil
}

func (d *Deployer) applySubnetGroup(ctx context.Context, c *construct.Cluster) error {
	r := c.Resources()
	if !r.SubnetGroupOwned {
		return nil
	}

	name := r.SubnetGroup.GetName()
	p := r.SubnetGroup.Spec.ForProvider
	_, err := d.cache.CreateCacheSubnetGroup(ctx, elasticache.GenerateCreateCacheSubnetGroupInput(p, name))
	if err == nil {
		d.log.Debug("Created cache subnet group", "name", name)
		return nil
	}
	if !elasticache.IsSubnetGroupAlreadyExists(err) {
		return errors.Wrap(err, errCreateSubnetGroup)
	}

	out, err := d.cache.DescribeCacheSubnetGroups(ctx, elasticache.NewDescribeCacheSubnetGroupsInput(name))
	if err != nil {
		return errors.Wrap(err, errDescribeSubnetGroup)
	}
	if len(out.CacheSubnetGroups) == 0 {
		return errors.New(errSubnetGroupNotFound)
	}
	if elasticache.IsSubnetGroupUpToDate(p, out.CacheSubnetGroups[0]) {
		d.log.Debug("Cache subnet group is up to date", "name", name)
		return nil
	}

	if _, err := d.cache.ModifyCacheSubnetGroup(ctx, elasticache.GenerateModifyCacheSubnetGroupInput(p, name)); err != nil {
		return errors.Wrap(err, errModifySubnetGroup)
	}
	d.log.Debug("Modified cache subnet group", "name", name)
	return nil
}

func (d *Deployer) applyCluster(ctx context.Context, c *construct.Cluster) error {
	r := c.Resources()
	p := r.CacheCluster.Spec.ForProvider
	_, err := d.cache.CreateCacheCluster(ctx, elasticache.GenerateCreateCacheClusterInput(p, c.Name()))
	if err == nil {
		d.log.Debug("Created cache cluster", "id", c.Name())
		return nil
	}
	if !elasticache.IsClusterAlreadyExists(err) {
		return errors.Wrap(err, errCreateCluster)
	}

	out, err := d.cache.DescribeCacheClusters(ctx, elasticache.NewDescribeCacheClustersInput(c.Name()))
	if err != nil {
		return errors.Wrap(err, errDescribeCluster)
	}
	if len(out.CacheClusters) == 0 {
		return errors.New(errClusterNotFound)
	}
	observed := out.CacheClusters[0]
	upToDate, err := elasticache.IsClusterUpToDate(c.Name(), &p, &observed)
	if err != nil {
		return err
	}
	if upToDate {
		d.log.Debug("Cache cluster is up to date", "id", c.Name())
		return nil
	}

	if _, err := d.cache.ModifyCacheCluster(ctx, elasticache.GenerateModifyCacheClusterInput(p, c.Name())); err != nil {
		return errors.Wrap(err, errModifyCluster)
	}
	d.log.Debug("Modified cache cluster", "id", c.Name())
	return nil
}

// Observe fetches the current state of the materialized cluster, resolves the
// construct's attributes from it and late-initializes unset parameters with
// the provider's defaults.
func (d *Deployer) Observe(ctx context.Context, c *construct.Cluster) error {
	out, err := d.cache.DescribeCacheClusters(ctx, elasticache.NewDescribeCacheClustersInput(c.Name()))
	if elasticache.IsClusterNotFound(err) {
		return errors.Wrap(err, errClusterNotFound)
	}
	if err != nil {
		return errors.Wrap(err, errDescribeCluster)
	}
	if len(out.CacheClusters) == 0 {
		return errors.New(errClusterNotFound)
	}

	observed := out.CacheClusters[0]
	c.MarkResolved(elasticache.GenerateClusterObservation(observed))
	elasticache.LateInitializeCluster(&c.Resources().CacheCluster.Spec.ForProvider, observed)
	d.log.Debug("Observed cache cluster", "id", c.Name(), "status", c.Status().String())
	return nil
}
