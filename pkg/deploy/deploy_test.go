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

package deploy

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2sdk "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elasticachesdk "github.com/aws/aws-sdk-go-v2/service/elasticache"
	elasticachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/aws/smithy-go"
	"github.com/crossplane/crossplane-runtime/pkg/test"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	cachev1alpha1 "github.com/cloudconstructs/awscache/apis/cache/v1alpha1"
	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
	ec2fake "github.com/cloudconstructs/awscache/pkg/clients/ec2/fake"
	elasticachefake "github.com/cloudconstructs/awscache/pkg/clients/elasticache/fake"
	"github.com/cloudconstructs/awscache/pkg/construct"
)

const (
	clusterName = "sessions"
	groupID     = "sg-0123456789abcdef0"
	address     = "sessions.abc123.cache.amazonaws.com"
)

var errBoom = errors.New("boom")

type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func testVPC() networkv1alpha1.VPC {
	return networkv1alpha1.VPC{
		VPCID: "vpc-0123456789abcdef0",
		Subnets: []networkv1alpha1.Subnet{
			{SubnetID: "subnet-priv1", Type: networkv1alpha1.SubnetTypePrivateWithEgress, AvailabilityZone: "us-east-1a"},
			{SubnetID: "subnet-priv2", Type: networkv1alpha1.SubnetTypePrivateWithEgress, AvailabilityZone: "us-east-1b"},
		},
	}
}

func testCluster(m ...func(*construct.ClusterConfig)) *construct.Cluster {
	cfg := construct.ClusterConfig{
		VPC:           testVPC(),
		Engine:        construct.EngineRedis,
		CacheNodeType: "cache.t3.micro",
		NumCacheNodes: 1,
	}
	for _, f := range m {
		f(&cfg)
	}
	return construct.New(clusterName, cfg)
}

// happyNet returns an EC2 mock where every call succeeds.
func happyNet() *ec2fake.MockClient {
	return &ec2fake.MockClient{
		MockCreateSecurityGroup: func(_ context.Context, _ *ec2sdk.CreateSecurityGroupInput, _ []func(*ec2sdk.Options)) (*ec2sdk.CreateSecurityGroupOutput, error) {
			return &ec2sdk.CreateSecurityGroupOutput{GroupId: aws.String(groupID)}, nil
		},
		MockAuthorizeSecurityGroupEgress: func(_ context.Context, _ *ec2sdk.AuthorizeSecurityGroupEgressInput, _ []func(*ec2sdk.Options)) (*ec2sdk.AuthorizeSecurityGroupEgressOutput, error) {
			return &ec2sdk.AuthorizeSecurityGroupEgressOutput{}, nil
		},
		MockAuthorizeSecurityGroupIngress: func(_ context.Context, _ *ec2sdk.AuthorizeSecurityGroupIngressInput, _ []func(*ec2sdk.Options)) (*ec2sdk.AuthorizeSecurityGroupIngressOutput, error) {
			return &ec2sdk.AuthorizeSecurityGroupIngressOutput{}, nil
		},
	}
}

// happyCache returns an ElastiCache mock where every call succeeds.
func happyCache() *elasticachefake.MockClient {
	return &elasticachefake.MockClient{
		MockCreateCacheSubnetGroup: func(_ context.Context, _ *elasticachesdk.CreateCacheSubnetGroupInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheSubnetGroupOutput, error) {
			return &elasticachesdk.CreateCacheSubnetGroupOutput{}, nil
		},
		MockCreateCacheCluster: func(_ context.Context, _ *elasticachesdk.CreateCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheClusterOutput, error) {
			return &elasticachesdk.CreateCacheClusterOutput{}, nil
		},
	}
}

// observedCluster returns the materialized state of testCluster after its
// security group reference has been resolved to groupID.
func observedCluster(m ...func(*elasticachetypes.CacheCluster)) elasticachetypes.CacheCluster {
	c := elasticachetypes.CacheCluster{
		CacheClusterId: aws.String(clusterName),
		CacheNodeType:  aws.String("cache.t3.micro"),
		NumCacheNodes:  aws.Int32(1),
		SecurityGroups: []elasticachetypes.SecurityGroupMembership{{
			SecurityGroupId: aws.String(groupID),
			Status:          aws.String("active"),
		}},
	}
	for _, f := range m {
		f(&c)
	}
	return c
}

// observedSubnetGroup returns the materialized state of testCluster's derived
// subnet group.
func observedSubnetGroup(m ...func(*elasticachetypes.CacheSubnetGroup)) elasticachetypes.CacheSubnetGroup {
	sg := elasticachetypes.CacheSubnetGroup{
		CacheSubnetGroupName:        aws.String("sessions-subnets"),
		CacheSubnetGroupDescription: aws.String("Subnet group for the sessions cache cluster"),
		Subnets: []elasticachetypes.Subnet{
			{SubnetIdentifier: aws.String("subnet-priv1")},
			{SubnetIdentifier: aws.String("subnet-priv2")},
		},
	}
	for _, f := range m {
		f(&sg)
	}
	return sg
}

func TestPlan(t *testing.T) {
	t.Run("OwnedResources", func(t *testing.T) {
		steps, err := Plan(testCluster())
		if err != nil {
			t.Fatalf("Plan(...): %v", err)
		}
		want := []Step{
			{Kind: "SecurityGroup", Name: "sessions-sg", Action: "create"},
			{Kind: "CacheSubnetGroup", Name: "sessions-subnets", Action: "create"},
			{Kind: "CacheCluster", Name: "sessions", Action: "create"},
		}
		if diff := cmp.Diff(want, steps); diff != "" {
			t.Errorf("Plan(...): -want, +got:\n%s", diff)
		}
	})

	t.Run("BorrowedResources", func(t *testing.T) {
		steps, err := Plan(testCluster(func(c *construct.ClusterConfig) {
			c.SubnetGroup = &cachev1alpha1.CacheSubnetGroup{
				ObjectMeta: metav1.ObjectMeta{Name: "shared-subnets"},
			}
			c.SecurityGroups = []*networkv1alpha1.SecurityGroup{{
				ObjectMeta: metav1.ObjectMeta{Name: "shared-sg"},
				Spec: networkv1alpha1.SecurityGroupSpec{
					ForProvider: networkv1alpha1.SecurityGroupParameters{GroupName: "shared-sg"},
				},
			}}
		}))
		if err != nil {
			t.Fatalf("Plan(...): %v", err)
		}
		want := []Step{
			{Kind: "SecurityGroup", Name: "shared-sg", Action: "use"},
			{Kind: "CacheSubnetGroup", Name: "shared-subnets", Action: "use"},
			{Kind: "CacheCluster", Name: "sessions", Action: "create"},
		}
		if diff := cmp.Diff(want, steps); diff != "" {
			t.Errorf("Plan(...): -want, +got:\n%s", diff)
		}
	})

	t.Run("EmptySubnetGroupRejected", func(t *testing.T) {
		c := testCluster(func(c *construct.ClusterConfig) {
			c.VPC = networkv1alpha1.VPC{
				VPCID: "vpc-0123456789abcdef0",
				Subnets: []networkv1alpha1.Subnet{
					{SubnetID: "subnet-pub1", Type: networkv1alpha1.SubnetTypePublic},
				},
			}
		})
		if _, err := Plan(c); err == nil {
			t.Errorf("Plan(...): want error, got nil")
		}
	})
}

func TestApply(t *testing.T) {
	type args struct {
		cache *elasticachefake.MockClient
		net   *ec2fake.MockClient
	}
	cases := map[string]struct {
		args args
		want error
	}{
		"Successful": {
			args: args{cache: happyCache(), net: happyNet()},
		},
		"SecurityGroupCreateFails": {
			args: args{
				cache: happyCache(),
				net: func() *ec2fake.MockClient {
					m := happyNet()
					m.MockCreateSecurityGroup = func(_ context.Context, _ *ec2sdk.CreateSecurityGroupInput, _ []func(*ec2sdk.Options)) (*ec2sdk.CreateSecurityGroupOutput, error) {
						return nil, errBoom
					}
					return m
				}(),
			},
			want: errors.Wrap(errBoom, errCreateSecurityGroup),
		},
		"DuplicateRulesTolerated": {
			args: args{
				cache: happyCache(),
				net: func() *ec2fake.MockClient {
					m := happyNet()
					m.MockAuthorizeSecurityGroupEgress = func(_ context.Context, _ *ec2sdk.AuthorizeSecurityGroupEgressInput, _ []func(*ec2sdk.Options)) (*ec2sdk.AuthorizeSecurityGroupEgressOutput, error) {
						return nil, &apiError{code: "InvalidPermission.Duplicate"}
					}
					return m
				}(),
			},
		},
		"ExistingSubnetGroupUpToDate": {
			args: args{
				net: happyNet(),
				cache: func() *elasticachefake.MockClient {
					m := happyCache()
					m.MockCreateCacheSubnetGroup = func(_ context.Context, _ *elasticachesdk.CreateCacheSubnetGroupInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheSubnetGroupOutput, error) {
						return nil, &elasticachetypes.CacheSubnetGroupAlreadyExistsFault{}
					}
					m.MockDescribeCacheSubnetGroups = func(_ context.Context, _ *elasticachesdk.DescribeCacheSubnetGroupsInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheSubnetGroupsOutput, error) {
						return &elasticachesdk.DescribeCacheSubnetGroupsOutput{
							CacheSubnetGroups: []elasticachetypes.CacheSubnetGroup{observedSubnetGroup()},
						}, nil
					}
					return m
				}(),
			},
		},
		"ExistingClusterUpToDate": {
			args: args{
				net: happyNet(),
				cache: func() *elasticachefake.MockClient {
					m := happyCache()
					m.MockCreateCacheCluster = func(_ context.Context, _ *elasticachesdk.CreateCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheClusterOutput, error) {
						return nil, &elasticachetypes.CacheClusterAlreadyExistsFault{}
					}
					m.MockDescribeCacheClusters = func(_ context.Context, _ *elasticachesdk.DescribeCacheClustersInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheClustersOutput, error) {
						return &elasticachesdk.DescribeCacheClustersOutput{
							CacheClusters: []elasticachetypes.CacheCluster{observedCluster()},
						}, nil
					}
					return m
				}(),
			},
		},
		"ClusterCreateFails": {
			args: args{
				net: happyNet(),
				cache: func() *elasticachefake.MockClient {
					m := happyCache()
					m.MockCreateCacheCluster = func(_ context.Context, _ *elasticachesdk.CreateCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheClusterOutput, error) {
						return nil, errBoom
					}
					return m
				}(),
			},
			want: errors.Wrap(errBoom, errCreateCluster),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := testCluster()
			d := NewDeployer(tc.args.cache, tc.args.net)

			err := d.Apply(context.Background(), c)
			if diff := cmp.Diff(tc.want, err, test.EquateErrors()); diff != "" {
				t.Errorf("Apply(...): -want error, +got error:\n%s", diff)
			}
		})
	}
}

func TestApplyResolvesSecurityGroupID(t *testing.T) {
	var gotCreateInput *elasticachesdk.CreateCacheClusterInput

	cache := happyCache()
	cache.MockCreateCacheCluster = func(_ context.Context, input *elasticachesdk.CreateCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheClusterOutput, error) {
		gotCreateInput = input
		return &elasticachesdk.CreateCacheClusterOutput{}, nil
	}

	c := testCluster()
	if err := NewDeployer(cache, happyNet()).Apply(context.Background(), c); err != nil {
		t.Fatalf("Apply(...): %v", err)
	}

	if diff := cmp.Diff([]string{groupID}, gotCreateInput.SecurityGroupIds); diff != "" {
		t.Errorf("CreateCacheClusterInput.SecurityGroupIds: -want, +got:\n%s", diff)
	}
	if got := c.Resources().SecurityGroup.Status.AtProvider.SecurityGroupID; got != groupID {
		t.Errorf("SecurityGroup observation: want %q, got %q", groupID, got)
	}
}

func TestApplyModifiesClusterOnDrift(t *testing.T) {
	var gotModifyInput *elasticachesdk.ModifyCacheClusterInput

	cache := happyCache()
	cache.MockCreateCacheCluster = func(_ context.Context, _ *elasticachesdk.CreateCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheClusterOutput, error) {
		return nil, &elasticachetypes.CacheClusterAlreadyExistsFault{}
	}
	cache.MockDescribeCacheClusters = func(_ context.Context, _ *elasticachesdk.DescribeCacheClustersInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheClustersOutput, error) {
		return &elasticachesdk.DescribeCacheClustersOutput{
			CacheClusters: []elasticachetypes.CacheCluster{observedCluster(func(c *elasticachetypes.CacheCluster) {
				c.CacheNodeType = aws.String("cache.t2.micro")
			})},
		}, nil
	}
	cache.MockModifyCacheCluster = func(_ context.Context, input *elasticachesdk.ModifyCacheClusterInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.ModifyCacheClusterOutput, error) {
		gotModifyInput = input
		return &elasticachesdk.ModifyCacheClusterOutput{}, nil
	}

	if err := NewDeployer(cache, happyNet()).Apply(context.Background(), testCluster()); err != nil {
		t.Fatalf("Apply(...): %v", err)
	}

	if gotModifyInput == nil {
		t.Fatalf("ModifyCacheCluster was not called for a drifted cluster")
	}
	if diff := cmp.Diff(aws.String("cache.t3.micro"), gotModifyInput.CacheNodeType); diff != "" {
		t.Errorf("ModifyCacheClusterInput.CacheNodeType: -want, +got:\n%s", diff)
	}
	if diff := cmp.Diff([]string{groupID}, gotModifyInput.SecurityGroupIds); diff != "" {
		t.Errorf("ModifyCacheClusterInput.SecurityGroupIds: -want, +got:\n%s", diff)
	}
}

func TestApplyModifiesSubnetGroupOnDrift(t *testing.T) {
	var gotModifyInput *elasticachesdk.ModifyCacheSubnetGroupInput

	cache := happyCache()
	cache.MockCreateCacheSubnetGroup = func(_ context.Context, _ *elasticachesdk.CreateCacheSubnetGroupInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.CreateCacheSubnetGroupOutput, error) {
		return nil, &elasticachetypes.CacheSubnetGroupAlreadyExistsFault{}
	}
	cache.MockDescribeCacheSubnetGroups = func(_ context.Context, _ *elasticachesdk.DescribeCacheSubnetGroupsInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheSubnetGroupsOutput, error) {
		return &elasticachesdk.DescribeCacheSubnetGroupsOutput{
			CacheSubnetGroups: []elasticachetypes.CacheSubnetGroup{observedSubnetGroup(func(sg *elasticachetypes.CacheSubnetGroup) {
				sg.Subnets = sg.Subnets[:1]
			})},
		}, nil
	}
	cache.MockModifyCacheSubnetGroup = func(_ context.Context, input *elasticachesdk.ModifyCacheSubnetGroupInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.ModifyCacheSubnetGroupOutput, error) {
		gotModifyInput = input
		return &elasticachesdk.ModifyCacheSubnetGroupOutput{}, nil
	}

	if err := NewDeployer(cache, happyNet()).Apply(context.Background(), testCluster()); err != nil {
		t.Fatalf("Apply(...): %v", err)
	}

	if gotModifyInput == nil {
		t.Fatalf("ModifyCacheSubnetGroup was not called for a drifted subnet group")
	}
	if diff := cmp.Diff([]string{"subnet-priv1", "subnet-priv2"}, gotModifyInput.SubnetIds); diff != "" {
		t.Errorf("ModifyCacheSubnetGroupInput.SubnetIds: -want, +got:\n%s", diff)
	}
}

func TestApplyResolvesDuplicateGroupWithinVPC(t *testing.T) {
	// Two VPCs carry a group with the same name; the lookup must be scoped
	// to the construct's VPC or the cluster attaches to the wrong group.
	otherVPCGroupID := "sg-0fffffffffffffff0"

	net := happyNet()
	net.MockCreateSecurityGroup = func(_ context.Context, _ *ec2sdk.CreateSecurityGroupInput, _ []func(*ec2sdk.Options)) (*ec2sdk.CreateSecurityGroupOutput, error) {
		return nil, &apiError{code: "InvalidGroup.Duplicate"}
	}
	net.MockDescribeSecurityGroups = func(_ context.Context, input *ec2sdk.DescribeSecurityGroupsInput, _ []func(*ec2sdk.Options)) (*ec2sdk.DescribeSecurityGroupsOutput, error) {
		scoped := false
		for _, f := range input.Filters {
			if aws.ToString(f.Name) == "vpc-id" {
				scoped = true
				if diff := cmp.Diff([]string{"vpc-0123456789abcdef0"}, f.Values); diff != "" {
					t.Errorf("vpc-id filter values: -want, +got:\n%s", diff)
				}
			}
		}
		if !scoped {
			return &ec2sdk.DescribeSecurityGroupsOutput{
				SecurityGroups: []ec2types.SecurityGroup{{GroupId: aws.String(otherVPCGroupID)}},
			}, nil
		}
		return &ec2sdk.DescribeSecurityGroupsOutput{
			SecurityGroups: []ec2types.SecurityGroup{{GroupId: aws.String(groupID)}},
		}, nil
	}

	c := testCluster()
	if err := NewDeployer(happyCache(), net).Apply(context.Background(), c); err != nil {
		t.Fatalf("Apply(...): %v", err)
	}

	if got := c.Resources().SecurityGroup.Status.AtProvider.SecurityGroupID; got != groupID {
		t.Errorf("resolved security group: want %q, got %q", groupID, got)
	}
}

func TestObserve(t *testing.T) {
	t.Run("ResolvesAttributes", func(t *testing.T) {
		cache := happyCache()
		cache.MockDescribeCacheClusters = func(_ context.Context, _ *elasticachesdk.DescribeCacheClustersInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheClustersOutput, error) {
			return &elasticachesdk.DescribeCacheClustersOutput{
				CacheClusters: []elasticachetypes.CacheCluster{{
					CacheClusterStatus: aws.String(cachev1alpha1.StatusAvailable),
					SnapshotWindow:     aws.String("03:00-05:00"),
					CacheNodes: []elasticachetypes.CacheNode{{
						Endpoint: &elasticachetypes.Endpoint{
							Address: aws.String(address),
							Port:    aws.Int32(6379),
						},
					}},
				}},
			}, nil
		}

		c := testCluster()
		if err := NewDeployer(cache, happyNet()).Observe(context.Background(), c); err != nil {
			t.Fatalf("Observe(...): %v", err)
		}

		if got, ok := c.Endpoint().Value(); !ok || got != address {
			t.Errorf("Endpoint().Value(): want (%q, true), got (%q, %t)", address, got, ok)
		}
		if got, ok := c.Status().Value(); !ok || got != cachev1alpha1.StatusAvailable {
			t.Errorf("Status().Value(): want (available, true), got (%q, %t)", got, ok)
		}
		// Provider defaults flow back into unset parameters.
		if diff := cmp.Diff(aws.String("03:00-05:00"), c.Resources().CacheCluster.Spec.ForProvider.SnapshotWindow); diff != "" {
			t.Errorf("late-initialized SnapshotWindow: -want, +got:\n%s", diff)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		cache := happyCache()
		cache.MockDescribeCacheClusters = func(_ context.Context, _ *elasticachesdk.DescribeCacheClustersInput, _ []func(*elasticachesdk.Options)) (*elasticachesdk.DescribeCacheClustersOutput, error) {
			return nil, &elasticachetypes.CacheClusterNotFoundFault{}
		}

		c := testCluster()
		if err := NewDeployer(cache, happyNet()).Observe(context.Background(), c); err == nil {
			t.Errorf("Observe(...): want error, got nil")
		}
		if c.Endpoint().Resolved() {
			t.Errorf("Endpoint().Resolved(): want false after failed observation, got true")
		}
	})
}
