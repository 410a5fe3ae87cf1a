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

// Package fake provides a mock ElastiCache client for testing.
package fake

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/elasticache"

	clientset "github.com/cloudconstructs/awscache/pkg/clients/elasticache"
)

var _ clientset.Client = &MockClient{}

// MockClient is a fake implementation of the ElastiCache client.
type MockClient struct {
	MockDescribeCacheClusters func(ctx context.Context, input *elasticache.DescribeCacheClustersInput, opts []func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error)
	MockCreateCacheCluster    func(ctx context.Context, input *elasticache.CreateCacheClusterInput, opts []func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error)
	MockModifyCacheCluster    func(ctx context.Context, input *elasticache.ModifyCacheClusterInput, opts []func(*elasticache.Options)) (*elasticache.ModifyCacheClusterOutput, error)
	MockDeleteCacheCluster    func(ctx context.Context, input *elasticache.DeleteCacheClusterInput, opts []func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error)

	MockDescribeCacheSubnetGroups func(ctx context.Context, input *elasticache.DescribeCacheSubnetGroupsInput, opts []func(*elasticache.Options)) (*elasticache.DescribeCacheSubnetGroupsOutput, error)
	MockCreateCacheSubnetGroup    func(ctx context.Context, input *elasticache.CreateCacheSubnetGroupInput, opts []func(*elasticache.Options)) (*elasticache.CreateCacheSubnetGroupOutput, error)
	MockModifyCacheSubnetGroup    func(ctx context.Context, input *elasticache.ModifyCacheSubnetGroupInput, opts []func(*elasticache.Options)) (*elasticache.ModifyCacheSubnetGroupOutput, error)
	MockDeleteCacheSubnetGroup    func(ctx context.Context, input *elasticache.DeleteCacheSubnetGroupInput, opts []func(*elasticache.Options)) (*elasticache.DeleteCacheSubnetGroupOutput, error)
}

// DescribeCacheClusters calls the underlying MockDescribeCacheClusters method.
func (c *MockClient) DescribeCacheClusters(ctx context.Context, input *elasticache.DescribeCacheClustersInput, opts ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error) {
	return c.MockDescribeCacheClusters(ctx, input, opts)
}

// CreateCacheCluster calls the underlying MockCreateCacheCluster method.
func (c *MockClient) CreateCacheCluster(ctx context.Context, input *elasticache.CreateCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.CreateCacheClusterOutput, error) {
	return c.MockCreateCacheCluster(ctx, input, opts)
}

// ModifyCacheCluster calls the underlying MockModifyCacheCluster method.
func (c *MockClient) ModifyCacheCluster(ctx context.Context, input *elasticache.ModifyCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.ModifyCacheClusterOutput, error) {
	return c.MockModifyCacheCluster(ctx, input, opts)
}

// DeleteCacheCluster calls the underlying MockDeleteCacheCluster method.
func (c *MockClient) DeleteCacheCluster(ctx context.Context, input *elasticache.DeleteCacheClusterInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteCacheClusterOutput, error) {
	return c.MockDeleteCacheCluster(ctx, input, opts)
}

// DescribeCacheSubnetGroups calls the underlying MockDescribeCacheSubnetGroups
// method.
func (c *MockClient) DescribeCacheSubnetGroups(ctx context.Context, input *elasticache.DescribeCacheSubnetGroupsInput, opts ...func(*elasticache.Options)) (*elasticache.DescribeCacheSubnetGroupsOutput, error) {
	return c.MockDescribeCacheSubnetGroups(ctx, input, opts)
}

// CreateCacheSubnetGroup calls the underlying MockCreateCacheSubnetGroup
// method.
func (c *MockClient) CreateCacheSubnetGroup(ctx context.Context, input *elasticache.CreateCacheSubnetGroupInput, opts ...func(*elasticache.Options)) (*elasticache.CreateCacheSubnetGroupOutput, error) {
	return c.MockCreateCacheSubnetGroup(ctx, input, opts)
}

// ModifyCacheSubnetGroup calls the underlying MockModifyCacheSubnetGroup
// method.
func (c *MockClient) ModifyCacheSubnetGroup(ctx context.Context, input *elasticache.ModifyCacheSubnetGroupInput, opts ...func(*elasticache.Options)) (*elasticache.ModifyCacheSubnetGroupOutput, error) {
	return c.MockModifyCacheSubnetGroup(ctx, input, opts)
}

// DeleteCacheSubnetGroup calls the underlying MockDeleteCacheSubnetGroup
// method.
func (c *MockClient) DeleteCacheSubnetGroup(ctx context.Context, input *elasticache.DeleteCacheSubnetGroupInput, opts ...func(*elasticache.Options)) (*elasticache.DeleteCacheSubnetGroupOutput, error) {
	return c.MockDeleteCacheSubnetGroup(ctx, input, opts)
}
