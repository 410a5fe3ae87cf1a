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

// Package fake provides a mock EC2 client for testing.
package fake

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	clientset "github.com/cloudconstructs/awscache/pkg/clients/ec2"
)

var _ clientset.Client = &MockClient{}

// MockClient is a fake implementation of the EC2 client.
type MockClient struct {
	MockCreateSecurityGroup           func(ctx context.Context, input *ec2.CreateSecurityGroupInput, opts []func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	MockDeleteSecurityGroup           func(ctx context.Context, input *ec2.DeleteSecurityGroupInput, opts []func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
	MockDescribeSecurityGroups        func(ctx context.Context, input *ec2.DescribeSecurityGroupsInput, opts []func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	MockAuthorizeSecurityGroupIngress func(ctx context.Context, input *ec2.AuthorizeSecurityGroupIngressInput, opts []func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	MockAuthorizeSecurityGroupEgress  func(ctx context.Context, input *ec2.AuthorizeSecurityGroupEgressInput, opts []func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupEgressOutput, error)
}

// CreateSecurityGroup calls the underlying MockCreateSecurityGroup method.
func (c *MockClient) CreateSecurityGroup(ctx context.Context, input *ec2.CreateSecurityGroupInput, opts ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	return c.MockCreateSecurityGroup(ctx, input, opts)
}

// DeleteSecurityGroup calls the underlying MockDeleteSecurityGroup method.
func (c *MockClient) DeleteSecurityGroup(ctx context.Context, input *ec2.DeleteSecurityGroupInput, opts ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error) {
	return c.MockDeleteSecurityGroup(ctx, input, opts)
}

// DescribeSecurityGroups calls the underlying MockDescribeSecurityGroups
// method.
func (c *MockClient) DescribeSecurityGroups(ctx context.Context, input *ec2.DescribeSecurityGroupsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	return c.MockDescribeSecurityGroups(ctx, input, opts)
}

// AuthorizeSecurityGroupIngress calls the underlying
// MockAuthorizeSecurityGroupIngress method.
func (c *MockClient) AuthorizeSecurityGroupIngress(ctx context.Context, input *ec2.AuthorizeSecurityGroupIngressInput, opts ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	return c.MockAuthorizeSecurityGroupIngress(ctx, input, opts)
}

// AuthorizeSecurityGroupEgress calls the underlying
// MockAuthorizeSecurityGroupEgress method.
func (c *MockClient) AuthorizeSecurityGroupEgress(ctx context.Context, input *ec2.AuthorizeSecurityGroupEgressInput, opts ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupEgressOutput, error) {
	return c.MockAuthorizeSecurityGroupEgress(ctx, input, opts)
}
