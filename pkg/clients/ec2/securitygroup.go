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

// Package ec2 turns declarative security group descriptions into inputs
// suitable for use with the AWS EC2 API.
package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"

	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
	clients "github.com/cloudconstructs/awscache/pkg/clients"
)

const (
	// InvalidGroupNotFound is the code that is returned by ec2 when the given
	// security group ID is not valid.
	InvalidGroupNotFound = "InvalidGroup.NotFound"

	// InvalidPermissionDuplicate is returned when you try to authorize a rule
	// that already exists.
	InvalidPermissionDuplicate = "InvalidPermission.Duplicate"

	// InvalidGroupDuplicate is returned when you try to create a security
	// group whose name is already taken in the VPC.
	InvalidGroupDuplicate = "InvalidGroup.Duplicate"
)

// A Client handles CRUD operations for EC2 security group resources.
type Client interface {
	CreateSecurityGroup(context.Context, *ec2.CreateSecurityGroupInput, ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	DeleteSecurityGroup(context.Context, *ec2.DeleteSecurityGroupInput, ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
	DescribeSecurityGroups(context.Context, *ec2.DescribeSecurityGroupsInput, ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	AuthorizeSecurityGroupIngress(context.Context, *ec2.AuthorizeSecurityGroupIngressInput, ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	AuthorizeSecurityGroupEgress(context.Context, *ec2.AuthorizeSecurityGroupEgressInput, ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupEgressOutput, error)
}

// NewClient returns a new EC2 client.
func NewClient(cfg aws.Config) Client {
	return ec2.NewFromConfig(cfg)
}

// IsSecurityGroupNotFoundErr returns true if the error is because the group
// doesn't exist.
func IsSecurityGroupNotFoundErr(err error) bool {
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == InvalidGroupNotFound
}

// IsRuleAlreadyExistsErr returns true if the error is because the rule
// already exists.
func IsRuleAlreadyExistsErr(err error) bool {
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == InvalidPermissionDuplicate
}

// IsGroupAlreadyExistsErr returns true if the error is because a group with
// the same name already exists.
func IsGroupAlreadyExistsErr(err error) bool {
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == InvalidGroupDuplicate
}

// GenerateCreateSecurityGroupInput returns security group creation input
// suitable for use with the AWS API.
func GenerateCreateSecurityGroupInput(p networkv1alpha1.SecurityGroupParameters) *ec2.CreateSecurityGroupInput {
	c := &ec2.CreateSecurityGroupInput{
		Description: aws.String(p.Description),
		GroupName:   aws.String(p.GroupName),
		VpcId:       p.VPCID,
	}

	if len(p.Tags) != 0 {
		tags := make([]ec2types.Tag, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = ec2types.Tag{Key: clients.String(t.Key), Value: t.Value}
		}
		c.TagSpecifications = []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeSecurityGroup,
			Tags:         tags,
		}}
	}

	return c
}

// GenerateEC2Permissions converts object permissions to ec2 format.
func GenerateEC2Permissions(objectPerms []networkv1alpha1.IPPermission) []ec2types.IpPermission {
	if len(objectPerms) == 0 {
		return nil
	}
	permissions := make([]ec2types.IpPermission, len(objectPerms))
	for i, p := range objectPerms {
		ipPerm := ec2types.IpPermission{
			FromPort:   p.FromPort,
			IpProtocol: aws.String(p.IPProtocol),
			ToPort:     p.ToPort,
		}
		for _, c := range p.IPRanges {
			ipPerm.IpRanges = append(ipPerm.IpRanges, ec2types.IpRange{
				CidrIp:      aws.String(c.CIDRIP),
				Description: c.Description,
			})
		}
		for _, c := range p.UserIDGroupPairs {
			ipPerm.UserIdGroupPairs = append(ipPerm.UserIdGroupPairs, ec2types.UserIdGroupPair{
				Description: c.Description,
				GroupId:     c.GroupID,
				GroupName:   c.GroupName,
				VpcId:       c.VPCID,
			})
		}
		permissions[i] = ipPerm
	}
	return permissions
}

// GenerateSecurityGroupObservation produces a SecurityGroupObservation from
// an ec2 SecurityGroup.
func GenerateSecurityGroupObservation(sg ec2types.SecurityGroup) networkv1alpha1.SecurityGroupObservation {
	return networkv1alpha1.SecurityGroupObservation{
		OwnerID:         aws.ToString(sg.OwnerId),
		SecurityGroupID: aws.ToString(sg.GroupId),
	}
}
