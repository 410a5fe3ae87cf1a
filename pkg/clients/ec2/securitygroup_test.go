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

package ec2

import (
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
)

const (
	groupName   = "sessions-sg"
	description = "Security group for the sessions cache cluster"
	vpcID       = "vpc-0123456789abcdef0"
	groupID     = "sg-0123456789abcdef0"
	ownerID     = "111122223333"
)

var port int32 = 6379

func TestGenerateCreateSecurityGroupInput(t *testing.T) {
	cases := map[string]struct {
		params networkv1alpha1.SecurityGroupParameters
		want   *ec2.CreateSecurityGroupInput
	}{
		"NoTags": {
			params: networkv1alpha1.SecurityGroupParameters{
				GroupName:   groupName,
				Description: description,
				VPCID:       aws.String(vpcID),
			},
			want: &ec2.CreateSecurityGroupInput{
				GroupName:   aws.String(groupName),
				Description: aws.String(description),
				VpcId:       aws.String(vpcID),
			},
		},
		"WithTags": {
			params: networkv1alpha1.SecurityGroupParameters{
				GroupName:   groupName,
				Description: description,
				VPCID:       aws.String(vpcID),
				Tags: []networkv1alpha1.Tag{
					{Key: "env", Value: aws.String("prod")},
				},
			},
			want: &ec2.CreateSecurityGroupInput{
				GroupName:   aws.String(groupName),
				Description: aws.String(description),
				VpcId:       aws.String(vpcID),
				TagSpecifications: []ec2types.TagSpecification{{
					ResourceType: ec2types.ResourceTypeSecurityGroup,
					Tags: []ec2types.Tag{
						{Key: aws.String("env"), Value: aws.String("prod")},
					},
				}},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := GenerateCreateSecurityGroupInput(tc.params)
			if diff := cmp.Diff(tc.want, got, cmp.Exporter(func(reflect.Type) bool { return true })); diff != "" {
				t.Errorf("GenerateCreateSecurityGroupInput(...): -want, +got:\n%s", diff)
			}
		})
	}
}

func TestGenerateEC2Permissions(t *testing.T) {
	cases := map[string]struct {
		perms []networkv1alpha1.IPPermission
		want  []ec2types.IpPermission
	}{
		"Empty": {
			perms: nil,
			want:  nil,
		},
		"CIDRRange": {
			perms: []networkv1alpha1.IPPermission{{
				IPProtocol: "-1",
				IPRanges: []networkv1alpha1.IPRange{{
					CIDRIP:      "0.0.0.0/0",
					Description: aws.String("Allow all outbound traffic"),
				}},
			}},
			want: []ec2types.IpPermission{{
				IpProtocol: aws.String("-1"),
				IpRanges: []ec2types.IpRange{{
					CidrIp:      aws.String("0.0.0.0/0"),
					Description: aws.String("Allow all outbound traffic"),
				}},
			}},
		},
		"GroupPair": {
			perms: []networkv1alpha1.IPPermission{{
				FromPort:   aws.Int32(port),
				ToPort:     aws.Int32(port),
				IPProtocol: "tcp",
				UserIDGroupPairs: []networkv1alpha1.UserIDGroupPair{{
					GroupName:   aws.String("app-sg"),
					Description: aws.String("Access to the sessions cache cluster"),
				}},
			}},
			want: []ec2types.IpPermission{{
				FromPort:   aws.Int32(port),
				ToPort:     aws.Int32(port),
				IpProtocol: aws.String("tcp"),
				UserIdGroupPairs: []ec2types.UserIdGroupPair{{
					GroupName:   aws.String("app-sg"),
					Description: aws.String("Access to the sessions cache cluster"),
				}},
			}},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := GenerateEC2Permissions(tc.perms)
			if diff := cmp.Diff(tc.want, got, cmp.Exporter(func(reflect.Type) bool { return true })); diff != "" {
				t.Errorf("GenerateEC2Permissions(...): -want, +got:\n%s", diff)
			}
		})
	}
}

func TestGenerateSecurityGroupObservation(t *testing.T) {
	got := GenerateSecurityGroupObservation(ec2types.SecurityGroup{
		GroupId: aws.String(groupID),
		OwnerId: aws.String(ownerID),
	})
	want := networkv1alpha1.SecurityGroupObservation{
		SecurityGroupID: groupID,
		OwnerID:         ownerID,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateSecurityGroupObservation(...): -want, +got:\n%s", diff)
	}
}

type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestErrorHelpers(t *testing.T) {
	cases := map[string]struct {
		fn   func(error) bool
		err  error
		want bool
	}{
		"GroupNotFound": {
			fn:   IsSecurityGroupNotFoundErr,
			err:  &apiError{code: InvalidGroupNotFound},
			want: true,
		},
		"GroupNotFoundWrapped": {
			fn:   IsSecurityGroupNotFoundErr,
			err:  errors.Wrap(&apiError{code: InvalidGroupNotFound}, "describe failed"),
			want: true,
		},
		"GroupNotFoundOther": {
			fn:   IsSecurityGroupNotFoundErr,
			err:  errors.New("boom"),
			want: false,
		},
		"RuleAlreadyExists": {
			fn:   IsRuleAlreadyExistsErr,
			err:  &apiError{code: InvalidPermissionDuplicate},
			want: true,
		},
		"RuleAlreadyExistsOtherCode": {
			fn:   IsRuleAlreadyExistsErr,
			err:  &apiError{code: InvalidGroupNotFound},
			want: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.fn(tc.err); got != tc.want {
				t.Errorf("error helper: want %t, got %t", tc.want, got)
			}
		})
	}
}
