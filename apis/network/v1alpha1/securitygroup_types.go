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

// A Tag is used to tag EC2 resources in AWS.
type Tag struct {
	// Key for the tag.
	Key string `json:"key"`

	// Value of the tag.
	// +optional
	Value *string `json:"value,omitempty"`
}

// IPRange describes an IPv4 range.
type IPRange struct {
	// The IPv4 CIDR range. To specify a single IPv4 address, use the /32
	// prefix length.
	CIDRIP string `json:"cidrIp"`

	// A description for the security group rule that references this IPv4
	// address range.
	// +optional
	Description *string `json:"description,omitempty"`
}

// UserIDGroupPair describes a security group pair. Rules created by the
// construct reference peer groups by name; identifiers are resolved when the
// described infrastructure is materialized.
type UserIDGroupPair struct {
	// A description for the security group rule that references this pair.
	// +optional
	Description *string `json:"description,omitempty"`

	// The ID of the security group.
	// +optional
	GroupID *string `json:"groupId,omitempty"`

	// The name of the security group.
	// +optional
	GroupName *string `json:"groupName,omitempty"`

	// The ID of the VPC for the referenced security group, if applicable.
	// +optional
	VPCID *string `json:"vpcId,omitempty"`
}

// IPPermission describes a set of permissions for a security group rule.
type IPPermission struct {
	// The start of the port range for the TCP and UDP protocols. A value of
	// -1 indicates all ports.
	// +optional
	FromPort *int32 `json:"fromPort,omitempty"`

	// The end of the port range for the TCP and UDP protocols.
	// +optional
	ToPort *int32 `json:"toPort,omitempty"`

	// The IP protocol name (tcp, udp, icmp) or number. Use -1 to specify all
	// protocols.
	IPProtocol string `json:"ipProtocol"`

	// The IPv4 ranges.
	// +optional
	IPRanges []IPRange `json:"ipRanges,omitempty"`

	// UserIDGroupPairs are the source security group pairs. It contains one
	// or more security groups to allow flows from.
	// +optional
	UserIDGroupPairs []UserIDGroupPair `json:"userIdGroupPairs,omitempty"`
}

// SecurityGroupParameters define the desired state of an AWS VPC Security
// Group.
type SecurityGroupParameters struct {
	// A description of the security group.
	// +immutable
	Description string `json:"description"`

	// The name of the security group.
	// +immutable
	GroupName string `json:"groupName"`

	// One or more inbound rules associated with the security group.
	// +optional
	Ingress []IPPermission `json:"ingress,omitempty"`

	// One or more outbound rules associated with the security group.
	// +optional
	Egress []IPPermission `json:"egress,omitempty"`

	// Tags represents the current EC2 tags.
	// +optional
	Tags []Tag `json:"tags,omitempty"`

	// VPCID is the ID of the VPC.
	// +optional
	// +immutable
	VPCID *string `json:"vpcId,omitempty"`
}

// A SecurityGroupSpec defines the desired state of a SecurityGroup.
type SecurityGroupSpec struct {
	xpv1.ResourceSpec `json:",inline"`
	ForProvider       SecurityGroupParameters `json:"forProvider"`
}

// SecurityGroupObservation keeps the observed state of a SecurityGroup.
type SecurityGroupObservation struct {
	// The AWS account ID of the owner of the security group.
	OwnerID string `json:"ownerId,omitempty"`

	// SecurityGroupID is the ID of the SecurityGroup.
	SecurityGroupID string `json:"securityGroupID,omitempty"`
}

// A SecurityGroupStatus represents the observed state of a SecurityGroup.
type SecurityGroupStatus struct {
	xpv1.ResourceStatus `json:",inline"`
	AtProvider          SecurityGroupObservation `json:"atProvider,omitempty"`
}

// A SecurityGroup is a declarative resource that represents an AWS VPC
// Security Group.
type SecurityGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SecurityGroupSpec   `json:"spec"`
	Status SecurityGroupStatus `json:"status,omitempty"`
}

// SecurityGroupList contains a list of SecurityGroups.
type SecurityGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SecurityGroup `json:"items"`
}
