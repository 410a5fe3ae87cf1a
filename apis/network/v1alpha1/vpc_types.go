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

// SubnetType classifies a subnet by its routing characteristics.
type SubnetType string

// Subnet types.
const (
	// SubnetTypePublic subnets route directly to an internet gateway.
	SubnetTypePublic SubnetType = "public"

	// SubnetTypePrivateWithEgress subnets route outbound traffic through a
	// NAT gateway but are not reachable from the internet.
	SubnetTypePrivateWithEgress SubnetType = "private-with-egress"

	// SubnetTypeIsolated subnets have no route to the internet at all.
	SubnetTypeIsolated SubnetType = "isolated"
)

// A Subnet describes one subnet of a VPC.
type Subnet struct {
	// SubnetID is the ID of the subnet.
	SubnetID string `json:"subnetId"`

	// Type classifies the subnet's routing.
	Type SubnetType `json:"type"`

	// The Availability Zone the subnet resides in.
	// +optional
	AvailabilityZone string `json:"availabilityZone,omitempty"`

	// The IPv4 CIDR block assigned to the subnet.
	// +optional
	CIDRBlock string `json:"cidrBlock,omitempty"`
}

// A VPC describes an existing Amazon Virtual Private Cloud and its subnets.
// It is consumed read-only; resources composed into the VPC never mutate it.
type VPC struct {
	// VPCID is the ID of the VPC.
	VPCID string `json:"vpcId"`

	// The subnets of the VPC.
	// +optional
	Subnets []Subnet `json:"subnets,omitempty"`
}

// SubnetSelection is the criteria used to pick subnets from a VPC.
type SubnetSelection struct {
	// SubnetType selects all subnets of the given type.
	SubnetType SubnetType `json:"subnetType"`
}

// SelectSubnets returns the IDs of every subnet matching the selection. The
// returned slice may be empty; callers that require a non-empty selection
// validate at plan time, not here.
func (v VPC) SelectSubnets(s SubnetSelection) []string {
	var ids []string
	for _, sn := range v.Subnets {
		if sn.Type == s.SubnetType {
			ids = append(ids, sn.SubnetID)
		}
	}
	return ids
}
