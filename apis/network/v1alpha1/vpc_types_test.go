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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectSubnets(t *testing.T) {
	vpc := VPC{
		VPCID: "vpc-0123456789abcdef0",
		Subnets: []Subnet{
			{SubnetID: "subnet-pub1", Type: SubnetTypePublic, AvailabilityZone: "us-east-1a"},
			{SubnetID: "subnet-priv1", Type: SubnetTypePrivateWithEgress, AvailabilityZone: "us-east-1a"},
			{SubnetID: "subnet-priv2", Type: SubnetTypePrivateWithEgress, AvailabilityZone: "us-east-1b"},
			{SubnetID: "subnet-iso1", Type: SubnetTypeIsolated, AvailabilityZone: "us-east-1a"},
		},
	}

	cases := map[string]struct {
		vpc       VPC
		selection SubnetSelection
		want      []string
	}{
		"PrivateWithEgress": {
			vpc:       vpc,
			selection: SubnetSelection{SubnetType: SubnetTypePrivateWithEgress},
			want:      []string{"subnet-priv1", "subnet-priv2"},
		},
		"Isolated": {
			vpc:       vpc,
			selection: SubnetSelection{SubnetType: SubnetTypeIsolated},
			want:      []string{"subnet-iso1"},
		},
		"NoMatchIsEmpty": {
			vpc:       VPC{VPCID: "vpc-0"},
			selection: SubnetSelection{SubnetType: SubnetTypePublic},
			want:      nil,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.vpc.SelectSubnets(tc.selection)); diff != "" {
				t.Errorf("SelectSubnets(...): -want, +got:\n%s", diff)
			}
		})
	}
}
