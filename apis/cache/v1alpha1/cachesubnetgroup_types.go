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

// CacheSubnetGroupParameters define the desired state of an AWS ElastiCache
// Subnet Group.
type CacheSubnetGroupParameters struct {
	// A description for the cache subnet group.
	Description string `json:"description"`

	// A list of subnet IDs for the cache subnet group.
	// +optional
	SubnetIDs []string `json:"subnetIds,omitempty"`
}

// A CacheSubnetGroupSpec defines the desired state of a CacheSubnetGroup.
type CacheSubnetGroupSpec struct {
	xpv1.ResourceSpec `json:",inline"`
	ForProvider       CacheSubnetGroupParameters `json:"forProvider"`
}

// CacheSubnetGroupObservation keeps the observed state of a subnet group.
type CacheSubnetGroupObservation struct {
	// The Amazon Virtual Private Cloud identifier (VPC ID) of the cache
	// subnet group.
	VPCID string `json:"vpcId,omitempty"`
}

// A CacheSubnetGroupStatus represents the observed state of a Subnet Group.
type CacheSubnetGroupStatus struct {
	xpv1.ResourceStatus `json:",inline"`
	AtProvider          CacheSubnetGroupObservation `json:"atProvider,omitempty"`
}

// A CacheSubnetGroup is a declarative resource that represents an AWS Subnet
// Group for ElastiCache.
type CacheSubnetGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CacheSubnetGroupSpec   `json:"spec"`
	Status CacheSubnetGroupStatus `json:"status,omitempty"`
}

// CacheSubnetGroupList contains a list of CacheSubnetGroup.
type CacheSubnetGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CacheSubnetGroup `json:"items"`
}
