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

package construct

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pkg/errors"

	networkv1alpha1 "github.com/cloudconstructs/awscache/apis/network/v1alpha1"
	clients "github.com/cloudconstructs/awscache/pkg/clients"
)

const errNoPort = "no port given and the target connections have no default port"

// tcpProtocol is the protocol used for all derived rules.
const tcpProtocol = "tcp"

// A Connectable exposes a connection-authorization capability.
type Connectable interface {
	Connections() *Connections
}

// Connections describes which network security boundary and default port
// other components should target to reach a resource. Rules derived through
// it are written into the bound security group descriptions; identifiers are
// resolved at materialization time.
type Connections struct {
	sg          *networkv1alpha1.SecurityGroup
	defaultPort *int32
}

// NewConnections returns a Connections bound to the given security group.
// A nil defaultPort means peers must always name a port explicitly.
func NewConnections(sg *networkv1alpha1.SecurityGroup, defaultPort *int32) *Connections {
	return &Connections{sg: sg, defaultPort: defaultPort}
}

// Connections returns the receiver, so a bare Connections satisfies
// Connectable.
func (c *Connections) Connections() *Connections { return c }

// SecurityGroup returns the security group the connections are bound to.
func (c *Connections) SecurityGroup() *networkv1alpha1.SecurityGroup { return c.sg }

// DefaultPort returns the default reachable port, if any.
func (c *Connections) DefaultPort() (int32, bool) {
	if c.defaultPort == nil {
		return 0, false
	}
	return *c.defaultPort, true
}

// AllowTo permits egress from the receiver to the target on the given port,
// and ingress on the target from the receiver. When port is nil the target's
// default port is used.
func (c *Connections) AllowTo(target *Connections, port *int32, description string) error {
	p := port
	if p == nil {
		p = target.defaultPort
	}
	if p == nil {
		return errors.New(errNoPort)
	}

	c.sg.Spec.ForProvider.Egress = append(c.sg.Spec.ForProvider.Egress, networkv1alpha1.IPPermission{
		FromPort:   aws.Int32(*p),
		ToPort:     aws.Int32(*p),
		IPProtocol: tcpProtocol,
		UserIDGroupPairs: []networkv1alpha1.UserIDGroupPair{{
			GroupName:   aws.String(target.sg.Spec.ForProvider.GroupName),
			Description: clients.String(description),
		}},
	})

	target.sg.Spec.ForProvider.Ingress = append(target.sg.Spec.ForProvider.Ingress, networkv1alpha1.IPPermission{
		FromPort:   aws.Int32(*p),
		ToPort:     aws.Int32(*p),
		IPProtocol: tcpProtocol,
		UserIDGroupPairs: []networkv1alpha1.UserIDGroupPair{{
			GroupName:   aws.String(c.sg.Spec.ForProvider.GroupName),
			Description: clients.String(description),
		}},
	})

	return nil
}

// AllowFrom permits the peer to reach the receiver on the given port, or the
// receiver's default port when nil.
func (c *Connections) AllowFrom(peer *Connections, port *int32, description string) error {
	return peer.AllowTo(c, port, description)
}

// AllowDefaultPortFrom permits the peer to reach the receiver on the
// receiver's default port.
func (c *Connections) AllowDefaultPortFrom(peer *Connections, description string) error {
	return peer.AllowTo(c, nil, description)
}
