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
	"bytes"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	errMarshalResource = "cannot marshal resource description"

	documentSeparator = "---\n"
)

// Manifests renders the construct's resource descriptions as a multi-document
// YAML stream in materialization order: security group, subnet group, cache
// cluster. Borrowed resources are included so the stream is self-contained.
func (c *Cluster) Manifests() ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range []interface{}{c.securityGroup, c.subnetGroup, c.resource} {
		b, err := yaml.Marshal(r)
		if err != nil {
			return nil, errors.Wrap(err, errMarshalResource)
		}
		buf.WriteString(documentSeparator)
		buf.Write(b)
	}
	return buf.Bytes(), nil
}
