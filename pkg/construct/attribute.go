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

// An Attribute is a value of a described resource that may not be known until
// the infrastructure it belongs to has been materialized. Before that it
// carries only a symbolic reference; afterwards it carries the concrete
// value. Callers must check Resolved before treating the value as real data.
type Attribute struct {
	ref   string
	value *string
}

// UnresolvedAttribute returns an attribute known only by its symbolic
// reference.
func UnresolvedAttribute(ref string) Attribute {
	return Attribute{ref: ref}
}

// ResolvedAttribute returns an attribute holding a concrete value.
func ResolvedAttribute(ref, value string) Attribute {
	return Attribute{ref: ref, value: &value}
}

// Resolved reports whether the concrete value is known.
func (a Attribute) Resolved() bool {
	return a.value != nil
}

// Value returns the concrete value and whether it is known.
func (a Attribute) Value() (string, bool) {
	if a.value == nil {
		return "", false
	}
	return *a.value, true
}

// Ref returns the symbolic reference of the attribute.
func (a Attribute) Ref() string {
	return a.ref
}

// String returns the concrete value if resolved, and the symbolic reference
// otherwise.
func (a Attribute) String() string {
	if a.value != nil {
		return *a.value
	}
	return a.ref
}
