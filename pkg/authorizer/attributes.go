// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authorizer

import (
	"k8s.io/apimachinery/pkg/util/sets"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
)

// Attributes gives read access to the subject and action of a subject access
// review. A review describes either a resource request or a non-resource
// request; accessors of the other kind return empty values.
type Attributes struct {
	spec *reviewv1.SubjectAccessReviewSpec
}

// NewAttributes wraps spec.
func NewAttributes(spec *reviewv1.SubjectAccessReviewSpec) *Attributes {
	return &Attributes{spec: spec}
}

// User returns the name of the subject.
func (a *Attributes) User() string {
	return a.spec.User
}

// Groups returns the groups of the subject.
func (a *Attributes) Groups() sets.String {
	return a.spec.GroupSet()
}

// InGroup returns true if the subject is a member of group.
func (a *Attributes) InGroup(group string) bool {
	return a.Groups().Has(group)
}

// IsResourceRequest returns true if the review is about a resource.
func (a *Attributes) IsResourceRequest() bool {
	return a.spec.ResourceAttributes != nil
}

// Verb returns the verb of the action.
func (a *Attributes) Verb() string {
	if a.IsResourceRequest() {
		return a.resource().Verb
	}
	return a.nonresource().Verb
}

// IsReadOnly returns true if the action only reads.
func (a *Attributes) IsReadOnly() bool {
	return isVerbReadOnly(a.Verb())
}

// Namespace returns the namespace of the resource.
func (a *Attributes) Namespace() string {
	return a.resource().Namespace
}

// Resource returns the resource type.
func (a *Attributes) Resource() string {
	return a.resource().Resource
}

// Name returns the name of the resource.
func (a *Attributes) Name() string {
	return a.resource().Name
}

// Path returns the path of a non-resource request.
func (a *Attributes) Path() string {
	return a.nonresource().Path
}

// isVerbReadOnly checks whether verb corresponds to a REST verb for read-only
// operations.
func isVerbReadOnly(verb string) bool {
	switch verb {
	case "get", "list", "watch":
		return true
	default:
		return false
	}
}

func (a *Attributes) resource() reviewv1.ResourceAttributes {
	if a.spec.ResourceAttributes == nil {
		return reviewv1.ResourceAttributes{}
	}
	return *a.spec.ResourceAttributes
}

func (a *Attributes) nonresource() reviewv1.NonResourceAttributes {
	if a.spec.NonResourceAttributes == nil {
		return reviewv1.NonResourceAttributes{}
	}
	return *a.spec.NonResourceAttributes
}
