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

package v1

// SubjectAccessReview is the envelope of a subject access review. Spec is set
// on the way in, Status on the way out.
type SubjectAccessReview struct {
	TypeMeta `json:",inline"`
	Metadata *ObjectMeta `json:"metadata,omitempty"`

	Spec   *SubjectAccessReviewSpec   `json:"spec,omitempty"`
	Status *SubjectAccessReviewStatus `json:"status,omitempty"`
}

// SubjectAccessReviewSpec describes the subject and the action being checked.
type SubjectAccessReviewSpec struct {
	ResourceAttributes    *ResourceAttributes    `json:"resourceAttributes,omitempty"`
	NonResourceAttributes *NonResourceAttributes `json:"nonResourceAttributes,omitempty"`

	User   string                `json:"user,omitempty"`
	Groups []string              `json:"groups,omitempty"`
	Extra  map[string]ExtraValue `json:"extra,omitempty"`
	UID    string                `json:"uid,omitempty"`
}

// ResourceAttributes describes an action on a resource.
type ResourceAttributes struct {
	Namespace   string `json:"namespace,omitempty"`
	Verb        string `json:"verb,omitempty"`
	Group       string `json:"group,omitempty"`
	Version     string `json:"version,omitempty"`
	Resource    string `json:"resource,omitempty"`
	Subresource string `json:"subresource,omitempty"`
	Name        string `json:"name,omitempty"`
}

// NonResourceAttributes describes an action on a non-resource path.
type NonResourceAttributes struct {
	Path string `json:"path,omitempty"`
	Verb string `json:"verb,omitempty"`
}

// SubjectAccessReviewStatus is the verdict of an authorization module.
type SubjectAccessReviewStatus struct {
	Allowed bool `json:"allowed"`
	// Denied refines a negative verdict: true means explicitly denied, absent
	// means no opinion.
	Denied          *bool  `json:"denied,omitempty"`
	Reason          string `json:"reason,omitempty"`
	EvaluationError string `json:"evaluationError,omitempty"`
}
