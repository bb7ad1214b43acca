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

import (
	"k8s.io/apimachinery/pkg/types"
)

// TypeMeta identifies the review kind of an envelope. Both fields are optional
// on input.
type TypeMeta struct {
	Kind       string `json:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
}

// ObjectMeta is the subset of object metadata a review envelope carries.
type ObjectMeta struct {
	Name string `json:"name,omitempty"`
	// UID is the correlation id of token and subject access reviews.
	UID types.UID `json:"uid,omitempty"`
}

// Status describes why a review was denied.
type Status struct {
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Code    int32  `json:"code,omitempty"`
}

// ExtraValue holds the values of one extra attribute of a user.
type ExtraValue []string

// UserInfo is the identity of the user a review is about.
type UserInfo struct {
	Username string `json:"username,omitempty"`
	UID      string `json:"uid,omitempty"`
	// Groups has set semantics: order carries no meaning and duplicates are
	// redundant. Use GroupSet to compare.
	Groups []string              `json:"groups,omitempty"`
	Extra  map[string]ExtraValue `json:"extra,omitempty"`
}
