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
	"k8s.io/apimachinery/pkg/util/sets"
)

// GroupSet returns the groups of u as a set.
func (u UserInfo) GroupSet() sets.String {
	return sets.NewString(u.Groups...)
}

// GroupSet returns the groups of the subject as a set.
func (s SubjectAccessReviewSpec) GroupSet() sets.String {
	return sets.NewString(s.Groups...)
}

// MetadataUID returns the correlation id of a token review, or the empty
// string if the review carries no metadata.
func (r *TokenReview) MetadataUID() string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	return string(r.Metadata.UID)
}

// MetadataUID returns the correlation id of a subject access review, or the
// empty string if the review carries no metadata.
func (r *SubjectAccessReview) MetadataUID() string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	return string(r.Metadata.UID)
}

// ResponseTypeMeta returns the TypeMeta of a response to a review with the
// passed TypeMeta. The kind is always set. The apiVersion of the request is
// echoed when present since the API server requires the versions to match.
func ResponseTypeMeta(in TypeMeta, kind, defaultAPIVersion string) TypeMeta {
	apiVersion := in.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	return TypeMeta{Kind: kind, APIVersion: apiVersion}
}
