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

// TokenReview is the envelope of a token review. Spec is set on the way in,
// Status on the way out.
type TokenReview struct {
	TypeMeta `json:",inline"`
	Metadata *ObjectMeta `json:"metadata,omitempty"`

	Spec   *TokenReviewSpec   `json:"spec,omitempty"`
	Status *TokenReviewStatus `json:"status,omitempty"`
}

// TokenReviewSpec carries the presented bearer token.
type TokenReviewSpec struct {
	// Token is optional on the wire, but a review without one cannot be
	// evaluated.
	Token     *string  `json:"token,omitempty"`
	Audiences []string `json:"audiences,omitempty"`
}

// TokenReviewStatus is the result of a token review. User and Error are never
// both set.
type TokenReviewStatus struct {
	// Authenticated is absent until the token has been evaluated.
	Authenticated *bool     `json:"authenticated,omitempty"`
	User          *UserInfo `json:"user,omitempty"`
	Audiences     []string  `json:"audiences,omitempty"`
	Error         string    `json:"error,omitempty"`
}
