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

// Package review holds the constants shared by every version of the review
// wire model.
package review

const (
	// AdmissionReviewKind is the kind of an admission review envelope.
	AdmissionReviewKind = "AdmissionReview"
	// AdmissionAPIVersion is the default apiVersion of an admission review.
	AdmissionAPIVersion = "admission.k8s.io/v1"

	// TokenReviewKind is the kind of a token review envelope.
	TokenReviewKind = "TokenReview"
	// AuthenticationAPIVersion is the default apiVersion of a token review.
	AuthenticationAPIVersion = "authentication.k8s.io/v1"

	// SubjectAccessReviewKind is the kind of a subject access review envelope.
	SubjectAccessReviewKind = "SubjectAccessReview"
	// AuthorizationAPIVersion is the default apiVersion of a subject access
	// review.
	AuthorizationAPIVersion = "authorization.k8s.io/v1"
)
