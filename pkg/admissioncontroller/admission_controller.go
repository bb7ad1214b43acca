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

// Package admissioncontroller holds the contract of an admission review
// module: how a decision sees the request, and how its verdict and, for a
// mutating module, its patch are written back.
package admissioncontroller

import (
	"net/http"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utiljson "sigs.k8s.io/json"

	"kpt.dev/kubereview/pkg/api/review"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

// Admitter reviews an admission review with its default settings.
type Admitter interface {
	// Admit returns the response review for the request in ar.
	Admit(ar *reviewv1.AdmissionReview) (*reviewv1.AdmissionReview, error)
}

// Verdict is the outcome of an admission decision.
type Verdict struct {
	Allowed bool
	// Result explains a denial.
	Result           *reviewv1.Status
	AuditAnnotations map[string]string
	Warnings         []string
}

// Allow returns a Verdict admitting the request.
func Allow() *Verdict {
	return &Verdict{Allowed: true}
}

// Deny returns a Verdict rejecting the request with a Forbidden status.
func Deny(message string) *Verdict {
	return &Verdict{
		Allowed: false,
		Result: &reviewv1.Status{
			Message: message,
			Reason:  string(metav1.StatusReasonForbidden),
			Code:    http.StatusForbidden,
		},
	}
}

// request returns the request of ar. A review without one cannot be decided.
func request(ar *reviewv1.AdmissionReview) (*reviewv1.AdmissionRequest, error) {
	if ar == nil || ar.Request == nil {
		return nil, status.MissingFieldError("request")
	}
	return ar.Request, nil
}

// response wraps a verdict into the response review to ar. The uid always
// matches the request.
func response(ar *reviewv1.AdmissionReview, v *Verdict) *reviewv1.AdmissionReview {
	return &reviewv1.AdmissionReview{
		TypeMeta: reviewv1.ResponseTypeMeta(ar.TypeMeta, review.AdmissionReviewKind, review.AdmissionAPIVersion),
		Response: &reviewv1.AdmissionResponse{
			UID:              ar.Request.UID,
			Allowed:          v.Allowed,
			Result:           v.Result,
			AuditAnnotations: v.AuditAnnotations,
			Warnings:         v.Warnings,
		},
	}
}

// ObjectInto decodes the object under admission into out.
func ObjectInto(req *reviewv1.AdmissionRequest, out interface{}) error {
	if req.Object == nil || len(req.Object.Raw) == 0 {
		return status.MissingFieldError("request.object")
	}
	if err := utiljson.UnmarshalCaseSensitivePreserveInts(req.Object.Raw, out); err != nil {
		return status.ExtractionError(err, "request.object")
	}
	return nil
}
