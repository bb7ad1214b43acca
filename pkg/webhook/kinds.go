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

package webhook

import (
	"encoding/json"

	admissionv1 "k8s.io/api/admission/v1"
	authenticationv1 "k8s.io/api/authentication/v1"
	authorizationv1 "k8s.io/api/authorization/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/pointer"

	"kpt.dev/kubereview/pkg/api/review"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

// reviewKind converts one kind of review between the k8s.io/api types the API
// server sends and the wire model the modules read.
type reviewKind struct {
	// decode parses a request body into a wire model review.
	decode func(body []byte) (interface{}, error)
	// encode converts a wire model review into the response object, and
	// reports whether the review allowed the request.
	encode func(out interface{}) (interface{}, bool, error)
}

func checkTypeMeta(got metav1.TypeMeta, kind, apiVersion string) error {
	if got.Kind != kind || got.APIVersion != apiVersion {
		return status.DecodeErrorf("invalid TypeMeta %q %q, expect %q %q", got.APIVersion, got.Kind, apiVersion, kind)
	}
	return nil
}

func unexpected(out interface{}) error {
	return status.InternalErrorf("unexpected review type %T", out)
}

var admissionReviews = reviewKind{
	decode: func(body []byte) (interface{}, error) {
		ar := &admissionv1.AdmissionReview{}
		if err := json.Unmarshal(body, ar); err != nil {
			return nil, status.DecodeError(err, "admission review")
		}
		if err := checkTypeMeta(ar.TypeMeta, review.AdmissionReviewKind, review.AdmissionAPIVersion); err != nil {
			return nil, err
		}
		out, err := reviewv1.AdmissionReviewFromV1(ar)
		if err != nil {
			return nil, status.DecodeError(err, "admission review")
		}
		return out, nil
	},
	encode: func(out interface{}) (interface{}, bool, error) {
		ar, ok := out.(*reviewv1.AdmissionReview)
		if !ok || ar.Response == nil {
			return nil, false, unexpected(out)
		}
		v1, err := reviewv1.AdmissionReviewToV1(ar)
		if err != nil {
			return nil, false, status.EncodeError(err, "admission review")
		}
		return v1, ar.Response.Allowed, nil
	},
}

var tokenReviews = reviewKind{
	decode: func(body []byte) (interface{}, error) {
		tr := &authenticationv1.TokenReview{}
		if err := json.Unmarshal(body, tr); err != nil {
			return nil, status.DecodeError(err, "token review")
		}
		if err := checkTypeMeta(tr.TypeMeta, review.TokenReviewKind, review.AuthenticationAPIVersion); err != nil {
			return nil, err
		}
		return reviewv1.TokenReviewFromV1(tr), nil
	},
	encode: func(out interface{}) (interface{}, bool, error) {
		tr, ok := out.(*reviewv1.TokenReview)
		if !ok || tr.Status == nil {
			return nil, false, unexpected(out)
		}
		return reviewv1.TokenReviewToV1(tr), pointer.BoolDeref(tr.Status.Authenticated, false), nil
	},
}

var subjectAccessReviews = reviewKind{
	decode: func(body []byte) (interface{}, error) {
		sar := &authorizationv1.SubjectAccessReview{}
		if err := json.Unmarshal(body, sar); err != nil {
			return nil, status.DecodeError(err, "subject access review")
		}
		if err := checkTypeMeta(sar.TypeMeta, review.SubjectAccessReviewKind, review.AuthorizationAPIVersion); err != nil {
			return nil, err
		}
		return reviewv1.SubjectAccessReviewFromV1(sar), nil
	},
	encode: func(out interface{}) (interface{}, bool, error) {
		sar, ok := out.(*reviewv1.SubjectAccessReview)
		if !ok || sar.Status == nil {
			return nil, false, unexpected(out)
		}
		return reviewv1.SubjectAccessReviewToV1(sar), sar.Status.Allowed, nil
	},
}
