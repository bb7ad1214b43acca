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
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/pointer"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/status"
)

func request(user, group, namespace, resource, verb string) *reviewv1.SubjectAccessReviewSpec {
	return &reviewv1.SubjectAccessReviewSpec{
		User:   user,
		Groups: []string{group},
		ResourceAttributes: &reviewv1.ResourceAttributes{
			Namespace: namespace,
			Resource:  resource,
			Verb:      verb,
			Name:      "meowie",
		},
	}
}

func nonResourceRequest(user, path, verb string) *reviewv1.SubjectAccessReviewSpec {
	return &reviewv1.SubjectAccessReviewSpec{
		User:                  user,
		NonResourceAttributes: &reviewv1.NonResourceAttributes{Path: path, Verb: verb},
	}
}

func TestAttributes(t *testing.T) {
	tests := []struct {
		name                      string
		input                     *reviewv1.SubjectAccessReviewSpec
		expectedIsResourceRequest bool
		expectedNamespace         string
		expectedName              string
		expectedReadOnly          bool
		expectedPath              string
	}{
		{
			name:                      "resource request",
			input:                     request("jane", "cats", "kitties", "pods", "get"),
			expectedIsResourceRequest: true,
			expectedNamespace:         "kitties",
			expectedName:              "meowie",
			expectedReadOnly:          true,
		},
		{
			name:                      "writing resource request",
			input:                     request("jane", "cats", "kitties", "pods", "delete"),
			expectedIsResourceRequest: true,
			expectedNamespace:         "kitties",
			expectedName:              "meowie",
		},
		{
			// Resource accessors still succeed on a non-resource request.
			name:             "non-resource request",
			input:            nonResourceRequest("jane", "/some/path", "get"),
			expectedReadOnly: true,
			expectedPath:     "/some/path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := NewAttributes(tt.input)
			if got := attr.IsResourceRequest(); got != tt.expectedIsResourceRequest {
				t.Errorf("IsResourceRequest() = %t, want %t", got, tt.expectedIsResourceRequest)
			}
			if got := attr.Namespace(); got != tt.expectedNamespace {
				t.Errorf("Namespace() = %q, want %q", got, tt.expectedNamespace)
			}
			if got := attr.Name(); got != tt.expectedName {
				t.Errorf("Name() = %q, want %q", got, tt.expectedName)
			}
			if got := attr.IsReadOnly(); got != tt.expectedReadOnly {
				t.Errorf("IsReadOnly() = %t, want %t", got, tt.expectedReadOnly)
			}
			if got := attr.Path(); got != tt.expectedPath {
				t.Errorf("Path() = %q, want %q", got, tt.expectedPath)
			}
			if got := attr.User(); got != "jane" {
				t.Errorf("User() = %q, want %q", got, "jane")
			}
		})
	}
}

// readOnly allows read-only actions by members of "readers", explicitly
// denies writes by "banned", and has no opinion otherwise.
func readOnly(attrs *Attributes, _ struct{}) (*reviewv1.SubjectAccessReviewStatus, error) {
	switch {
	case attrs.InGroup("banned") && !attrs.IsReadOnly():
		return Deny("banned"), nil
	case attrs.InGroup("readers") && attrs.IsReadOnly():
		return Allow("reader"), nil
	default:
		return NoOpinion(""), nil
	}
}

func TestReview(t *testing.T) {
	a := &Authorizer[struct{}]{Authorize: readOnly, Defaults: func() struct{} { return struct{}{} }}

	testCases := []struct {
		name string
		in   *reviewv1.SubjectAccessReview
		want *reviewv1.SubjectAccessReview
	}{
		{
			name: "allowed",
			in: &reviewv1.SubjectAccessReview{
				Metadata: &reviewv1.ObjectMeta{UID: "1"},
				Spec:     request("jane", "readers", "ns", "pods", "list"),
			},
			want: &reviewv1.SubjectAccessReview{
				TypeMeta: reviewv1.TypeMeta{Kind: "SubjectAccessReview", APIVersion: "authorization.k8s.io/v1"},
				Metadata: &reviewv1.ObjectMeta{UID: "1"},
				Status:   &reviewv1.SubjectAccessReviewStatus{Allowed: true, Reason: "reader"},
			},
		},
		{
			name: "denied",
			in: &reviewv1.SubjectAccessReview{
				TypeMeta: reviewv1.TypeMeta{Kind: "SubjectAccessReview", APIVersion: "authorization.k8s.io/v1beta1"},
				Metadata: &reviewv1.ObjectMeta{UID: "2"},
				Spec:     request("jane", "banned", "ns", "pods", "create"),
			},
			want: &reviewv1.SubjectAccessReview{
				TypeMeta: reviewv1.TypeMeta{Kind: "SubjectAccessReview", APIVersion: "authorization.k8s.io/v1beta1"},
				Metadata: &reviewv1.ObjectMeta{UID: "2"},
				Status:   &reviewv1.SubjectAccessReviewStatus{Denied: pointer.Bool(true), Reason: "banned"},
			},
		},
		{
			name: "no opinion without metadata",
			in: &reviewv1.SubjectAccessReview{
				Spec: nonResourceRequest("jane", "/healthz", "get"),
			},
			want: &reviewv1.SubjectAccessReview{
				TypeMeta: reviewv1.TypeMeta{Kind: "SubjectAccessReview", APIVersion: "authorization.k8s.io/v1"},
				Status:   &reviewv1.SubjectAccessReviewStatus{},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.ReviewAccess(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestReview_Faults(t *testing.T) {
	contradiction := &Authorizer[struct{}]{
		Authorize: func(*Attributes, struct{}) (*reviewv1.SubjectAccessReviewStatus, error) {
			return &reviewv1.SubjectAccessReviewStatus{Allowed: true, Denied: pointer.Bool(true)}, nil
		},
		Defaults: func() struct{} { return struct{}{} },
	}
	if _, err := contradiction.ReviewAccess(&reviewv1.SubjectAccessReview{Spec: &reviewv1.SubjectAccessReviewSpec{}}); !status.IsCode(err, status.InternalErrorCode) {
		t.Errorf("got error %v, want code %s", err, status.InternalErrorCode)
	}

	a := &Authorizer[struct{}]{Authorize: readOnly, Defaults: func() struct{} { return struct{}{} }}
	if _, err := a.ReviewAccess(&reviewv1.SubjectAccessReview{}); !status.IsCode(err, status.ExtractionErrorCode) {
		t.Errorf("got error %v, want code %s", err, status.ExtractionErrorCode)
	}
}

func TestHandle(t *testing.T) {
	a := &Authorizer[struct{}]{Authorize: readOnly, Defaults: func() struct{} { return struct{}{} }}
	req, err := codec.DecodeRequest([]byte(`{"request":{"metadata":{"uid":"abc"},"spec":{"groups":["readers"],"resourceAttributes":{"verb":"get"}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Handle(req)
	if err != nil {
		t.Fatal(err)
	}
	data, err := codec.Encode(got, "subject access review")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"SubjectAccessReview","apiVersion":"authorization.k8s.io/v1","metadata":{"uid":"abc"},"status":{"allowed":true,"reason":"reader"}}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Error(diff)
	}
}
