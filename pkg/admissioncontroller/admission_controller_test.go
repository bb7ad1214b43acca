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

package admissioncontroller

import (
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"

	"kpt.dev/kubereview/pkg/api/review"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/status"
)

type labelSettings struct {
	Label string `json:"label" validate:"required"`
}

func defaultLabelSettings() labelSettings {
	return labelSettings{Label: "checked"}
}

type object struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
}

// allowNamed allows objects named "ok" and denies everything else.
func allowNamed(req *reviewv1.AdmissionRequest, _ labelSettings) (*Verdict, error) {
	o := &object{}
	if err := ObjectInto(req, o); err != nil {
		return nil, err
	}
	if o.Name != "ok" {
		return Deny("not ok"), nil
	}
	return Allow(), nil
}

// labelNamed labels objects named "ok" and denies everything else.
func labelNamed(req *reviewv1.AdmissionRequest, s labelSettings) (*Mutation, error) {
	o := &object{}
	if err := ObjectInto(req, o); err != nil {
		return nil, err
	}
	if o.Name != "ok" {
		return &Mutation{Verdict: *Deny("not ok")}, nil
	}
	o.Labels = map[string]string{s.Label: "true"}
	return &Mutation{Verdict: *Allow(), Object: o}, nil
}

func admissionReview(uid, obj string) *reviewv1.AdmissionReview {
	ar := &reviewv1.AdmissionReview{
		Request: &reviewv1.AdmissionRequest{UID: types.UID("uid-" + uid)},
	}
	if obj != "" {
		ar.Request.Object = &runtime.RawExtension{Raw: []byte(obj)}
	}
	return ar
}

func TestValidator_Review(t *testing.T) {
	v := &Validator[labelSettings]{Validate: allowNamed, Defaults: defaultLabelSettings}

	got, err := v.Admit(admissionReview("1", `{"name":"ok"}`))
	require.NoError(t, err)
	require.Equal(t, &reviewv1.AdmissionReview{
		TypeMeta: reviewv1.TypeMeta{Kind: review.AdmissionReviewKind, APIVersion: review.AdmissionAPIVersion},
		Response: &reviewv1.AdmissionResponse{UID: "uid-1", Allowed: true},
	}, got)

	got, err = v.Admit(admissionReview("2", `{"name":"nope"}`))
	require.NoError(t, err)
	require.Equal(t, "uid-2", string(got.Response.UID))
	require.False(t, got.Response.Allowed)
	require.Equal(t, "not ok", got.Response.Result.Message)
	require.EqualValues(t, 403, got.Response.Result.Code)
	require.Nil(t, got.Response.Patch)
	require.Nil(t, got.Response.PatchType)
}

func TestValidator_Faults(t *testing.T) {
	v := &Validator[labelSettings]{Validate: allowNamed, Defaults: defaultLabelSettings}

	testCases := []struct {
		name string
		ar   *reviewv1.AdmissionReview
		want string
	}{
		{
			name: "no request",
			ar:   &reviewv1.AdmissionReview{},
			want: `KRV2002: required field "request" is missing`,
		},
		{
			name: "no object",
			ar:   admissionReview("1", ""),
			want: `KRV2002: required field "request.object" is missing`,
		},
		{
			name: "undecodable object",
			ar:   admissionReview("1", `{"name":7}`),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.Admit(tc.ar)
			require.Nil(t, got)
			require.True(t, status.IsCode(err, status.ExtractionErrorCode), "got %v", err)
			if tc.want != "" {
				require.EqualError(t, err, tc.want)
			}
		})
	}
}

func TestValidator_NoVerdict(t *testing.T) {
	v := &Validator[labelSettings]{
		Validate: func(*reviewv1.AdmissionRequest, labelSettings) (*Verdict, error) { return nil, nil },
		Defaults: defaultLabelSettings,
	}
	_, err := v.Admit(admissionReview("1", `{}`))
	require.True(t, status.IsCode(err, status.InternalErrorCode), "got %v", err)
}

func TestResponse_EchoesAPIVersion(t *testing.T) {
	v := &Validator[labelSettings]{Validate: allowNamed, Defaults: defaultLabelSettings}
	ar := admissionReview("1", `{"name":"ok"}`)
	ar.TypeMeta = reviewv1.TypeMeta{Kind: review.AdmissionReviewKind, APIVersion: "admission.k8s.io/v1beta1"}

	got, err := v.Admit(ar)
	require.NoError(t, err)
	require.Equal(t, "admission.k8s.io/v1beta1", got.APIVersion)
}

func TestMutator_Review(t *testing.T) {
	for _, pt := range []reviewv1.PatchType{reviewv1.PatchTypeFull, reviewv1.PatchTypeJSONPatch, reviewv1.PatchTypeJSONMergePatch} {
		t.Run(string(pt), func(t *testing.T) {
			m := &Mutator[labelSettings]{Mutate: labelNamed, Defaults: defaultLabelSettings, PatchType: pt}

			got, err := m.Admit(admissionReview("1", `{"name":"ok"}`))
			require.NoError(t, err)
			require.Equal(t, "uid-1", string(got.Response.UID))
			require.True(t, got.Response.Allowed)
			require.NotNil(t, got.Response.PatchType)
			require.Equal(t, pt, *got.Response.PatchType)
			require.NotEmpty(t, got.Response.Patch)

			got, err = m.Admit(admissionReview("2", `{"name":"nope"}`))
			require.NoError(t, err)
			require.False(t, got.Response.Allowed)
			require.Nil(t, got.Response.Patch)
			require.Nil(t, got.Response.PatchType)
		})
	}
}

func TestMutator_FullPatchIsTransformedObject(t *testing.T) {
	m := &Mutator[labelSettings]{Mutate: labelNamed, Defaults: defaultLabelSettings, PatchType: reviewv1.PatchTypeFull}
	got, err := m.Review(admissionReview("1", `{"name":"ok"}`), labelSettings{Label: "custom"})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"ok","labels":{"custom":"true"}}`, string(got.Response.Patch))
}

func TestMutator_UnchangedObject(t *testing.T) {
	m := &Mutator[labelSettings]{
		Mutate: func(*reviewv1.AdmissionRequest, labelSettings) (*Mutation, error) {
			return &Mutation{Verdict: *Allow()}, nil
		},
		Defaults:  defaultLabelSettings,
		PatchType: reviewv1.PatchTypeJSONPatch,
	}
	got, err := m.Admit(admissionReview("1", `{"name":"ok"}`))
	require.NoError(t, err)
	require.Equal(t, "[]", string(got.Response.Patch))
}

func TestHandle(t *testing.T) {
	m := &Mutator[labelSettings]{Mutate: labelNamed, Defaults: defaultLabelSettings, PatchType: reviewv1.PatchTypeFull}

	testCases := []struct {
		name      string
		request   string
		settings  string
		wantPatch string
		wantCode  string
	}{
		{
			name:      "default settings",
			request:   `{"request":{"request":{"uid":"a","object":{"name":"ok"}}}}`,
			wantPatch: `{"name":"ok","labels":{"checked":"true"}}`,
		},
		{
			name:      "supplied settings",
			request:   `{"request":{"request":{"uid":"a","object":{"name":"ok"}}}}`,
			settings:  `{"label":"mine"}`,
			wantPatch: `{"name":"ok","labels":{"mine":"true"}}`,
		},
		{
			name:     "invalid settings",
			request:  `{"request":{"request":{"uid":"a","object":{"name":"ok"}}}}`,
			settings: `{"label":1}`,
			wantCode: status.SettingsErrorCode,
		},
		{
			name:     "invalid review",
			request:  `{"request":{"request":{"uid":["a"]}}}`,
			wantCode: status.DecodeErrorCode,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := tc.request
			if tc.settings != "" {
				doc = doc[:len(doc)-1] + `,"settings":` + tc.settings + `}`
			}
			req, err := codec.DecodeRequest([]byte(doc))
			require.NoError(t, err)

			got, err := m.Handle(req)
			if tc.wantCode != "" {
				require.True(t, status.IsCode(err, tc.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			ar := got.(*reviewv1.AdmissionReview)
			require.Equal(t, "a", string(ar.Response.UID))
			require.JSONEq(t, tc.wantPatch, string(ar.Response.Patch))
		})
	}
}
