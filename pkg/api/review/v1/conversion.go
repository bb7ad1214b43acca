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
	"encoding/json"

	"github.com/pkg/errors"
	admissionv1 "k8s.io/api/admission/v1"
	authenticationv1 "k8s.io/api/authentication/v1"
	authorizationv1 "k8s.io/api/authorization/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/pointer"
	utiljson "sigs.k8s.io/json"
)

// This file converts between the wire model and the k8s.io/api review types
// the API server speaks to a webhook. The k8s types cannot express an absent
// optional, so conversions in that direction are lossy for absent values only.

// AdmissionReviewFromV1 converts an admission.k8s.io/v1 review.
func AdmissionReviewFromV1(in *admissionv1.AdmissionReview) (*AdmissionReview, error) {
	out := &AdmissionReview{
		TypeMeta: TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
	}
	if in.Request != nil {
		req, err := admissionRequestFromV1(in.Request)
		if err != nil {
			return nil, err
		}
		out.Request = req
	}
	if in.Response != nil {
		out.Response = admissionResponseFromV1(in.Response)
	}
	return out, nil
}

func admissionRequestFromV1(in *admissionv1.AdmissionRequest) (*AdmissionRequest, error) {
	out := &AdmissionRequest{
		UID:                in.UID,
		Kind:               GroupVersionKind{Group: in.Kind.Group, Version: in.Kind.Version, Kind: in.Kind.Kind},
		Resource:           GroupVersionResource{Group: in.Resource.Group, Version: in.Resource.Version, Resource: in.Resource.Resource},
		SubResource:        in.SubResource,
		RequestSubResource: in.RequestSubResource,
		Name:               in.Name,
		Namespace:          in.Namespace,
		Operation:          Operation(in.Operation),
		UserInfo:           userInfoFromV1(in.UserInfo),
		Object:             rawFromV1(in.Object),
		OldObject:          rawFromV1(in.OldObject),
		DryRun:             in.DryRun,
	}
	if in.RequestKind != nil {
		out.RequestKind = &GroupVersionKind{Group: in.RequestKind.Group, Version: in.RequestKind.Version, Kind: in.RequestKind.Kind}
	}
	if in.RequestResource != nil {
		out.RequestResource = &GroupVersionResource{Group: in.RequestResource.Group, Version: in.RequestResource.Version, Resource: in.RequestResource.Resource}
	}
	if raw := rawFromV1(in.Options); raw != nil {
		options := map[string]runtime.RawExtension{}
		if err := utiljson.UnmarshalCaseSensitivePreserveInts(raw.Raw, &options); err != nil {
			return nil, errors.Wrap(err, "options must be a JSON object")
		}
		out.Options = options
	}
	return out, nil
}

func admissionResponseFromV1(in *admissionv1.AdmissionResponse) *AdmissionResponse {
	out := &AdmissionResponse{
		UID:              in.UID,
		Allowed:          in.Allowed,
		Patch:            in.Patch,
		AuditAnnotations: in.AuditAnnotations,
		Warnings:         in.Warnings,
	}
	if in.Result != nil {
		out.Result = &Status{Message: in.Result.Message, Reason: string(in.Result.Reason), Code: in.Result.Code}
	}
	if in.PatchType != nil {
		pt := PatchType(*in.PatchType)
		out.PatchType = &pt
	}
	return out
}

// AdmissionReviewToV1 converts to an admission.k8s.io/v1 review.
func AdmissionReviewToV1(in *AdmissionReview) (*admissionv1.AdmissionReview, error) {
	out := &admissionv1.AdmissionReview{
		TypeMeta: metav1.TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
	}
	if in.Request != nil {
		req, err := admissionRequestToV1(in.Request)
		if err != nil {
			return nil, err
		}
		out.Request = req
	}
	if in.Response != nil {
		out.Response = admissionResponseToV1(in.Response)
	}
	return out, nil
}

func admissionRequestToV1(in *AdmissionRequest) (*admissionv1.AdmissionRequest, error) {
	out := &admissionv1.AdmissionRequest{
		UID:                in.UID,
		Kind:               metav1.GroupVersionKind{Group: in.Kind.Group, Version: in.Kind.Version, Kind: in.Kind.Kind},
		Resource:           metav1.GroupVersionResource{Group: in.Resource.Group, Version: in.Resource.Version, Resource: in.Resource.Resource},
		SubResource:        in.SubResource,
		RequestSubResource: in.RequestSubResource,
		Name:               in.Name,
		Namespace:          in.Namespace,
		Operation:          admissionv1.Operation(in.Operation),
		UserInfo:           userInfoToV1(in.UserInfo),
		DryRun:             in.DryRun,
	}
	if in.RequestKind != nil {
		out.RequestKind = &metav1.GroupVersionKind{Group: in.RequestKind.Group, Version: in.RequestKind.Version, Kind: in.RequestKind.Kind}
	}
	if in.RequestResource != nil {
		out.RequestResource = &metav1.GroupVersionResource{Group: in.RequestResource.Group, Version: in.RequestResource.Version, Resource: in.RequestResource.Resource}
	}
	if in.Object != nil {
		out.Object = *in.Object
	}
	if in.OldObject != nil {
		out.OldObject = *in.OldObject
	}
	if len(in.Options) > 0 {
		raw, err := json.Marshal(in.Options)
		if err != nil {
			return nil, errors.Wrap(err, "encoding options")
		}
		out.Options = runtime.RawExtension{Raw: raw}
	}
	return out, nil
}

func admissionResponseToV1(in *AdmissionResponse) *admissionv1.AdmissionResponse {
	out := &admissionv1.AdmissionResponse{
		UID:              in.UID,
		Allowed:          in.Allowed,
		Patch:            in.Patch,
		AuditAnnotations: in.AuditAnnotations,
		Warnings:         in.Warnings,
	}
	if in.Result != nil {
		out.Result = &metav1.Status{Message: in.Result.Message, Reason: metav1.StatusReason(in.Result.Reason), Code: in.Result.Code}
	}
	if in.PatchType != nil {
		pt := admissionv1.PatchType(*in.PatchType)
		out.PatchType = &pt
	}
	return out
}

// TokenReviewFromV1 converts an authentication.k8s.io/v1 review. The k8s type
// always carries a spec; its status is only converted when it holds a
// verdict.
func TokenReviewFromV1(in *authenticationv1.TokenReview) *TokenReview {
	out := &TokenReview{
		TypeMeta: TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
		Metadata: objectMetaFromV1(in.ObjectMeta),
		Spec: &TokenReviewSpec{
			Token:     pointer.String(in.Spec.Token),
			Audiences: in.Spec.Audiences,
		},
	}
	if in.Status.Authenticated || in.Status.Error != "" {
		out.Status = &TokenReviewStatus{
			Authenticated: pointer.Bool(in.Status.Authenticated),
			Audiences:     in.Status.Audiences,
			Error:         in.Status.Error,
		}
		if in.Status.Authenticated {
			user := userInfoFromV1(in.Status.User)
			out.Status.User = &user
		}
	}
	return out
}

// TokenReviewToV1 converts to an authentication.k8s.io/v1 review.
func TokenReviewToV1(in *TokenReview) *authenticationv1.TokenReview {
	out := &authenticationv1.TokenReview{
		TypeMeta:   metav1.TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
		ObjectMeta: objectMetaToV1(in.Metadata),
	}
	if in.Spec != nil {
		out.Spec = authenticationv1.TokenReviewSpec{
			Token:     pointer.StringDeref(in.Spec.Token, ""),
			Audiences: in.Spec.Audiences,
		}
	}
	if in.Status != nil {
		out.Status = authenticationv1.TokenReviewStatus{
			Authenticated: pointer.BoolDeref(in.Status.Authenticated, false),
			Audiences:     in.Status.Audiences,
			Error:         in.Status.Error,
		}
		if in.Status.User != nil {
			out.Status.User = userInfoToV1(*in.Status.User)
		}
	}
	return out
}

// SubjectAccessReviewFromV1 converts an authorization.k8s.io/v1 review.
func SubjectAccessReviewFromV1(in *authorizationv1.SubjectAccessReview) *SubjectAccessReview {
	out := &SubjectAccessReview{
		TypeMeta: TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
		Metadata: objectMetaFromV1(in.ObjectMeta),
		Spec: &SubjectAccessReviewSpec{
			User:   in.Spec.User,
			Groups: in.Spec.Groups,
			UID:    in.Spec.UID,
		},
	}
	if ra := in.Spec.ResourceAttributes; ra != nil {
		out.Spec.ResourceAttributes = &ResourceAttributes{
			Namespace:   ra.Namespace,
			Verb:        ra.Verb,
			Group:       ra.Group,
			Version:     ra.Version,
			Resource:    ra.Resource,
			Subresource: ra.Subresource,
			Name:        ra.Name,
		}
	}
	if nra := in.Spec.NonResourceAttributes; nra != nil {
		out.Spec.NonResourceAttributes = &NonResourceAttributes{Path: nra.Path, Verb: nra.Verb}
	}
	if len(in.Spec.Extra) > 0 {
		out.Spec.Extra = make(map[string]ExtraValue, len(in.Spec.Extra))
		for k, v := range in.Spec.Extra {
			out.Spec.Extra[k] = ExtraValue(v)
		}
	}
	return out
}

// SubjectAccessReviewToV1 converts to an authorization.k8s.io/v1 review.
func SubjectAccessReviewToV1(in *SubjectAccessReview) *authorizationv1.SubjectAccessReview {
	out := &authorizationv1.SubjectAccessReview{
		TypeMeta:   metav1.TypeMeta{Kind: in.Kind, APIVersion: in.APIVersion},
		ObjectMeta: objectMetaToV1(in.Metadata),
	}
	if spec := in.Spec; spec != nil {
		out.Spec = authorizationv1.SubjectAccessReviewSpec{
			User:   spec.User,
			Groups: spec.Groups,
			UID:    spec.UID,
		}
		if ra := spec.ResourceAttributes; ra != nil {
			out.Spec.ResourceAttributes = &authorizationv1.ResourceAttributes{
				Namespace:   ra.Namespace,
				Verb:        ra.Verb,
				Group:       ra.Group,
				Version:     ra.Version,
				Resource:    ra.Resource,
				Subresource: ra.Subresource,
				Name:        ra.Name,
			}
		}
		if nra := spec.NonResourceAttributes; nra != nil {
			out.Spec.NonResourceAttributes = &authorizationv1.NonResourceAttributes{Path: nra.Path, Verb: nra.Verb}
		}
		if len(spec.Extra) > 0 {
			out.Spec.Extra = make(map[string]authorizationv1.ExtraValue, len(spec.Extra))
			for k, v := range spec.Extra {
				out.Spec.Extra[k] = authorizationv1.ExtraValue(v)
			}
		}
	}
	if status := in.Status; status != nil {
		out.Status = authorizationv1.SubjectAccessReviewStatus{
			Allowed:         status.Allowed,
			Denied:          pointer.BoolDeref(status.Denied, false),
			Reason:          status.Reason,
			EvaluationError: status.EvaluationError,
		}
	}
	return out
}

func objectMetaFromV1(in metav1.ObjectMeta) *ObjectMeta {
	if in.Name == "" && in.UID == "" {
		return nil
	}
	return &ObjectMeta{Name: in.Name, UID: in.UID}
}

func objectMetaToV1(in *ObjectMeta) metav1.ObjectMeta {
	if in == nil {
		return metav1.ObjectMeta{}
	}
	return metav1.ObjectMeta{Name: in.Name, UID: in.UID}
}

func userInfoFromV1(in authenticationv1.UserInfo) UserInfo {
	out := UserInfo{
		Username: in.Username,
		UID:      in.UID,
		Groups:   in.Groups,
	}
	if len(in.Extra) > 0 {
		out.Extra = make(map[string]ExtraValue, len(in.Extra))
		for k, v := range in.Extra {
			out.Extra[k] = ExtraValue(v)
		}
	}
	return out
}

func userInfoToV1(in UserInfo) authenticationv1.UserInfo {
	out := authenticationv1.UserInfo{
		Username: in.Username,
		UID:      in.UID,
		Groups:   in.Groups,
	}
	if len(in.Extra) > 0 {
		out.Extra = make(map[string]authenticationv1.ExtraValue, len(in.Extra))
		for k, v := range in.Extra {
			out.Extra[k] = authenticationv1.ExtraValue(v)
		}
	}
	return out
}

func rawFromV1(in runtime.RawExtension) *runtime.RawExtension {
	if len(in.Raw) == 0 {
		return nil
	}
	return &runtime.RawExtension{Raw: in.Raw}
}
