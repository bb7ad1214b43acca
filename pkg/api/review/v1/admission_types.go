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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
)

// Operation is the operation being admitted. It is a free-form string on the
// wire; the constants below are the values the API server sends.
type Operation string

const (
	Create  Operation = "CREATE"
	Update  Operation = "UPDATE"
	Delete  Operation = "DELETE"
	Connect Operation = "CONNECT"
)

// PatchType tags the encoding of an admission patch. A consumer must never
// infer the encoding from an absent tag.
type PatchType string

const (
	// PatchTypeFull replaces the whole object with the patch contents.
	PatchTypeFull PatchType = "Full"
	// PatchTypeJSONPatch is an RFC 6902 JSON Patch.
	PatchTypeJSONPatch PatchType = "JSONPatch"
	// PatchTypeJSONMergePatch is an RFC 7386 JSON Merge Patch.
	PatchTypeJSONMergePatch PatchType = "JSONMergePatch"
)

// GroupVersionKind unambiguously identifies a kind.
type GroupVersionKind struct {
	Group   string `json:"group"`
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

// GroupVersionResource unambiguously identifies a resource.
type GroupVersionResource struct {
	Group    string `json:"group"`
	Version  string `json:"version"`
	Resource string `json:"resource"`
}

// AdmissionReview is the envelope of an admission review. Request is set on
// the way in, Response on the way out.
type AdmissionReview struct {
	TypeMeta `json:",inline"`

	Request  *AdmissionRequest  `json:"request,omitempty"`
	Response *AdmissionResponse `json:"response,omitempty"`
}

// AdmissionRequest describes the operation being admitted.
type AdmissionRequest struct {
	// UID correlates the request with its response.
	UID types.UID `json:"uid"`

	Kind        GroupVersionKind     `json:"kind"`
	Resource    GroupVersionResource `json:"resource"`
	SubResource string               `json:"subResource,omitempty"`

	// RequestKind and RequestResource differ from Kind and Resource when the
	// API server converted the object before sending it.
	RequestKind        *GroupVersionKind     `json:"requestKind,omitempty"`
	RequestResource    *GroupVersionResource `json:"requestResource,omitempty"`
	RequestSubResource string                `json:"requestSubResource,omitempty"`

	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`

	Operation Operation `json:"operation"`
	UserInfo  UserInfo  `json:"userInfo"`

	Object    *runtime.RawExtension `json:"object,omitempty"`
	OldObject *runtime.RawExtension `json:"oldObject,omitempty"`

	DryRun *bool `json:"dryRun,omitempty"`

	// Options are preserved but never interpreted.
	Options map[string]runtime.RawExtension `json:"options,omitempty"`
}

// AdmissionResponse is the verdict of an admission module.
type AdmissionResponse struct {
	// UID always equals the UID of the request.
	UID     types.UID `json:"uid"`
	Allowed bool      `json:"allowed"`

	// Result explains a denial.
	Result *Status `json:"status,omitempty"`

	// Patch and PatchType are only set by a mutating module that allowed the
	// request. Patch is base64 encoded on the wire.
	Patch     []byte     `json:"patch,omitempty"`
	PatchType *PatchType `json:"patchType,omitempty"`

	AuditAnnotations map[string]string `json:"auditAnnotations,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
}
