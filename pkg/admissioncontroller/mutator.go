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
	"k8s.io/klog/v2"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/patch"
	"kpt.dev/kubereview/pkg/status"
)

// Mutation is the outcome of a mutating admission decision.
type Mutation struct {
	Verdict
	// Object is the transformed object. It is only read when the request is
	// allowed. A nil Object means the object is admitted unchanged.
	Object interface{}
}

// MutateFunc decides whether req is allowed and how its object changes. It
// must be a pure function of its arguments, and applying it to its own output
// must not change the object further.
type MutateFunc[S any] func(req *reviewv1.AdmissionRequest, settings S) (*Mutation, error)

// Mutator is a mutating admission module with settings of type S.
type Mutator[S any] struct {
	Mutate MutateFunc[S]
	// Defaults returns the settings used when none are supplied.
	Defaults func() S
	// PatchType is the encoding of the patches the module emits.
	PatchType reviewv1.PatchType
}

var _ Admitter = &Mutator[struct{}]{}

// Review runs the mutation on ar with the passed settings. An allowed response
// always carries a patch; a denied one never does.
func (m *Mutator[S]) Review(ar *reviewv1.AdmissionReview, settings S) (*reviewv1.AdmissionReview, error) {
	req, err := request(ar)
	if err != nil {
		return nil, err
	}
	mutation, err := m.Mutate(req, settings)
	if err != nil {
		return nil, err
	}
	if mutation == nil {
		return nil, status.InternalError("mutation returned no verdict")
	}
	klog.V(2).Infof("Admission decision for %s %s/%s: allowed=%t",
		req.Kind.Kind, req.Namespace, req.Name, mutation.Allowed)

	result := response(ar, &mutation.Verdict)
	if !mutation.Allowed {
		return result, nil
	}
	p, err := m.patch(req, mutation.Object)
	if err != nil {
		return nil, err
	}
	p.Into(result.Response)
	return result, nil
}

// Admit implements Admitter.
func (m *Mutator[S]) Admit(ar *reviewv1.AdmissionReview) (*reviewv1.AdmissionReview, error) {
	return m.Review(ar, m.Defaults())
}

func (m *Mutator[S]) patch(req *reviewv1.AdmissionRequest, object interface{}) (*patch.Patch, error) {
	var original []byte
	if req.Object != nil {
		original = req.Object.Raw
	}
	if len(original) == 0 && (object == nil || m.PatchType != reviewv1.PatchTypeFull) {
		return nil, status.MissingFieldError("request.object")
	}

	transformed := original
	if object != nil {
		var err error
		transformed, err = codec.Encode(object, "mutated object")
		if err != nil {
			return nil, err
		}
	}
	return patch.Generate(m.PatchType, original, transformed)
}
