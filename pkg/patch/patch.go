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

// Package patch encodes the change a mutating admission module made to an
// object, and applies such a change back.
package patch

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"
	gomodulesjsonpatch "gomodules.xyz/jsonpatch/v2"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

// Patch is an encoded object change together with the tag naming its
// encoding. The tag always travels with the bytes.
type Patch struct {
	Bytes []byte
	Type  reviewv1.PatchType
}

// Types lists the supported patch types.
var Types = []reviewv1.PatchType{
	reviewv1.PatchTypeFull,
	reviewv1.PatchTypeJSONPatch,
	reviewv1.PatchTypeJSONMergePatch,
}

// ParseType returns the patch type named s.
func ParseType(s string) (reviewv1.PatchType, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.Errorf("unknown patch type %q, must be one of %v", s, Types)
}

// Generate encodes the difference between the original and the transformed
// object as a patch of type t. Both objects must be JSON.
//
// A Full patch is the transformed object itself: applying it means replacing
// the original.
func Generate(t reviewv1.PatchType, original, transformed []byte) (*Patch, error) {
	switch t {
	case reviewv1.PatchTypeFull:
		if !json.Valid(transformed) {
			return nil, status.EncodeError(errors.New("transformed object is not valid JSON"), "patch")
		}
		return &Patch{Bytes: transformed, Type: t}, nil
	case reviewv1.PatchTypeJSONPatch:
		ops, err := gomodulesjsonpatch.CreatePatch(original, transformed)
		if err != nil {
			return nil, status.EncodeError(err, "patch")
		}
		// An empty patch is "[]", not "null".
		if ops == nil {
			ops = []gomodulesjsonpatch.Operation{}
		}
		data, err := json.Marshal(ops)
		if err != nil {
			return nil, status.EncodeError(err, "patch")
		}
		return &Patch{Bytes: data, Type: t}, nil
	case reviewv1.PatchTypeJSONMergePatch:
		data, err := jsonpatch.CreateMergePatch(original, transformed)
		if err != nil {
			return nil, status.EncodeError(err, "patch")
		}
		return &Patch{Bytes: data, Type: t}, nil
	default:
		return nil, status.InternalErrorf("unknown patch type %q", t)
	}
}

// Apply applies p to the original object and returns the patched object.
func Apply(p *Patch, original []byte) ([]byte, error) {
	switch p.Type {
	case reviewv1.PatchTypeFull:
		if !json.Valid(p.Bytes) {
			return nil, errors.New("Full patch is not valid JSON")
		}
		return p.Bytes, nil
	case reviewv1.PatchTypeJSONPatch:
		decoded, err := jsonpatch.DecodePatch(p.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "decoding JSONPatch")
		}
		patched, err := decoded.Apply(original)
		return patched, errors.Wrap(err, "applying JSONPatch")
	case reviewv1.PatchTypeJSONMergePatch:
		patched, err := jsonpatch.MergePatch(original, p.Bytes)
		return patched, errors.Wrap(err, "applying JSONMergePatch")
	default:
		return nil, errors.Errorf("unknown patch type %q", p.Type)
	}
}

// Into sets the patch and patch type of resp.
func (p *Patch) Into(resp *reviewv1.AdmissionResponse) {
	t := p.Type
	resp.Patch = p.Bytes
	resp.PatchType = &t
}
