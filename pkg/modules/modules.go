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

// Package modules assembles the review modules shipped with kubereview into
// the capability table a module binary exports.
package modules

import (
	"kpt.dev/kubereview/pkg/admissioncontroller/annotator"
	"kpt.dev/kubereview/pkg/admissioncontroller/namevalidator"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/authenticator/statictoken"
	"kpt.dev/kubereview/pkg/authorizer/magicgroup"
	"kpt.dev/kubereview/pkg/dispatch"
)

// NewRegistry returns the capability table, with the mutating module emitting
// patches of type patchType.
func NewRegistry(patchType reviewv1.PatchType) *dispatch.Registry {
	return dispatch.NewRegistry(map[string]dispatch.Handler{
		dispatch.Validate: namevalidator.New(),
		dispatch.Mutate:   annotator.New(patchType),
		dispatch.Authn:    statictoken.New(),
		dispatch.Authz:    magicgroup.New(),
	})
}

// Default is the capability table of the module binary. Hosts apply the
// whole transformed object, so mutations are emitted as Full patches.
var Default = NewRegistry(reviewv1.PatchTypeFull)
