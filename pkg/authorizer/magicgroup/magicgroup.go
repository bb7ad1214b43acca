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

// Package magicgroup is a subject access review module that either allows
// everything or lets the members of one group act on resources with one name.
package magicgroup

import (
	"fmt"

	"k8s.io/utils/pointer"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/authorizer"
)

// Settings configure the module.
type Settings struct {
	// AllowAll allows every action, whatever the rule below decides.
	AllowAll *bool `json:"allowAll" validate:"required"`
	// MagicGroup and MagicName form the rule: members of MagicGroup may act
	// on resources named MagicName. The rule only applies if both are set.
	MagicGroup *string `json:"magicGroup,omitempty"`
	MagicName  *string `json:"magicName,omitempty"`
}

// DefaultSettings allow everything.
func DefaultSettings() Settings {
	return Settings{AllowAll: pointer.Bool(true)}
}

// Authorize decides on an action.
//
// The rule is evaluated first: it allows the action if the subject is in the
// magic group and the action targets a resource with the magic name. AllowAll
// then overrides a negative outcome. Anything not allowed gets no opinion;
// the module never explicitly denies.
func Authorize(attrs *authorizer.Attributes, s Settings) (*reviewv1.SubjectAccessReviewStatus, error) {
	allowed := false
	reason := "no rule matched"
	if s.MagicGroup != nil && s.MagicName != nil {
		if attrs.InGroup(*s.MagicGroup) && attrs.IsResourceRequest() && attrs.Name() == *s.MagicName {
			allowed = true
			reason = fmt.Sprintf("member of %q acting on %q", *s.MagicGroup, *s.MagicName)
		}
	}
	if pointer.BoolDeref(s.AllowAll, false) {
		allowed = true
		reason = "all actions are allowed"
	}

	if allowed {
		return authorizer.Allow(reason), nil
	}
	return authorizer.NoOpinion(reason), nil
}

// New returns the module.
func New() *authorizer.Authorizer[Settings] {
	return &authorizer.Authorizer[Settings]{
		Authorize: Authorize,
		Defaults:  DefaultSettings,
	}
}
