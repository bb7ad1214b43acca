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

// Package v1 is the wire model of the review protocol: the envelopes a host
// writes to a review module and the envelopes the module writes back.
//
// The shapes follow the Kubernetes admission.k8s.io, authentication.k8s.io and
// authorization.k8s.io review APIs field for field, with two differences that
// matter to a module: every optional field is a pointer or carries omitempty so
// that absent stays absent through a round trip, and the open-ended maps
// (options, extra) hold opaque values that the module preserves without
// interpreting.
package v1
