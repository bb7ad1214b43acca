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

package configuration

// GroupName is the API group kubereview names its objects under.
const GroupName = "kubereview.dev"

// ShortName is the short name of the webhook configurations.
const ShortName = "kubereview"

// Name is both:
// 1) The metadata.name of the Validating- and MutatingWebhookConfiguration, and
// 2) The prefix of the .name of every webhook in them.
const Name = ShortName + "." + GroupName
