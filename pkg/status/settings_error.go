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

package status

// SettingsErrorCode is the error code for a settings payload that is present
// but does not deserialize into the settings of the module.
const SettingsErrorCode = "2003"

var settingsErrorBuilder = NewErrorBuilder(SettingsErrorCode).Sprint("invalid settings")

// SettingsError wraps a settings deserialization problem.
func SettingsError(err error) Error {
	return settingsErrorBuilder.Wrap(err).Build()
}
