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

// UnknownCapabilityErrorCode is the error code for a call to a capability the
// module does not export.
const UnknownCapabilityErrorCode = "2005"

var unknownCapabilityErrorBuilder = NewErrorBuilder(UnknownCapabilityErrorCode)

// UnknownCapabilityError reports a call to an unregistered capability.
func UnknownCapabilityError(name string, known []string) Error {
	return unknownCapabilityErrorBuilder.
		Sprintf("module does not export %q (exports: %v)", name, known).
		Build()
}
