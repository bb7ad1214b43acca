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

// EncodeErrorCode is the error code for a computed value that cannot be
// serialized.
const EncodeErrorCode = "2004"

var encodeErrorBuilder = NewErrorBuilder(EncodeErrorCode)

// EncodeError reports that the named value could not be encoded.
func EncodeError(err error, what string) Error {
	return encodeErrorBuilder.Sprintf("unable to encode %s", what).Wrap(err).Build()
}
