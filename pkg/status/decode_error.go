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

// DecodeErrorCode is the error code for input bytes that do not parse into the
// expected envelope shape.
const DecodeErrorCode = "2001"

var decodeErrorBuilder = NewErrorBuilder(DecodeErrorCode)

// DecodeError reports that the named document could not be decoded.
func DecodeError(err error, what string) Error {
	return decodeErrorBuilder.Sprintf("unable to decode %s", what).Wrap(err).Build()
}

// DecodeErrorf reports a malformed document that json decoding accepted but
// that is missing its mandatory parts.
func DecodeErrorf(format string, a ...interface{}) Error {
	return decodeErrorBuilder.Sprintf(format, a...).Build()
}
