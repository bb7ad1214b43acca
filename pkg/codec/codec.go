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

// Package codec reads and writes the documents exchanged between a host and a
// review module.
//
// A host writes one request document:
//
//	{"request": <review>, "settings": <settings>}
//
// where settings is optional, and reads back one response document:
//
//	{"response": <review>, "error": null}
//
// Decoding is case sensitive, tolerates unknown fields and treats null like an
// absent field. Encoding omits absent optional fields.
package codec

import (
	"bytes"
	"encoding/json"

	utiljson "sigs.k8s.io/json"

	"kpt.dev/kubereview/pkg/status"
)

// Request is a request document. Both members are kept raw: the review is
// decoded by the handler that knows its kind, the settings by the resolver
// that knows its shape.
type Request struct {
	Request  json.RawMessage `json:"request"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// HasSettings returns true if the document carries a settings payload. An
// explicit null counts as absent.
func (r *Request) HasSettings() bool {
	return !isAbsent(r.Settings)
}

// Response is a response document. Error is always emitted, and always null:
// a module that fails writes no document at all.
type Response struct {
	Response interface{} `json:"response"`
	Error    *string     `json:"error"`
}

// DecodeRequest decodes a request document. A document without a request is
// malformed.
func DecodeRequest(data []byte) (*Request, error) {
	req := &Request{}
	if err := Decode(data, req, "request document"); err != nil {
		return nil, err
	}
	if isAbsent(req.Request) {
		return nil, status.DecodeErrorf("request document has no %q member", "request")
	}
	return req, nil
}

// EncodeResponse encodes a response document around review.
func EncodeResponse(review interface{}) ([]byte, error) {
	return Encode(&Response{Response: review}, "response document")
}

// Decode decodes data into out. what names the value in the error.
func Decode(data []byte, out interface{}, what string) error {
	if err := utiljson.UnmarshalCaseSensitivePreserveInts(data, out); err != nil {
		return status.DecodeError(err, what)
	}
	return nil
}

// Encode encodes v. what names the value in the error.
func Encode(v interface{}, what string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.EncodeError(err, what)
	}
	return data, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
