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

// Package settings resolves the settings a review module runs with.
//
// Settings are optional. When a request document carries none, the module runs
// with its compiled-in defaults. When it carries some, they are decoded
// strictly into a fresh value: unknown or duplicate fields are rejected, and
// fields tagged `validate:"required"` must be present. Defaults are never
// merged into a supplied payload.
package settings

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
	utiljson "sigs.k8s.io/json"

	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/status"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Resolve returns the settings carried by req, or defaults() when it carries
// none. defaults must return a valid settings value.
func Resolve[S any](req *codec.Request, defaults func() S) (S, error) {
	if !req.HasSettings() {
		klog.V(2).Info("No settings supplied, using defaults")
		return defaults(), nil
	}
	return Decode[S](req.Settings)
}

// Decode strictly decodes a settings payload.
func Decode[S any](data []byte) (S, error) {
	var s S
	strictErrs, err := utiljson.UnmarshalStrict(data, &s,
		utiljson.DisallowDuplicateFields, utiljson.DisallowUnknownFields)
	if err != nil {
		return s, status.SettingsError(err)
	}
	if len(strictErrs) > 0 {
		return s, status.SettingsError(multierr.Combine(strictErrs...))
	}
	if err := validateRequired(&s); err != nil {
		return s, status.SettingsError(err)
	}
	return s, nil
}

func validateRequired(s interface{}) error {
	if reflect.Indirect(reflect.ValueOf(s)).Kind() != reflect.Struct {
		return nil
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var result error
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			result = multierr.Append(result, errors.Errorf("missing field %q", fe.Field()))
		} else {
			result = multierr.Append(result, errors.Errorf("field %q failed %q", fe.Field(), fe.Tag()))
		}
	}
	return result
}
