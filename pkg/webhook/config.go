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

package webhook

import (
	"encoding/json"
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"kpt.dev/kubereview/pkg/dispatch"
)

// Config configures the webhook server. It is read from a YAML or JSON file.
type Config struct {
	// ListenAddress is the host:port the server listens on.
	ListenAddress string `json:"listenAddress"`
	// CertFile and KeyFile are the serving certificate and its key. The server
	// only serves plain HTTP when both are empty.
	CertFile string `json:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty"`
	// Settings are the settings passed to each capability. Capabilities
	// without an entry run with their defaults.
	Settings map[string]json.RawMessage `json:"settings,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: ":8443",
	}
}

// LoadConfig reads the configuration at path. Unset fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, cfg.Validate()
}

// Validate returns an error if the configuration cannot be served.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listenAddress must be set")
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("certFile and keyFile must be set together")
	}
	known := sets.NewString(dispatch.Validate, dispatch.Mutate, dispatch.Authn, dispatch.Authz)
	var unknown []string
	for capability := range c.Settings {
		if !known.Has(capability) {
			unknown = append(unknown, capability)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.Errorf("settings for unknown capabilities %v, must be among %v", unknown, known.List())
	}
	return nil
}

// TLS returns true if the server serves HTTPS.
func (c *Config) TLS() bool {
	return c.CertFile != ""
}
