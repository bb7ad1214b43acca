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

// Package webhook serves the review modules as Kubernetes webhooks, so that a
// real API server can call them: admission reviews on ValidatePath and
// MutatePath, token reviews on AuthenticatePath and subject access reviews on
// AuthorizePath.
//
// Requests and responses use the k8s.io/api review types. Mutations are
// returned as JSONPatch, the only patch type the API server accepts.
package webhook

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/status"
)

// Server serves a capability table over HTTP.
type Server struct {
	cfg      *Config
	registry *dispatch.Registry
	gatherer prometheus.Gatherer
	metrics  *Metrics
}

// NewServer returns a Server for the capabilities in registry. Metrics are
// registered with, and served from, reg.
func NewServer(cfg *Config, registry *dispatch.Registry, reg *prometheus.Registry) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		gatherer: reg,
		metrics:  NewMetrics(reg),
	}
}

// Handler returns the handler for every path the server serves.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ValidatePath, ServeFunc(s.Responder(dispatch.Validate, admissionReviews)))
	mux.HandleFunc(MutatePath, ServeFunc(s.Responder(dispatch.Mutate, admissionReviews)))
	mux.HandleFunc(AuthenticatePath, ServeFunc(s.Responder(dispatch.Authn, tokenReviews)))
	mux.HandleFunc(AuthorizePath, ServeFunc(s.Responder(dispatch.Authz, subjectAccessReviews)))
	mux.Handle(MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Responder returns the handler reviewing requests of kind with capability.
func (s *Server) Responder(capability string, kind reviewKind) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Run the type sanity checks: expect the correct content type,
		// then try to deserialize, and bomb out on invalid TypeMeta.
		contentType := req.Header.Get("Content-Type")
		if contentType != contentTypeJSON {
			klog.Errorf("contentType=%q, expect %s", contentType, contentTypeJSON)
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		var body []byte
		if req.Body != nil {
			data, err := ioutil.ReadAll(req.Body)
			if err != nil {
				s.fail(w, capability, status.DecodeError(err, "request body"))
				return
			}
			body = data
		}
		in, err := kind.decode(body)
		if err != nil {
			s.fail(w, capability, err)
			return
		}

		out, err := s.review(capability, in)
		if err != nil {
			s.fail(w, capability, err)
			return
		}
		resp, allowed, err := kind.encode(out)
		if err != nil {
			s.fail(w, capability, err)
			return
		}
		data, err := json.Marshal(resp)
		if err != nil {
			s.fail(w, capability, status.EncodeError(err, "response"))
			return
		}

		s.metrics.ReviewDuration.WithLabelValues(capability, strconv.FormatBool(allowed)).Observe(time.Since(start).Seconds())
		klog.V(2).Infof("Response: %s", data)
		w.Header().Set("Content-Type", contentTypeJSON)
		if _, err := w.Write(data); err != nil {
			klog.Errorf("Writing response: %v", err)
		}
	}
}

// review runs capability on a wire model review with the configured
// settings.
func (s *Server) review(capability string, in interface{}) (interface{}, error) {
	h, ok := s.registry.Lookup(capability)
	if !ok {
		return nil, status.UnknownCapabilityError(capability, s.registry.Capabilities())
	}
	payload, err := codec.Encode(in, "review")
	if err != nil {
		return nil, err
	}
	return h.Handle(&codec.Request{Request: payload, Settings: s.cfg.Settings[capability]})
}

// fail reports a fault. The API server applies the failure policy of the
// webhook; a fault is never turned into a verdict.
func (s *Server) fail(w http.ResponseWriter, capability string, err error) {
	statusErr := status.From(err)
	s.metrics.ErrorTotal.WithLabelValues(capability, statusErr.Code()).Inc()
	klog.Errorf("Review by %q failed: %v", capability, statusErr)
	http.Error(w, statusErr.Error(), httpStatus(statusErr))
}

func httpStatus(err status.Error) int {
	switch err.Code() {
	case status.DecodeErrorCode, status.ExtractionErrorCode:
		return http.StatusBadRequest
	case status.UnknownCapabilityErrorCode:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddress,
		Handler: s.Handler(),
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("Webhook server listening at: %v", s.cfg.ListenAddress)
		if s.cfg.TLS() {
			errCh <- srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
		} else {
			klog.Warning("No serving certificate configured, serving plain HTTP")
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving webhooks")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		klog.Info("Shutting down webhook server")
		return srv.Shutdown(shutdownCtx)
	}
}
