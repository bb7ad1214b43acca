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

// Package configuration builds the admission webhook configurations that
// point an API server at a kubereview webhook server.
package configuration

import (
	admissionv1 "k8s.io/api/admissionregistration/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/pointer"
)

// Options describe where the webhook server runs.
type Options struct {
	// ServiceName and ServiceNamespace name the Service in front of the
	// webhook server.
	ServiceName      string
	ServiceNamespace string
	// ServicePort is the port of the Service.
	ServicePort int32
	// CABundle is the PEM encoded CA that signed the serving certificate.
	CABundle []byte
	// ValidatePath and MutatePath are the paths the server handles
	// admission reviews on.
	ValidatePath string
	MutatePath   string
	// FailClosed rejects requests when the webhook cannot be reached or
	// faults. Otherwise they are admitted.
	FailClosed bool
}

// podRules match every write to a pod.
func podRules() []admissionv1.RuleWithOperations {
	scope := admissionv1.NamespacedScope
	return []admissionv1.RuleWithOperations{{
		Operations: []admissionv1.OperationType{admissionv1.Create, admissionv1.Update},
		Rule: admissionv1.Rule{
			APIGroups:   []string{""},
			APIVersions: []string{"v1"},
			Resources:   []string{"pods"},
			Scope:       &scope,
		},
	}}
}

func (o Options) clientConfig(path string) admissionv1.WebhookClientConfig {
	return admissionv1.WebhookClientConfig{
		Service: &admissionv1.ServiceReference{
			Namespace: o.ServiceNamespace,
			Name:      o.ServiceName,
			Path:      pointer.String(path),
			Port:      pointer.Int32(o.ServicePort),
		},
		CABundle: o.CABundle,
	}
}

func (o Options) failurePolicy() *admissionv1.FailurePolicyType {
	policy := admissionv1.Ignore
	if o.FailClosed {
		policy = admissionv1.Fail
	}
	return &policy
}

// Validating returns the configuration registering the validating webhook.
func Validating(o Options) *admissionv1.ValidatingWebhookConfiguration {
	sideEffects := admissionv1.SideEffectClassNone
	equivalent := admissionv1.Equivalent
	return &admissionv1.ValidatingWebhookConfiguration{
		TypeMeta: metav1.TypeMeta{
			APIVersion: admissionv1.SchemeGroupVersion.String(),
			Kind:       "ValidatingWebhookConfiguration",
		},
		ObjectMeta: metav1.ObjectMeta{Name: Name},
		Webhooks: []admissionv1.ValidatingWebhook{{
			Name:                    "validate." + Name,
			ClientConfig:            o.clientConfig(o.ValidatePath),
			Rules:                   podRules(),
			FailurePolicy:           o.failurePolicy(),
			MatchPolicy:             &equivalent,
			SideEffects:             &sideEffects,
			AdmissionReviewVersions: []string{"v1"},
			TimeoutSeconds:          pointer.Int32(3),
		}},
	}
}

// Mutating returns the configuration registering the mutating webhook.
func Mutating(o Options) *admissionv1.MutatingWebhookConfiguration {
	sideEffects := admissionv1.SideEffectClassNone
	equivalent := admissionv1.Equivalent
	reinvocation := admissionv1.NeverReinvocationPolicy
	return &admissionv1.MutatingWebhookConfiguration{
		TypeMeta: metav1.TypeMeta{
			APIVersion: admissionv1.SchemeGroupVersion.String(),
			Kind:       "MutatingWebhookConfiguration",
		},
		ObjectMeta: metav1.ObjectMeta{Name: Name},
		Webhooks: []admissionv1.MutatingWebhook{{
			Name:                    "mutate." + Name,
			ClientConfig:            o.clientConfig(o.MutatePath),
			Rules:                   podRules(),
			FailurePolicy:           o.failurePolicy(),
			MatchPolicy:             &equivalent,
			SideEffects:             &sideEffects,
			AdmissionReviewVersions: []string{"v1"},
			TimeoutSeconds:          pointer.Int32(3),
			ReinvocationPolicy:      &reinvocation,
		}},
	}
}
