// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"testing"
)

//go:generate mockgen -build_flags=--mod=mod -package subscription -destination ./mock_subscription.go -source=./interfaces.go

func TestDecodeEvent(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectErr   bool
		expectKind  string
		checkResult func(*testing.T, *Event)
	}{
		{
			name: "checkout completed",
			body: `{
				"id": "evt_1",
				"type": "checkout.completed",
				"created": 1700000000,
				"data": {
					"subscription_id": "sub_1",
					"organization_id": "org-1",
					"plan_type": "standard",
					"trial": true
				}
			}`,
			expectKind: "checkout.completed",
			checkResult: func(t *testing.T, e *Event) {
				p, ok := e.Payload.(CheckoutCompleted)
				if !ok {
					t.Fatalf("expected CheckoutCompleted, got %T", e.Payload)
				}
				if !p.Trial || p.SubscriptionID != "sub_1" {
					t.Errorf("unexpected payload: %+v", p)
				}
			},
		},
		{
			name: "invoice payment failed final",
			body: `{
				"id": "evt_2",
				"type": "invoice.payment_failed",
				"created": 1700000001,
				"data": {"subscription_id": "sub_1", "final": true}
			}`,
			expectKind: "invoice.payment_failed",
			checkResult: func(t *testing.T, e *Event) {
				p := e.Payload.(InvoicePaymentFailed)
				if !p.Final {
					t.Error("expected final flag")
				}
			},
		},
		{
			name: "unknown type is an explicit variant",
			body: `{
				"id": "evt_3",
				"type": "customer.updated",
				"created": 1700000002,
				"data": {"anything": "goes"}
			}`,
			expectKind: "customer.updated",
			checkResult: func(t *testing.T, e *Event) {
				if _, ok := e.Payload.(Unknown); !ok {
					t.Fatalf("expected Unknown, got %T", e.Payload)
				}
			},
		},
		{
			name:      "malformed JSON",
			body:      `{"id": "evt_4"`,
			expectErr: true,
		},
		{
			name:      "missing event id",
			body:      `{"type": "invoice.paid", "created": 1700000003, "data": {"subscription_id": "sub_1"}}`,
			expectErr: true,
		},
		{
			name:      "missing created timestamp",
			body:      `{"id": "evt_5", "type": "invoice.paid", "data": {"subscription_id": "sub_1"}}`,
			expectErr: true,
		},
		{
			name:      "known type with invalid payload",
			body:      `{"id": "evt_6", "type": "subscription.deleted", "created": 1700000004, "data": {}}`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := DecodeEvent([]byte(tc.body))
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Payload.Kind() != tc.expectKind {
				t.Errorf("expected kind %s, got %s", tc.expectKind, event.Payload.Kind())
			}
			if tc.checkResult != nil {
				tc.checkResult(t, event)
			}
		})
	}
}
