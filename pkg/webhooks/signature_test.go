// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_identity.go github.com/canonical/handbook-service/internal/identity ClientInterface

func newVerifier(secret string, at time.Time) *SignatureVerifier {
	v := NewSignatureVerifier(secret, 5*time.Minute)
	v.now = func() time.Time { return at }
	return v
}

func TestSignatureVerifier_Verify(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	body := []byte(`{"id":"evt_1","type":"invoice.paid","created":1700000000,"data":{}}`)

	testCases := []struct {
		name        string
		header      func(v *SignatureVerifier) string
		body        []byte
		expectedErr error
	}{
		{
			name:   "valid signature",
			header: func(v *SignatureVerifier) string { return v.Sign(now.Unix(), body) },
			body:   body,
		},
		{
			name:        "missing header",
			header:      func(v *SignatureVerifier) string { return "" },
			body:        body,
			expectedErr: ErrMissingSignature,
		},
		{
			name: "tampered body",
			header: func(v *SignatureVerifier) string {
				return v.Sign(now.Unix(), []byte(`{"id":"evt_other"}`))
			},
			body:        body,
			expectedErr: ErrBadSignature,
		},
		{
			name: "wrong secret",
			header: func(v *SignatureVerifier) string {
				return NewSignatureVerifier("other-secret", 5*time.Minute).Sign(now.Unix(), body)
			},
			body:        body,
			expectedErr: ErrBadSignature,
		},
		{
			name: "timestamp too old",
			header: func(v *SignatureVerifier) string {
				return v.Sign(now.Add(-6*time.Minute).Unix(), body)
			},
			body:        body,
			expectedErr: ErrStaleTimestamp,
		},
		{
			name: "timestamp from the future",
			header: func(v *SignatureVerifier) string {
				return v.Sign(now.Add(6*time.Minute).Unix(), body)
			},
			body:        body,
			expectedErr: ErrStaleTimestamp,
		},
		{
			name: "timestamp swapped after signing",
			header: func(v *SignatureVerifier) string {
				signed := v.Sign(now.Add(-10*time.Minute).Unix(), body)
				_, rest, _ := strings.Cut(signed, ",")
				return "t=" + strconv.FormatInt(now.Unix(), 10) + "," + rest
			},
			body:        body,
			expectedErr: ErrBadSignature,
		},
		{
			name:        "malformed header",
			header:      func(v *SignatureVerifier) string { return "nonsense" },
			body:        body,
			expectedErr: ErrBadSignature,
		},
		{
			name:        "missing v1 element",
			header:      func(v *SignatureVerifier) string { return "t=1700000000" },
			body:        body,
			expectedErr: ErrBadSignature,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := newVerifier("test-secret", now)
			err := v.Verify(tc.header(v), tc.body)

			if tc.expectedErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}
