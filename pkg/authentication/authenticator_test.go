// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=./interfaces.go

func newAuthenticator(verifier TokenVerifierInterface, refresher RefresherInterface) *Authenticator {
	return NewAuthenticator(verifier, refresher, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestAuthenticator_Authenticate(t *testing.T) {
	rotatedPair := &TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	testCases := []struct {
		name           string
		creds          Credentials
		setupMocks     func(*MockTokenVerifierInterface, *MockRefresherInterface)
		expectErr      bool
		expectedUserID string
		expectRotation bool
	}{
		{
			name:       "no credentials",
			creds:      Credentials{},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {},
			expectErr:  true,
		},
		{
			name:  "valid access token",
			creds: Credentials{AccessToken: "access"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "access").Return("user-1", "chair@example.com", nil)
			},
			expectedUserID: "user-1",
		},
		{
			name:  "invalid access token is terminal",
			creds: Credentials{AccessToken: "garbage", RefreshToken: "refresh"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "garbage").Return("", "", ErrTokenInvalid)
				// No refresh: a forged token must not turn into a rotation.
			},
			expectErr: true,
		},
		{
			name:  "expired access token without refresh token",
			creds: Credentials{AccessToken: "expired"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "expired").Return("", "", fmt.Errorf("%w: past expiry", ErrTokenExpired))
			},
			expectErr: true,
		},
		{
			name:  "expired access token rotates the pair",
			creds: Credentials{AccessToken: "expired", RefreshToken: "refresh"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "expired").Return("", "", fmt.Errorf("%w: past expiry", ErrTokenExpired))
				r.EXPECT().Refresh(gomock.Any(), "refresh").Return(rotatedPair, nil)
				v.EXPECT().VerifyToken(gomock.Any(), "new-access").Return("user-1", "chair@example.com", nil)
			},
			expectedUserID: "user-1",
			expectRotation: true,
		},
		{
			name:  "refresh token only",
			creds: Credentials{RefreshToken: "refresh"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				r.EXPECT().Refresh(gomock.Any(), "refresh").Return(rotatedPair, nil)
				v.EXPECT().VerifyToken(gomock.Any(), "new-access").Return("user-1", "chair@example.com", nil)
			},
			expectedUserID: "user-1",
			expectRotation: true,
		},
		{
			name:  "refresh exchange failure",
			creds: Credentials{RefreshToken: "consumed"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				r.EXPECT().Refresh(gomock.Any(), "consumed").Return(nil, errors.New("invalid_grant"))
			},
			expectErr: true,
		},
		{
			name:  "refreshed token failing verification is terminal",
			creds: Credentials{RefreshToken: "refresh"},
			setupMocks: func(v *MockTokenVerifierInterface, r *MockRefresherInterface) {
				r.EXPECT().Refresh(gomock.Any(), "refresh").Return(rotatedPair, nil)
				v.EXPECT().VerifyToken(gomock.Any(), "new-access").Return("", "", ErrTokenInvalid)
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			mockRefresher := NewMockRefresherInterface(ctrl)
			tc.setupMocks(mockVerifier, mockRefresher)

			principal, err := newAuthenticator(mockVerifier, mockRefresher).Authenticate(context.Background(), tc.creds)
			if tc.expectErr {
				if !errors.Is(err, ErrUnauthenticated) {
					t.Fatalf("expected ErrUnauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if principal.UserID != tc.expectedUserID {
				t.Errorf("expected user %s, got %s", tc.expectedUserID, principal.UserID)
			}
			if tc.expectRotation != (principal.NewTokens != nil) {
				t.Errorf("expected rotation=%v, got NewTokens=%v", tc.expectRotation, principal.NewTokens)
			}
		})
	}
}
