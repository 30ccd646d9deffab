// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"time"
)

// Credentials is the token pair presented by a request, either as a bearer
// header or as the session cookie pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// TokenPair is an issued access/refresh pair. Rotation invalidates the
// prior refresh token at the identity provider.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Principal is an authenticated acting user. NewTokens is set when the
// pair was rotated while authenticating, so the edge can re-issue cookies.
type Principal struct {
	UserID string
	Email  string

	NewTokens *TokenPair
}

type AuthenticatorInterface interface {
	Authenticate(ctx context.Context, creds Credentials) (*Principal, error)
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string, returning the subject and email
	// claims. Expired tokens return an error matching ErrTokenExpired.
	VerifyToken(ctx context.Context, rawToken string) (subject, email string, err error)
}

type RefresherInterface interface {
	// Refresh exchanges a refresh token for a new pair. Concurrent calls
	// with the same token are coalesced into a single upstream exchange.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
