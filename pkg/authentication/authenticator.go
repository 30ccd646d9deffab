// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
)

// ErrUnauthenticated is the terminal failure for a request that could not
// be authenticated. Wrapped reasons distinguish missing, expired and
// invalid credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

var _ AuthenticatorInterface = (*Authenticator)(nil)

// Authenticator validates a request's credential pair and, when the access
// token is expired but a refresh token is present, rotates the pair through
// the single-flight refresher.
type Authenticator struct {
	verifier  TokenVerifierInterface
	refresher RefresherInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthenticator(
	verifier TokenVerifierInterface,
	refresher RefresherInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Authenticator {
	return &Authenticator{
		verifier:  verifier,
		refresher: refresher,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, creds Credentials) (*Principal, error) {
	ctx, span := a.tracer.Start(ctx, "authentication.Authenticator.Authenticate")
	defer span.End()

	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no credentials", ErrUnauthenticated)
	}

	if creds.AccessToken != "" {
		subject, email, err := a.verifier.VerifyToken(ctx, creds.AccessToken)
		if err == nil {
			return &Principal{UserID: subject, Email: email}, nil
		}
		if !errors.Is(err, ErrTokenExpired) {
			a.logger.Security().AuthnFailure(subject, "invalid access token")
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
	}

	if creds.RefreshToken == "" {
		return nil, fmt.Errorf("%w: access token expired and no refresh token", ErrUnauthenticated)
	}

	pair, err := a.refresher.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		// Terminal for this request only; the session itself is not
		// corrupted for requests carrying the rotated pair.
		a.logger.Security().AuthnFailure("", "refresh exchange failed")
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	subject, email, err := a.verifier.VerifyToken(ctx, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: refreshed token failed verification: %v", ErrUnauthenticated, err)
	}

	a.logger.Security().TokenRotation(subject)

	return &Principal{
		UserID:    subject,
		Email:     email,
		NewTokens: pair,
	}, nil
}
