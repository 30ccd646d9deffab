// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/authentication"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/subscription"
	"github.com/canonical/handbook-service/pkg/tenant"
)

type pipelineFixture struct {
	resolver      *MockResolverInterface
	authenticator *MockAuthenticatorInterface
	authorizer    *MockAuthorizerInterface
	gate          *MockGateInterface
	pipeline      *Pipeline
}

func newPipelineFixture(ctrl *gomock.Controller) *pipelineFixture {
	f := &pipelineFixture{
		resolver:      NewMockResolverInterface(ctrl),
		authenticator: NewMockAuthenticatorInterface(ctrl),
		authorizer:    NewMockAuthorizerInterface(ctrl),
		gate:          NewMockGateInterface(ctrl),
	}
	f.pipeline = NewPipeline(f.resolver, f.authenticator, f.authorizer, f.gate,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	return f
}

func org() *types.Organization {
	return &types.Organization{ID: "org-1", Slug: "brf-eken", Name: "BRF Eken"}
}

func memberPrincipal() *authentication.Principal {
	return &authentication.Principal{UserID: "user-1", Email: "chair@example.com"}
}

func allowGate() subscription.GateResult {
	return subscription.GateResult{Allowed: true}
}

func TestPipeline_Evaluate(t *testing.T) {
	memberRequest := &Request{
		Host:        "brf-eken.handbok.example",
		Credentials: authentication.Credentials{AccessToken: "token"},
		Class:       authorization.ActionWrite,
		Kind:        authorization.KindPage,
		ResourceID:  "page-1",
	}

	testCases := []struct {
		name         string
		request      *Request
		setupMocks   func(*pipelineFixture)
		expectedKind VerdictKind
	}{
		{
			name:    "unknown tenant is not found",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), "brf-eken.handbok.example", "").Return(nil, tenant.ErrNoTenant)
			},
			expectedKind: VerdictNotFound,
		},
		{
			name:    "resolver outage is internal",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedKind: VerdictInternal,
		},
		{
			name: "public read skips authentication",
			request: &Request{
				Host:   "brf-eken.handbok.example",
				Class:  authorization.ActionRead,
				Kind:   authorization.KindHandbook,
				Public: true,
			},
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.gate.EXPECT().Check(gomock.Any(), "org-1", authorization.ActionRead, authorization.KindHandbook).Return(allowGate())
				// No authenticator or authorizer calls.
			},
			expectedKind: VerdictAllow,
		},
		{
			name: "public read of a canceled organization redirects to billing",
			request: &Request{
				Host:   "brf-eken.handbok.example",
				Class:  authorization.ActionRead,
				Kind:   authorization.KindHandbook,
				Public: true,
			},
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.gate.EXPECT().Check(gomock.Any(), "org-1", authorization.ActionRead, authorization.KindHandbook).
					Return(subscription.GateResult{RedirectToBilling: true, Reason: "subscription canceled"})
			},
			expectedKind: VerdictRedirectToBilling,
		},
		{
			name: "member read of a canceled organization redirects to billing",
			request: &Request{
				Host:        "brf-eken.handbok.example",
				Credentials: authentication.Credentials{AccessToken: "token"},
				Class:       authorization.ActionRead,
				Kind:        authorization.KindPage,
				ResourceID:  "page-1",
			},
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), "user-1", "org-1", authorization.ActionRead, authorization.KindPage, "page-1").
					Return(authorization.Decision{Effect: authorization.EffectAllow})
				f.gate.EXPECT().Check(gomock.Any(), "org-1", authorization.ActionRead, authorization.KindPage).
					Return(subscription.GateResult{RedirectToBilling: true, Reason: "subscription canceled"})
			},
			expectedKind: VerdictRedirectToBilling,
		},
		{
			name: "public flag does not bypass authentication for writes",
			request: &Request{
				Host:   "brf-eken.handbok.example",
				Class:  authorization.ActionWrite,
				Kind:   authorization.KindPage,
				Public: true,
			},
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, authentication.ErrUnauthenticated)
			},
			expectedKind: VerdictRedirectToLogin,
		},
		{
			name:    "no session redirects to login",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, authentication.ErrUnauthenticated)
			},
			expectedKind: VerdictRedirectToLogin,
		},
		{
			name:    "authenticated non-member is sent to the join flow not login",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), "user-1", "org-1", authorization.ActionWrite, authorization.KindPage, "page-1").
					Return(authorization.Decision{Effect: authorization.EffectDenyUnauthorized, Reason: "no membership"})
			},
			expectedKind: VerdictRequestAccess,
		},
		{
			name:    "insufficient role is forbidden before the gate runs",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(authorization.Decision{Effect: authorization.EffectDenyForbidden, Reason: "role member below editor"})
				// No gate call: a billing redirect must not mask the denial.
			},
			expectedKind: VerdictForbidden,
		},
		{
			name:    "cross-tenant resource is not found",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(authorization.Decision{Effect: authorization.EffectDenyNotFound, Reason: "resource not in tenant"})
			},
			expectedKind: VerdictNotFound,
		},
		{
			name:    "authorization infrastructure failure is internal",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(authorization.Decision{Effect: authorization.EffectError, Reason: "membership lookup failed"})
			},
			expectedKind: VerdictInternal,
		},
		{
			name:    "lapsed subscription redirects to billing",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(authorization.Decision{Effect: authorization.EffectAllow})
				f.gate.EXPECT().Check(gomock.Any(), "org-1", authorization.ActionWrite, authorization.KindPage).
					Return(subscription.GateResult{RedirectToBilling: true, Reason: "subscription past_due"})
			},
			expectedKind: VerdictRedirectToBilling,
		},
		{
			name:    "full allow",
			request: memberRequest,
			setupMocks: func(f *pipelineFixture) {
				f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(org(), nil)
				f.authenticator.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(memberPrincipal(), nil)
				f.authorizer.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(authorization.Decision{Effect: authorization.EffectAllow})
				f.gate.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(allowGate())
			},
			expectedKind: VerdictAllow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newPipelineFixture(ctrl)
			tc.setupMocks(f)

			verdict := f.pipeline.Evaluate(context.Background(), tc.request)
			if verdict.Kind != tc.expectedKind {
				t.Fatalf("expected %s, got %s (%s)", tc.expectedKind, verdict.Kind, verdict.Reason)
			}
			if verdict.Kind == VerdictAllow && verdict.Org == nil {
				t.Error("allow verdict must carry the organization")
			}
		})
	}
}
