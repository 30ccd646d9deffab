// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"
	"errors"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/pkg/authentication"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/subscription"
	"github.com/canonical/handbook-service/pkg/tenant"
)

// Request is one protected request as the pipeline sees it, already
// stripped to the inputs the stages need.
type Request struct {
	Host     string
	PathSlug string

	Credentials authentication.Credentials

	Class      authorization.ActionClass
	Kind       authorization.ResourceKind
	ResourceID string

	// Public marks a route readable without a session. Tenant resolution,
	// the published-only filter and the subscription gate still apply.
	Public bool
}

// Pipeline runs the fixed stage order: tenant, session, permission,
// subscription. A deny at any stage short-circuits; the subscription gate
// never runs for a request that failed authorization, so a billing redirect
// can never mask a permission denial.
type Pipeline struct {
	resolver      tenant.ResolverInterface
	authenticator authentication.AuthenticatorInterface
	authorizer    authorization.AuthorizerInterface
	gate          subscription.GateInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewPipeline(
	resolver tenant.ResolverInterface,
	authenticator authentication.AuthenticatorInterface,
	authorizer authorization.AuthorizerInterface,
	gate subscription.GateInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Pipeline {
	return &Pipeline{
		resolver:      resolver,
		authenticator: authenticator,
		authorizer:    authorizer,
		gate:          gate,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

func (p *Pipeline) Evaluate(ctx context.Context, req *Request) Verdict {
	ctx, span := p.tracer.Start(ctx, "pipeline.Pipeline.Evaluate")
	defer span.End()

	org, err := p.resolver.Resolve(ctx, req.Host, req.PathSlug)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenant) {
			return Verdict{Kind: VerdictNotFound, Reason: "no such tenant"}
		}
		p.logger.Errorf("tenant resolution for %q failed: %v", req.Host, err)
		return Verdict{Kind: VerdictInternal, Reason: "tenant resolution failed"}
	}

	if req.Public && req.Class == authorization.ActionRead {
		if gate := p.gate.Check(ctx, org.ID, req.Class, req.Kind); !gate.Allowed {
			return Verdict{Kind: VerdictRedirectToBilling, Reason: gate.Reason, Org: org}
		}
		return Verdict{Kind: VerdictAllow, Org: org}
	}

	principal, err := p.authenticator.Authenticate(ctx, req.Credentials)
	if err != nil {
		return Verdict{Kind: VerdictRedirectToLogin, Reason: "no valid session", Org: org}
	}

	decision := p.authorizer.Authorize(ctx, principal.UserID, org.ID, req.Class, req.Kind, req.ResourceID)
	switch decision.Effect {
	case authorization.EffectAllow:
	case authorization.EffectDenyUnauthorized:
		// The session is valid; the user just has no membership here.
		// Bouncing them to login would loop, so they go to the join flow.
		return Verdict{Kind: VerdictRequestAccess, Reason: decision.Reason, Org: org, Principal: principal}
	case authorization.EffectDenyForbidden:
		return Verdict{Kind: VerdictForbidden, Reason: decision.Reason, Org: org, Principal: principal}
	case authorization.EffectDenyNotFound:
		return Verdict{Kind: VerdictNotFound, Reason: decision.Reason, Org: org, Principal: principal}
	default:
		return Verdict{Kind: VerdictInternal, Reason: decision.Reason, Org: org, Principal: principal}
	}

	if gate := p.gate.Check(ctx, org.ID, req.Class, req.Kind); !gate.Allowed {
		return Verdict{Kind: VerdictRedirectToBilling, Reason: gate.Reason, Org: org, Principal: principal}
	}

	return Verdict{Kind: VerdictAllow, Org: org, Principal: principal}
}
