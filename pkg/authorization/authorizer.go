// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer combines the membership directory, the hierarchy resolver and
// the pure evaluator into one decision per request.
type Authorizer struct {
	directory *Directory
	hierarchy HierarchyInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthorizer(
	directory *Directory,
	hierarchy HierarchyInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Authorizer {
	return &Authorizer{
		directory: directory,
		hierarchy: hierarchy,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (a *Authorizer) Lookup(ctx context.Context, userID, orgID string) (*types.Membership, error) {
	return a.directory.Lookup(ctx, userID, orgID)
}

// Authorize fails closed: a store failure while resolving membership or
// ownership denies the request rather than allowing it.
func (a *Authorizer) Authorize(ctx context.Context, userID, orgID string, class ActionClass, kind ResourceKind, resourceID string) Decision {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Authorize")
	defer span.End()

	resourceOrgID := orgID
	if resourceID != "" {
		var err error
		resourceOrgID, err = a.hierarchy.ResolveOwner(ctx, kind, resourceID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Missing hop: 404, never conflated with 403.
				return Decision{Effect: EffectDenyNotFound, Reason: "resource or ownership link missing"}
			}
			a.logger.Errorf("hierarchy resolution failed: %v", err)
			return Decision{Effect: EffectError, Reason: "hierarchy resolution failed"}
		}
	}

	membership, err := a.directory.Lookup(ctx, userID, orgID)
	if err != nil {
		a.logger.Errorf("membership lookup failed: %v", err)
		return Decision{Effect: EffectError, Reason: "membership lookup failed"}
	}

	decision := Evaluate(membership, class, kind, resourceOrgID)
	if decision.Effect != EffectAllow {
		a.logger.Security().AuthzFailure(userID, class.String()+" "+string(kind))
	}
	return decision
}
