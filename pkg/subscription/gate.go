// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/pkg/authorization"
)

var _ GateInterface = (*Gate)(nil)

type GateResult struct {
	Allowed bool
	// RedirectToBilling distinguishes "pay up" from a permission denial.
	RedirectToBilling bool
	Reason            string
}

// Gate blocks content actions, reads included, for organizations without
// an entitled subscription. Organization and subscription management are
// exempt: an admin must be able to reach billing to resolve the very state
// that gated them.
//
// The gate degrades open. Subscription state is an availability concern,
// not a security boundary; a store outage must not take editing down with
// it. Role checks stay fail-closed, this sits after them.
type Gate struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGate(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Gate {
	return &Gate{
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (g *Gate) Check(ctx context.Context, orgID string, class authorization.ActionClass, kind authorization.ResourceKind) GateResult {
	ctx, span := g.tracer.Start(ctx, "subscription.Gate.Check")
	defer span.End()

	if kind == authorization.KindOrganization || kind == authorization.KindSubscription {
		return GateResult{Allowed: true}
	}

	sub, err := g.storage.GetSubscriptionByOrganizationID(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return GateResult{RedirectToBilling: true, Reason: "no subscription"}
		}
		g.logger.Warnf("subscription lookup for organization %s failed, gate open: %v", orgID, err)
		return GateResult{Allowed: true, Reason: "subscription state unavailable"}
	}

	if !sub.Status.Entitled() {
		return GateResult{RedirectToBilling: true, Reason: "subscription " + string(sub.Status)}
	}
	return GateResult{Allowed: true}
}
