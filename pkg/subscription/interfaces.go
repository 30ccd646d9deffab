// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/authorization"
)

type StorageInterface interface {
	CreateSubscription(ctx context.Context, s *types.Subscription) (*types.Subscription, error)
	GetSubscriptionByOrganizationID(ctx context.Context, orgID string) (*types.Subscription, error)
	GetSubscriptionByExternalID(ctx context.Context, externalID string) (*types.Subscription, error)
	UpdateSubscription(ctx context.Context, s *types.Subscription) error
	RecordWebhookEvent(ctx context.Context, e *types.WebhookEvent) error
}

type DBClientInterface interface {
	WithTx(context.Context, func(context.Context) error) error
}

type ReconcilerInterface interface {
	Apply(ctx context.Context, event *Event) error
}

type GateInterface interface {
	Check(ctx context.Context, orgID string, class authorization.ActionClass, kind authorization.ResourceKind) GateResult
}
