// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type RegistrationStorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	AddMember(ctx context.Context, orgID, userID string, role types.Role, isDefault bool) (string, error)
	CreateHandbook(ctx context.Context, h *types.Handbook) (*types.Handbook, error)
	CreateSubscription(ctx context.Context, s *types.Subscription) (*types.Subscription, error)
}

type DBClientInterface interface {
	WithTx(context.Context, func(context.Context) error) error
}

type VerifierInterface interface {
	Verify(header string, body []byte) error
}

type RegistrarInterface interface {
	Register(ctx context.Context, req *RegistrationRequest) (*RegistrationResult, error)
}
