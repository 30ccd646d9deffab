// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type StorageInterface interface {
	ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.Membership, error)
	GetSubscriptionByOrganizationID(ctx context.Context, orgID string) (*types.Subscription, error)
}

// DirectoryInterface is the role-mutation surface of the membership
// directory.
type DirectoryInterface interface {
	UpdateRole(ctx context.Context, orgID, userID string, role types.Role) error
}
