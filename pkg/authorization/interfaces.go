// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type AuthorizerInterface interface {
	// Authorize resolves the resource's owning organization and the
	// principal's membership, then evaluates the permission decision.
	Authorize(ctx context.Context, userID, orgID string, class ActionClass, kind ResourceKind, resourceID string) Decision

	// Lookup returns the principal's membership in the organization, or the
	// platform superadmin membership, or nil without error when neither
	// exists.
	Lookup(ctx context.Context, userID, orgID string) (*types.Membership, error)
}

type HierarchyInterface interface {
	// ResolveOwner walks the ownership chain up to the owning organization.
	// Any missing hop yields storage.ErrNotFound (fail closed).
	ResolveOwner(ctx context.Context, kind ResourceKind, resourceID string) (string, error)
}

// StorageInterface is the subset of the storage contract this package needs.
type StorageInterface interface {
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	GetSuperadminMembership(ctx context.Context, userID string) (*types.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.Role) error
	GetPageByID(ctx context.Context, id string) (*types.Page, error)
	GetSectionByID(ctx context.Context, id string) (*types.Section, error)
	GetHandbookByID(ctx context.Context, id string) (*types.Handbook, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
}
