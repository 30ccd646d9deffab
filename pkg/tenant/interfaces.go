// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type ResolverInterface interface {
	// Resolve maps a request host and optional path slug to the owning
	// organization. Ambiguous resolution is ErrNoTenant, never a default.
	Resolve(ctx context.Context, host, pathSlug string) (*types.Organization, error)
	Rename(ctx context.Context, orgID, name string) error
	SetCustomDomain(ctx context.Context, orgID string, domain *string) error
}

// StorageInterface is the subset of the storage contract the resolver needs.
type StorageInterface interface {
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	GetOrganizationByDomain(ctx context.Context, domain string) (*types.Organization, error)
	UpdateOrganizationName(ctx context.Context, id, name string) error
	SetOrganizationDomain(ctx context.Context, id string, domain *string) error
}
