// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type contextKey int

const organizationKey contextKey = iota

// WithOrganization attaches the resolved tenant to the request context.
func WithOrganization(ctx context.Context, org *types.Organization) context.Context {
	return context.WithValue(ctx, organizationKey, org)
}

// OrganizationFromContext returns the resolved tenant, or nil when the
// request did not pass tenant resolution.
func OrganizationFromContext(ctx context.Context) *types.Organization {
	org, _ := ctx.Value(organizationKey).(*types.Organization)
	return org
}
