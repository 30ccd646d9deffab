// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/handbook-service/internal/cache"
	"github.com/canonical/handbook-service/internal/db"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

// noMembership is cached in place of a missing row so repeated denials do
// not hit the store on every request.
type noMembership struct{}

// Directory resolves (principal, organization) to a membership. Reads are
// cache-backed up to the TTL; role mutations invalidate once their
// transaction commits.
type Directory struct {
	storage StorageInterface
	cache   cache.CacheInterface
	ttl     time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDirectory(
	s StorageInterface,
	c cache.CacheInterface,
	ttl time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Directory {
	return &Directory{
		storage: s,
		cache:   c,
		ttl:     ttl,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Lookup returns the membership the evaluator should consider: the
// principal's membership in orgID, or their platform superadmin membership,
// or nil when neither exists. Infrastructure errors propagate so role
// checks can fail closed.
func (d *Directory) Lookup(ctx context.Context, userID, orgID string) (*types.Membership, error) {
	ctx, span := d.tracer.Start(ctx, "authorization.Directory.Lookup")
	defer span.End()

	key := membershipKey(userID, orgID)
	if v, ok := d.cache.Get(ctx, key); ok {
		switch m := v.(type) {
		case *types.Membership:
			return m, nil
		case noMembership:
			return nil, nil
		}
	}

	m, err := lookup2(ctx, userID, orgID, d.storage.GetMembership)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("membership lookup failed: %w", err)
	}

	if m == nil {
		// No membership here; a platform superadmin still passes.
		m, err = lookup(ctx, userID, d.storage.GetSuperadminMembership)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("superadmin lookup failed: %w", err)
		}
	}

	if m == nil {
		d.cache.Set(ctx, key, noMembership{}, d.ttl)
		return nil, nil
	}

	d.cache.Set(ctx, key, m, d.ttl)
	return m, nil
}

// UpdateRole changes a member's role and invalidates the cached membership
// once the surrounding transaction commits, so the mutator reads its own
// write without a concurrent reader re-caching the uncommitted row.
func (d *Directory) UpdateRole(ctx context.Context, orgID, userID string, role types.Role) error {
	ctx, span := d.tracer.Start(ctx, "authorization.Directory.UpdateRole")
	defer span.End()

	if !role.Valid() {
		return fmt.Errorf("invalid role: %s", role)
	}

	if err := d.storage.UpdateMemberRole(ctx, orgID, userID, role); err != nil {
		return err
	}

	db.AfterCommit(ctx, func() {
		d.cache.Delete(ctx, membershipKey(userID, orgID))
	})
	return nil
}

func membershipKey(userID, orgID string) string {
	return "membership:" + userID + ":" + orgID
}

// lookup2 is lookup for two-key getters.
func lookup2[T any](ctx context.Context, a, b string, get func(context.Context, string, string) (*T, error)) (*T, error) {
	return lookup(ctx, a, func(ctx context.Context, a string) (*T, error) {
		return get(ctx, a, b)
	})
}
