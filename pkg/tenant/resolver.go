// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/canonical/handbook-service/internal/cache"
	"github.com/canonical/handbook-service/internal/db"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

// ErrNoTenant means the request could not be mapped to any organization.
var ErrNoTenant = errors.New("no tenant resolved")

const retryBackoff = 100 * time.Millisecond

var _ ResolverInterface = (*Resolver)(nil)

type Resolver struct {
	storage StorageInterface
	cache   cache.CacheInterface

	baseDomain     string
	reservedLabels []string
	cacheTTL       time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewResolver(
	s StorageInterface,
	c cache.CacheInterface,
	baseDomain string,
	reservedLabels []string,
	cacheTTL time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Resolver {
	return &Resolver{
		storage:        s,
		cache:          c,
		baseDomain:     strings.ToLower(baseDomain),
		reservedLabels: reservedLabels,
		cacheTTL:       cacheTTL,
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, host, pathSlug string) (*types.Organization, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.Resolver.Resolve")
	defer span.End()

	host = normalizeHost(host)

	// Hosts outside the base domain are candidate custom domains.
	if host != "" && host != r.baseDomain && !strings.HasSuffix(host, "."+r.baseDomain) {
		org, err := r.byDomain(ctx, host)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, ErrNoTenant) {
			return nil, err
		}
		// Unknown custom domain: fall through to the path slug.
	}

	slug := r.subdomainLabel(host)
	if slug == "" {
		slug = strings.ToLower(pathSlug)
	}
	if slug == "" {
		return nil, ErrNoTenant
	}

	return r.bySlug(ctx, slug)
}

func (r *Resolver) bySlug(ctx context.Context, slug string) (*types.Organization, error) {
	key := "tenant:slug:" + slug
	if v, ok := r.cache.Get(ctx, key); ok {
		if org, ok := v.(*types.Organization); ok {
			return org, nil
		}
	}

	var org *types.Organization
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(retryBackoff)), func(ctx context.Context) error {
		var err error
		org, err = r.storage.GetOrganizationBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoTenant
		}
		return nil, fmt.Errorf("failed to resolve tenant %q: %w", slug, err)
	}

	r.cache.Set(ctx, key, org, r.cacheTTL)
	return org, nil
}

func (r *Resolver) byDomain(ctx context.Context, domain string) (*types.Organization, error) {
	key := "tenant:domain:" + domain
	if v, ok := r.cache.Get(ctx, key); ok {
		if org, ok := v.(*types.Organization); ok {
			return org, nil
		}
	}

	var org *types.Organization
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(retryBackoff)), func(ctx context.Context) error {
		var err error
		org, err = r.storage.GetOrganizationByDomain(ctx, domain)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoTenant
		}
		return nil, fmt.Errorf("failed to resolve custom domain %q: %w", domain, err)
	}

	r.cache.Set(ctx, key, org, r.cacheTTL)
	return org, nil
}

// Rename updates the organization's display name and invalidates its cache
// entries once the surrounding transaction commits, so the renaming caller
// reads its own write on the next request. Invalidating earlier would let a
// concurrent reader re-cache the uncommitted row. The slug itself is
// immutable.
func (r *Resolver) Rename(ctx context.Context, orgID, name string) error {
	ctx, span := r.tracer.Start(ctx, "tenant.Resolver.Rename")
	defer span.End()

	org, err := r.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoTenant
		}
		return fmt.Errorf("failed to load organization: %w", err)
	}

	if err := r.storage.UpdateOrganizationName(ctx, orgID, name); err != nil {
		return fmt.Errorf("failed to rename organization: %w", err)
	}

	db.AfterCommit(ctx, func() {
		r.invalidate(ctx, org)
	})
	return nil
}

func (r *Resolver) SetCustomDomain(ctx context.Context, orgID string, domain *string) error {
	ctx, span := r.tracer.Start(ctx, "tenant.Resolver.SetCustomDomain")
	defer span.End()

	org, err := r.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoTenant
		}
		return fmt.Errorf("failed to load organization: %w", err)
	}

	if err := r.storage.SetOrganizationDomain(ctx, orgID, domain); err != nil {
		return fmt.Errorf("failed to set custom domain: %w", err)
	}

	// Drop both the old and the new domain index entries.
	db.AfterCommit(ctx, func() {
		r.invalidate(ctx, org)
		if domain != nil {
			r.cache.Delete(ctx, "tenant:domain:"+normalizeHost(*domain))
		}
	})
	return nil
}

func (r *Resolver) invalidate(ctx context.Context, org *types.Organization) {
	r.cache.Delete(ctx, "tenant:slug:"+org.Slug)
	if org.Domain != nil {
		r.cache.Delete(ctx, "tenant:domain:"+normalizeHost(*org.Domain))
	}
}

// subdomainLabel extracts the single label in front of the base domain.
// Reserved labels (www, app, ...) and nested labels yield no candidate.
func (r *Resolver) subdomainLabel(host string) string {
	if host == "" || host == r.baseDomain {
		return ""
	}

	label := strings.TrimSuffix(host, "."+r.baseDomain)
	if label == host || label == "" {
		return ""
	}
	if strings.Contains(label, ".") {
		return ""
	}
	if slices.Contains(r.reservedLabels, label) {
		return ""
	}
	return label
}

func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
