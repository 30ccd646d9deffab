// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
)

const retryBackoff = 100 * time.Millisecond

var _ HierarchyInterface = (*HierarchyResolver)(nil)

// HierarchyResolver walks page -> section -> handbook -> organization.
// Ownership is forward-only foreign keys; resolution is explicit upward
// lookups, at most three hops.
type HierarchyResolver struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewHierarchyResolver(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *HierarchyResolver {
	return &HierarchyResolver{
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (h *HierarchyResolver) ResolveOwner(ctx context.Context, kind ResourceKind, resourceID string) (string, error) {
	ctx, span := h.tracer.Start(ctx, "authorization.HierarchyResolver.ResolveOwner")
	defer span.End()

	switch kind {
	case KindPage:
		page, err := lookup(ctx, resourceID, h.storage.GetPageByID)
		if err != nil {
			return "", err
		}
		return h.ownerOfSection(ctx, page.SectionID)
	case KindSection:
		return h.ownerOfSection(ctx, resourceID)
	case KindHandbook:
		return h.ownerOfHandbook(ctx, resourceID)
	case KindOrganization, KindSubscription:
		org, err := lookup(ctx, resourceID, h.storage.GetOrganizationByID)
		if err != nil {
			return "", err
		}
		return org.ID, nil
	default:
		return "", fmt.Errorf("unknown resource kind: %s", kind)
	}
}

func (h *HierarchyResolver) ownerOfSection(ctx context.Context, sectionID string) (string, error) {
	section, err := lookup(ctx, sectionID, h.storage.GetSectionByID)
	if err != nil {
		return "", err
	}
	return h.ownerOfHandbook(ctx, section.HandbookID)
}

func (h *HierarchyResolver) ownerOfHandbook(ctx context.Context, handbookID string) (string, error) {
	handbook, err := lookup(ctx, handbookID, h.storage.GetHandbookByID)
	if err != nil {
		return "", err
	}
	return handbook.OrganizationID, nil
}

// lookup performs one hop, retrying transient failures once. A missing
// record at any hop is storage.ErrNotFound: an orphaned resource denies,
// never default-allows.
func lookup[T any](ctx context.Context, id string, get func(context.Context, string) (*T, error)) (*T, error) {
	var out *T
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(retryBackoff)), func(ctx context.Context) error {
		var err error
		out, err = get(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
