// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handbook

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type StorageInterface interface {
	GetHandbookByID(ctx context.Context, id string) (*types.Handbook, error)
	GetHandbookByOrganizationID(ctx context.Context, orgID string) (*types.Handbook, error)
	GetSectionByID(ctx context.Context, id string) (*types.Section, error)
	GetPageByID(ctx context.Context, id string) (*types.Page, error)
	ListSectionsByHandbookID(ctx context.Context, handbookID string) ([]*types.Section, error)
	ListPagesBySectionID(ctx context.Context, sectionID string, publishedOnly bool) ([]*types.Page, error)
	UpdatePage(ctx context.Context, p *types.Page) error
}

type ServiceInterface interface {
	GetHandbook(ctx context.Context, orgID string, publishedOnly bool) (*HandbookView, error)
	GetPage(ctx context.Context, orgID, pageID string, publishedOnly bool) (*types.Page, error)
	UpdatePage(ctx context.Context, pageID string, update PageUpdate) (*types.Page, error)
}
