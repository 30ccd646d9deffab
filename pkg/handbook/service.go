// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// HandbookView is the handbook with its content tree, as one response.
type HandbookView struct {
	Handbook *types.Handbook `json:"handbook"`
	Sections []*SectionView  `json:"sections"`
}

type SectionView struct {
	Section *types.Section `json:"section"`
	Pages   []*types.Page  `json:"pages"`
}

type PageUpdate struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Position  *int    `json:"position"`
	Published *bool   `json:"published"`
}

// Service reads and edits handbook content. It is tenant-scoped: every
// read takes the resolved organization and refuses resources owned by
// another one with storage.ErrNotFound, so a cross-tenant id probe is
// indistinguishable from a missing record.
type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetHandbook returns the organization's content tree. With publishedOnly
// set, draft pages are absent from the response, not marked.
func (s *Service) GetHandbook(ctx context.Context, orgID string, publishedOnly bool) (*HandbookView, error) {
	ctx, span := s.tracer.Start(ctx, "handbook.Service.GetHandbook")
	defer span.End()

	hb, err := s.storage.GetHandbookByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	sections, err := s.storage.ListSectionsByHandbookID(ctx, hb.ID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}

	view := &HandbookView{Handbook: hb, Sections: make([]*SectionView, 0, len(sections))}
	for _, section := range sections {
		pages, err := s.storage.ListPagesBySectionID(ctx, section.ID, publishedOnly)
		if err != nil {
			return nil, fmt.Errorf("listing pages for section %s: %w", section.ID, err)
		}
		view.Sections = append(view.Sections, &SectionView{Section: section, Pages: pages})
	}
	return view, nil
}

// GetPage returns one page after verifying it belongs to orgID. With
// publishedOnly set, a draft page is storage.ErrNotFound; its existence is
// not revealed to public readers.
func (s *Service) GetPage(ctx context.Context, orgID, pageID string, publishedOnly bool) (*types.Page, error) {
	ctx, span := s.tracer.Start(ctx, "handbook.Service.GetPage")
	defer span.End()

	page, err := s.storage.GetPageByID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerOf(ctx, page)
	if err != nil {
		return nil, err
	}
	if owner != orgID {
		return nil, storage.ErrNotFound
	}

	if publishedOnly && !page.Published {
		return nil, storage.ErrNotFound
	}
	return page, nil
}

// UpdatePage applies a partial update. Ownership was already established by
// the authorization stage; the service trusts its caller for writes.
func (s *Service) UpdatePage(ctx context.Context, pageID string, update PageUpdate) (*types.Page, error) {
	ctx, span := s.tracer.Start(ctx, "handbook.Service.UpdatePage")
	defer span.End()

	page, err := s.storage.GetPageByID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		page.Title = *update.Title
	}
	if update.Body != nil {
		page.Body = *update.Body
	}
	if update.Position != nil {
		page.Position = *update.Position
	}
	if update.Published != nil {
		page.Published = *update.Published
	}

	if err := s.storage.UpdatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("updating page %s: %w", pageID, err)
	}
	return page, nil
}

func (s *Service) ownerOf(ctx context.Context, page *types.Page) (string, error) {
	section, err := s.storage.GetSectionByID(ctx, page.SectionID)
	if err != nil {
		return "", orphanErr(err, "section", page.SectionID)
	}
	hb, err := s.storage.GetHandbookByID(ctx, section.HandbookID)
	if err != nil {
		return "", orphanErr(err, "handbook", section.HandbookID)
	}
	return hb.OrganizationID, nil
}

func orphanErr(err error, kind, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("resolving %s %s: %w", kind, id, err)
}
