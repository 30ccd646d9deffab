// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/handbook-service/internal/types"
)

type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	GetOrganizationByDomain(ctx context.Context, domain string) (*types.Organization, error)
	UpdateOrganizationName(ctx context.Context, id, name string) error
	SetOrganizationDomain(ctx context.Context, id string, domain *string) error

	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)

	AddMember(ctx context.Context, orgID, userID string, role types.Role, isDefault bool) (string, error)
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	GetSuperadminMembership(ctx context.Context, userID string) (*types.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.Role) error
	ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.Membership, error)

	CreateHandbook(ctx context.Context, h *types.Handbook) (*types.Handbook, error)
	GetHandbookByID(ctx context.Context, id string) (*types.Handbook, error)
	GetHandbookByOrganizationID(ctx context.Context, orgID string) (*types.Handbook, error)
	GetSectionByID(ctx context.Context, id string) (*types.Section, error)
	GetPageByID(ctx context.Context, id string) (*types.Page, error)
	ListSectionsByHandbookID(ctx context.Context, handbookID string) ([]*types.Section, error)
	ListPagesBySectionID(ctx context.Context, sectionID string, publishedOnly bool) ([]*types.Page, error)
	UpdatePage(ctx context.Context, p *types.Page) error

	CreateSubscription(ctx context.Context, s *types.Subscription) (*types.Subscription, error)
	GetSubscriptionByOrganizationID(ctx context.Context, orgID string) (*types.Subscription, error)
	GetSubscriptionByExternalID(ctx context.Context, externalID string) (*types.Subscription, error)
	UpdateSubscription(ctx context.Context, s *types.Subscription) error

	RecordWebhookEvent(ctx context.Context, e *types.WebhookEvent) error
}
