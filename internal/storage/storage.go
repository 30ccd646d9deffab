// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/handbook-service/internal/db"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganization")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organization ID: %w", err)
	}

	var created types.Organization
	err = s.db.Statement(ctx).
		Insert("organizations").
		Columns("id", "slug", "name", "domain").
		Values(id.String(), o.Slug, o.Name, o.Domain).
		Suffix("RETURNING id, slug, name, domain, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Slug, &created.Name, &created.Domain, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	return s.getOrganization(ctx, "storage.GetOrganizationByID", sq.Eq{"id": id})
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error) {
	return s.getOrganization(ctx, "storage.GetOrganizationBySlug", sq.Eq{"slug": slug})
}

func (s *Storage) GetOrganizationByDomain(ctx context.Context, domain string) (*types.Organization, error) {
	return s.getOrganization(ctx, "storage.GetOrganizationByDomain", sq.Eq{"domain": domain})
}

func (s *Storage) getOrganization(ctx context.Context, spanName string, where sq.Eq) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	var o types.Organization
	err := s.db.Statement(ctx).
		Select("id", "slug", "name", "domain", "created_at").
		From("organizations").
		Where(where).
		QueryRowContext(ctx).
		Scan(&o.ID, &o.Slug, &o.Name, &o.Domain, &o.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &o, nil
}

func (s *Storage) UpdateOrganizationName(ctx context.Context, id, name string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateOrganizationName")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("organizations").
		Set("name", name).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) SetOrganizationDomain(ctx context.Context, id string, domain *string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetOrganizationDomain")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("organizations").
		Set("domain", domain).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to set organization domain: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	var created types.User
	err := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "name", "verified").
		Values(u.ID, u.Email, u.Name, u.Verified).
		Suffix("RETURNING id, email, name, verified, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Email, &created.Name, &created.Verified, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	return s.getUser(ctx, "storage.GetUserByID", sq.Eq{"id": id})
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	return s.getUser(ctx, "storage.GetUserByEmail", sq.Eq{"email": email})
}

func (s *Storage) getUser(ctx context.Context, spanName string, where sq.Eq) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "email", "name", "verified", "created_at").
		From("users").
		Where(where).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.Name, &u.Verified, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) AddMember(ctx context.Context, orgID, userID string, role types.Role, isDefault bool) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "organization_id", "user_id", "role", "is_default").
		Values(id.String(), orgID, userID, role, isDefault).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

func (s *Storage) GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("id", "user_id", "organization_id", "role", "is_default", "created_at").
		From("memberships").
		Where(sq.Eq{"user_id": userID, "organization_id": orgID}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.IsDefault, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

// GetSuperadminMembership returns the user's superadmin membership if one
// exists in any organization. Superadmin is a platform-wide override.
func (s *Storage) GetSuperadminMembership(ctx context.Context, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSuperadminMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("id", "user_id", "organization_id", "role", "is_default", "created_at").
		From("memberships").
		Where(sq.Eq{"user_id": userID, "role": types.RoleSuperadmin}).
		Limit(1).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.IsDefault, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get superadmin membership: %w", err)
	}

	return &m, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, orgID, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", role).
		Where(sq.Eq{
			"organization_id": orgID,
			"user_id":         userID,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByOrganizationID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "user_id", "organization_id", "role", "is_default", "created_at").
		From("memberships").
		Where(sq.Eq{"organization_id": orgID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.IsDefault, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) CreateHandbook(ctx context.Context, h *types.Handbook) (*types.Handbook, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateHandbook")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate handbook ID: %w", err)
	}

	var created types.Handbook
	err = s.db.Statement(ctx).
		Insert("handbooks").
		Columns("id", "organization_id", "title").
		Values(id.String(), h.OrganizationID, h.Title).
		Suffix("RETURNING id, organization_id, title, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrganizationID, &created.Title, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert handbook: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetHandbookByID(ctx context.Context, id string) (*types.Handbook, error) {
	return s.getHandbook(ctx, "storage.GetHandbookByID", sq.Eq{"id": id})
}

func (s *Storage) GetHandbookByOrganizationID(ctx context.Context, orgID string) (*types.Handbook, error) {
	return s.getHandbook(ctx, "storage.GetHandbookByOrganizationID", sq.Eq{"organization_id": orgID})
}

func (s *Storage) getHandbook(ctx context.Context, spanName string, where sq.Eq) (*types.Handbook, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	var h types.Handbook
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "title", "created_at").
		From("handbooks").
		Where(where).
		QueryRowContext(ctx).
		Scan(&h.ID, &h.OrganizationID, &h.Title, &h.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get handbook: %w", err)
	}

	return &h, nil
}

func (s *Storage) GetSectionByID(ctx context.Context, id string) (*types.Section, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSectionByID")
	defer span.End()

	var sec types.Section
	err := s.db.Statement(ctx).
		Select("id", "handbook_id", "title", "position", "created_at").
		From("sections").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&sec.ID, &sec.HandbookID, &sec.Title, &sec.Position, &sec.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	return &sec, nil
}

func (s *Storage) GetPageByID(ctx context.Context, id string) (*types.Page, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPageByID")
	defer span.End()

	var p types.Page
	err := s.db.Statement(ctx).
		Select("id", "section_id", "title", "body", "position", "published", "created_at", "updated_at").
		From("pages").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.SectionID, &p.Title, &p.Body, &p.Position, &p.Published, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return &p, nil
}

func (s *Storage) ListSectionsByHandbookID(ctx context.Context, handbookID string) ([]*types.Section, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSectionsByHandbookID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "handbook_id", "title", "position", "created_at").
		From("sections").
		Where(sq.Eq{"handbook_id": handbookID}).
		OrderBy("position ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []*types.Section
	for rows.Next() {
		var sec types.Section
		if err := rows.Scan(&sec.ID, &sec.HandbookID, &sec.Title, &sec.Position, &sec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, &sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sections, nil
}

func (s *Storage) ListPagesBySectionID(ctx context.Context, sectionID string, publishedOnly bool) ([]*types.Page, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPagesBySectionID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "section_id", "title", "body", "position", "published", "created_at", "updated_at").
		From("pages").
		Where(sq.Eq{"section_id": sectionID}).
		OrderBy("position ASC")

	if publishedOnly {
		query = query.Where(sq.Eq{"published": true})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*types.Page
	for rows.Next() {
		var p types.Page
		if err := rows.Scan(&p.ID, &p.SectionID, &p.Title, &p.Body, &p.Position, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pages, nil
}

func (s *Storage) UpdatePage(ctx context.Context, p *types.Page) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdatePage")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("pages").
		Set("title", p.Title).
		Set("body", p.Body).
		Set("position", p.Position).
		Set("published", p.Published).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": p.ID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) CreateSubscription(ctx context.Context, sub *types.Subscription) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSubscription")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	var created types.Subscription
	err = s.db.Statement(ctx).
		Insert("subscriptions").
		Columns("id", "organization_id", "status", "plan_type", "current_period_end", "external_id", "version").
		Values(id.String(), sub.OrganizationID, sub.Status, sub.PlanType, sub.CurrentPeriodEnd, sub.ExternalID, sub.Version).
		Suffix("RETURNING id, organization_id, status, plan_type, current_period_end, external_id, version, updated_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrganizationID, &created.Status, &created.PlanType, &created.CurrentPeriodEnd, &created.ExternalID, &created.Version, &created.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetSubscriptionByOrganizationID(ctx context.Context, orgID string) (*types.Subscription, error) {
	return s.getSubscription(ctx, "storage.GetSubscriptionByOrganizationID", sq.Eq{"organization_id": orgID})
}

func (s *Storage) GetSubscriptionByExternalID(ctx context.Context, externalID string) (*types.Subscription, error) {
	return s.getSubscription(ctx, "storage.GetSubscriptionByExternalID", sq.Eq{"external_id": externalID})
}

func (s *Storage) getSubscription(ctx context.Context, spanName string, where sq.Eq) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	var sub types.Subscription
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "status", "plan_type", "current_period_end", "external_id", "version", "updated_at").
		From("subscriptions").
		Where(where).
		QueryRowContext(ctx).
		Scan(&sub.ID, &sub.OrganizationID, &sub.Status, &sub.PlanType, &sub.CurrentPeriodEnd, &sub.ExternalID, &sub.Version, &sub.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (s *Storage) UpdateSubscription(ctx context.Context, sub *types.Subscription) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSubscription")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("subscriptions").
		Set("status", sub.Status).
		Set("plan_type", sub.PlanType).
		Set("current_period_end", sub.CurrentPeriodEnd).
		Set("external_id", sub.ExternalID).
		Set("version", sub.Version).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": sub.ID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// RecordWebhookEvent inserts a dedup ledger row. A duplicate external event
// id returns ErrDuplicateKey so the reconciler can treat redelivery as a
// no-op.
func (s *Storage) RecordWebhookEvent(ctx context.Context, e *types.WebhookEvent) error {
	ctx, span := s.tracer.Start(ctx, "storage.RecordWebhookEvent")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("webhook_events").
		Columns("external_event_id", "type").
		Values(e.ExternalEventID, e.Type).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to record webhook event: %w", err)
	}

	return nil
}
