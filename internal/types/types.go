// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Organization is a tenant: a housing association owning one handbook
// content tree and one subscription. The slug is referenced by DNS and
// routing and is immutable after creation.
type Organization struct {
	ID        string    `db:"id"`
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	Domain    *string   `db:"domain"`
	CreatedAt time.Time `db:"created_at"`
}

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Verified  bool      `db:"verified"`
	CreatedAt time.Time `db:"created_at"`
}

// Role is totally ordered: guest < member < editor < admin < superadmin.
// Superadmin is a platform-wide override, not scoped to one organization.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleMember     Role = "member"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

var roleRank = map[Role]int{
	RoleGuest:      0,
	RoleMember:     1,
	RoleEditor:     2,
	RoleAdmin:      3,
	RoleSuperadmin: 4,
}

// AtLeast reports whether r ranks at or above min. Unknown roles rank
// below guest so a corrupt role string can never satisfy a check.
func (r Role) AtLeast(min Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	mr, ok := roleRank[min]
	if !ok {
		return false
	}
	return rr >= mr
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Membership ties a user to an organization with a role. At most one
// membership exists per (user, organization) pair and at most one carries
// IsDefault per user.
type Membership struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	Role           Role      `db:"role"`
	IsDefault      bool      `db:"is_default"`
	CreatedAt      time.Time `db:"created_at"`
}

// Handbook is the root of an organization's content tree, one per
// organization.
type Handbook struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	Title          string    `db:"title"`
	CreatedAt      time.Time `db:"created_at"`
}

type Section struct {
	ID         string    `db:"id"`
	HandbookID string    `db:"handbook_id"`
	Title      string    `db:"title"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

type Page struct {
	ID        string    `db:"id"`
	SectionID string    `db:"section_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Position  int       `db:"position"`
	Published bool      `db:"published"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SubscriptionStatus string

const (
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// Entitled reports whether the status permits gated actions.
func (s SubscriptionStatus) Entitled() bool {
	return s == SubscriptionTrialing || s == SubscriptionActive
}

// Subscription is mutated only by the webhook reconciler or explicit admin
// action. Version holds the billing provider's event timestamp (unix) of
// the last applied update; older events are discarded as stale.
type Subscription struct {
	ID               string             `db:"id"`
	OrganizationID   string             `db:"organization_id"`
	Status           SubscriptionStatus `db:"status"`
	PlanType         string             `db:"plan_type"`
	CurrentPeriodEnd time.Time          `db:"current_period_end"`
	ExternalID       string             `db:"external_id"`
	Version          int64              `db:"version"`
	UpdatedAt        time.Time          `db:"updated_at"`
}

// WebhookEvent is a dedup ledger row, not part of the durable domain
// model. The unique external event id enforces idempotent application.
type WebhookEvent struct {
	ExternalEventID string    `db:"external_event_id"`
	Type            string    `db:"type"`
	ReceivedAt      time.Time `db:"received_at"`
}
