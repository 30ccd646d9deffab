// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"testing"

	"github.com/canonical/handbook-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_cache.go -source=../../internal/cache/interfaces.go

func membership(orgID string, role types.Role) *types.Membership {
	return &types.Membership{UserID: "user-1", OrganizationID: orgID, Role: role}
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name           string
		membership     *types.Membership
		class          ActionClass
		kind           ResourceKind
		resourceOrgID  string
		expectedEffect Effect
	}{
		{
			name:           "no membership",
			membership:     nil,
			class:          ActionRead,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyUnauthorized,
		},
		{
			name:           "member reads own org",
			membership:     membership("org-1", types.RoleMember),
			class:          ActionRead,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectAllow,
		},
		{
			name:           "cross-tenant admin denied",
			membership:     membership("org-2", types.RoleAdmin),
			class:          ActionRead,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyForbidden,
		},
		{
			name:           "member cannot write",
			membership:     membership("org-1", types.RoleMember),
			class:          ActionWrite,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyForbidden,
		},
		{
			name:           "editor writes page",
			membership:     membership("org-1", types.RoleEditor),
			class:          ActionWrite,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectAllow,
		},
		{
			name:           "editor cannot change org settings",
			membership:     membership("org-1", types.RoleEditor),
			class:          ActionWrite,
			kind:           KindOrganization,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyForbidden,
		},
		{
			name:           "admin changes org settings",
			membership:     membership("org-1", types.RoleAdmin),
			class:          ActionWrite,
			kind:           KindOrganization,
			resourceOrgID:  "org-1",
			expectedEffect: EffectAllow,
		},
		{
			name:           "guest cannot read members-only content",
			membership:     membership("org-1", types.RoleGuest),
			class:          ActionRead,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyForbidden,
		},
		{
			name:           "superadmin crosses tenants",
			membership:     membership("org-2", types.RoleSuperadmin),
			class:          ActionDelete,
			kind:           KindOrganization,
			resourceOrgID:  "org-1",
			expectedEffect: EffectAllow,
		},
		{
			name:           "unknown role ranks below guest",
			membership:     membership("org-1", types.Role("owner")),
			class:          ActionRead,
			kind:           KindPage,
			resourceOrgID:  "org-1",
			expectedEffect: EffectDenyForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Evaluate(tc.membership, tc.class, tc.kind, tc.resourceOrgID)
			if decision.Effect != tc.expectedEffect {
				t.Errorf("expected effect %v, got %v (%s)", tc.expectedEffect, decision.Effect, decision.Reason)
			}
		})
	}
}

func TestMinimumRole(t *testing.T) {
	testCases := []struct {
		class    ActionClass
		kind     ResourceKind
		expected types.Role
	}{
		{ActionRead, KindPage, types.RoleMember},
		{ActionRead, KindOrganization, types.RoleMember},
		{ActionWrite, KindPage, types.RoleEditor},
		{ActionWrite, KindSection, types.RoleEditor},
		{ActionDelete, KindPage, types.RoleEditor},
		{ActionWrite, KindOrganization, types.RoleAdmin},
		{ActionWrite, KindSubscription, types.RoleAdmin},
	}

	for _, tc := range testCases {
		if got := MinimumRole(tc.class, tc.kind); got != tc.expected {
			t.Errorf("MinimumRole(%s, %s): expected %s, got %s", tc.class, tc.kind, tc.expected, got)
		}
	}
}
