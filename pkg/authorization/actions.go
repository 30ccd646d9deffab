// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/canonical/handbook-service/internal/types"
)

type ActionClass int

const (
	ActionRead ActionClass = iota
	ActionWrite
	ActionDelete
)

func (a ActionClass) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type ResourceKind string

const (
	KindPage         ResourceKind = "page"
	KindSection      ResourceKind = "section"
	KindHandbook     ResourceKind = "handbook"
	KindOrganization ResourceKind = "organization"
	KindSubscription ResourceKind = "subscription"
)

// MinimumRole returns the lowest role that may perform the action class on
// the resource kind. Reads require member; content writes require editor;
// organization and subscription settings require admin.
func MinimumRole(class ActionClass, kind ResourceKind) types.Role {
	if class == ActionRead {
		return types.RoleMember
	}

	switch kind {
	case KindOrganization, KindSubscription:
		return types.RoleAdmin
	default:
		return types.RoleEditor
	}
}
