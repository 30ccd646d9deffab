// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/canonical/handbook-service/internal/types"
)

type Effect int

const (
	EffectAllow Effect = iota
	// EffectDenyUnauthorized: no membership in any relevant organization.
	EffectDenyUnauthorized
	// EffectDenyForbidden: valid membership, wrong organization or
	// insufficient role.
	EffectDenyForbidden
	// EffectDenyNotFound: the resource or an ownership hop is missing.
	EffectDenyNotFound
	// EffectError: an infrastructure failure; role checks fail closed.
	EffectError
)

type Decision struct {
	Effect Effect
	Reason string
}

func allow() Decision {
	return Decision{Effect: EffectAllow}
}

// Evaluate is the pure permission decision, total over all inputs.
// Cross-tenant leakage is the primary invariant: a membership in some other
// organization never grants access here, whatever its role.
func Evaluate(m *types.Membership, class ActionClass, kind ResourceKind, resourceOrgID string) Decision {
	if m != nil && m.Role == types.RoleSuperadmin {
		// Platform override, bypasses the organization match.
		return allow()
	}

	if m == nil {
		return Decision{Effect: EffectDenyUnauthorized, Reason: "no membership"}
	}

	if m.OrganizationID != resourceOrgID {
		return Decision{Effect: EffectDenyForbidden, Reason: "membership belongs to another organization"}
	}

	if min := MinimumRole(class, kind); !m.Role.AtLeast(min) {
		return Decision{Effect: EffectDenyForbidden, Reason: "role " + string(m.Role) + " below required " + string(min)}
	}

	return allow()
}
