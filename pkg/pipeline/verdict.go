// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/authentication"
)

type VerdictKind int

const (
	VerdictAllow VerdictKind = iota
	// VerdictRedirectToLogin: no valid session. The UI redirects, the API
	// answers 401.
	VerdictRedirectToLogin
	// VerdictRedirectToBilling: authenticated and permitted, but the
	// organization's subscription does not cover the action.
	VerdictRedirectToBilling
	// VerdictRequestAccess: a valid session with no membership in the
	// resolved organization. The UI offers the join flow instead of
	// bouncing an already-logged-in user back to login.
	VerdictRequestAccess
	// VerdictForbidden: a valid session that this action is denied to.
	VerdictForbidden
	// VerdictNotFound: no such tenant or resource. Also the answer for
	// resources that exist in another tenant, which must stay
	// indistinguishable from absent ones.
	VerdictNotFound
	// VerdictInternal: an infrastructure failure; the pipeline fails
	// closed rather than guessing.
	VerdictInternal
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictAllow:
		return "allow"
	case VerdictRedirectToLogin:
		return "redirect_to_login"
	case VerdictRedirectToBilling:
		return "redirect_to_billing"
	case VerdictRequestAccess:
		return "request_access"
	case VerdictForbidden:
		return "forbidden"
	case VerdictNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// Verdict is the pipeline's single answer for a request. On allow it
// carries the resolved tenant and principal for the handler; Principal is
// nil on public reads.
type Verdict struct {
	Kind      VerdictKind
	Reason    string
	Org       *types.Organization
	Principal *authentication.Principal
}
