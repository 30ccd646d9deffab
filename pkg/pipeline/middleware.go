// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/pkg/authentication"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/tenant"
)

// RouteSpec describes how the pipeline should treat one route group.
// ResourceParam names the chi URL parameter carrying the resource id, empty
// for organization-level routes.
type RouteSpec struct {
	Class         authorization.ActionClass
	Kind          authorization.ResourceKind
	ResourceParam string
	Public        bool
	// UI routes answer denials with redirects; API routes with JSON.
	UI bool
}

const (
	loginPath         = "/login"
	billingPath       = "/billing"
	requestAccessPath = "/request-access"
)

// Middleware adapts the pipeline to chi. On allow it injects the tenant and
// principal into the request context and re-issues cookies when the token
// pair rotated during authentication.
type Middleware struct {
	pipeline *Pipeline
	cookies  *authentication.CookieManager

	logger logging.LoggerInterface
}

func NewMiddleware(p *Pipeline, cookies *authentication.CookieManager, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		pipeline: p,
		cookies:  cookies,
		logger:   logger,
	}
}

func (m *Middleware) Protect(spec RouteSpec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := &Request{
				Host:        r.Host,
				PathSlug:    chi.URLParam(r, "slug"),
				Credentials: m.cookies.ExtractCredentials(r),
				Class:       spec.Class,
				Kind:        spec.Kind,
				Public:      spec.Public,
			}
			if spec.ResourceParam != "" {
				req.ResourceID = chi.URLParam(r, spec.ResourceParam)
			}

			verdict := m.pipeline.Evaluate(r.Context(), req)
			if verdict.Kind != VerdictAllow {
				m.deny(w, r, spec, verdict)
				return
			}

			if verdict.Principal != nil && verdict.Principal.NewTokens != nil {
				// The session rotated while authenticating; the client
				// keeps the new pair.
				m.cookies.SetPair(w, verdict.Principal.NewTokens)
			}

			ctx := tenant.WithOrganization(r.Context(), verdict.Org)
			if verdict.Principal != nil {
				ctx = authentication.WithPrincipal(ctx, verdict.Principal)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) deny(w http.ResponseWriter, r *http.Request, spec RouteSpec, verdict Verdict) {
	if spec.UI {
		switch verdict.Kind {
		case VerdictRedirectToLogin:
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		case VerdictRedirectToBilling:
			http.Redirect(w, r, billingPath, http.StatusSeeOther)
			return
		case VerdictRequestAccess:
			http.Redirect(w, r, requestAccessPath, http.StatusSeeOther)
			return
		}
	}

	status, code := verdictStatus(verdict.Kind)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": verdictMessage(verdict.Kind),
	})
}

func verdictStatus(kind VerdictKind) (int, string) {
	switch kind {
	case VerdictRedirectToLogin:
		return http.StatusUnauthorized, "unauthenticated"
	case VerdictRedirectToBilling:
		return http.StatusPaymentRequired, "subscription_required"
	case VerdictRequestAccess:
		return http.StatusForbidden, "membership_required"
	case VerdictForbidden:
		return http.StatusForbidden, "forbidden"
	case VerdictNotFound:
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// verdictMessage keeps denial bodies generic: reasons stay in logs, not in
// responses a probing client can read.
func verdictMessage(kind VerdictKind) string {
	switch kind {
	case VerdictRedirectToLogin:
		return "authentication required"
	case VerdictRedirectToBilling:
		return "an active subscription is required"
	case VerdictRequestAccess:
		return "membership in this organization is required"
	case VerdictForbidden:
		return "insufficient permissions"
	case VerdictNotFound:
		return "not found"
	default:
		return "internal error"
	}
}
