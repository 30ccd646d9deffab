// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/pipeline"
	"github.com/canonical/handbook-service/pkg/tenant"
)

// API is the organization settings surface: name, custom domain, member
// roles and the subscription view. Mutations require admin via the
// pipeline; the handlers assume an authorized caller.
type API struct {
	resolver  tenant.ResolverInterface
	directory DirectoryInterface
	storage   StorageInterface

	logger logging.LoggerInterface
}

func NewAPI(resolver tenant.ResolverInterface, directory DirectoryInterface, s StorageInterface, logger logging.LoggerInterface) *API {
	return &API{
		resolver:  resolver,
		directory: directory,
		storage:   s,
		logger:    logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux, protect *pipeline.Middleware) {
	orgRead := protect.Protect(pipeline.RouteSpec{
		Class: authorization.ActionRead,
		Kind:  authorization.KindOrganization,
	})
	orgWrite := protect.Protect(pipeline.RouteSpec{
		Class: authorization.ActionWrite,
		Kind:  authorization.KindOrganization,
	})
	subscriptionRead := protect.Protect(pipeline.RouteSpec{
		Class: authorization.ActionRead,
		Kind:  authorization.KindSubscription,
	})

	mux.With(orgWrite).Patch("/api/v0/orgs/{slug}/settings", a.rename)
	mux.With(orgWrite).Put("/api/v0/orgs/{slug}/settings/domain", a.setDomain)
	mux.With(orgRead).Get("/api/v0/orgs/{slug}/members", a.listMembers)
	mux.With(orgWrite).Put("/api/v0/orgs/{slug}/members/{userID}/role", a.updateRole)
	mux.With(subscriptionRead).Get("/api/v0/orgs/{slug}/subscription", a.subscription)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (a *API) rename(w http.ResponseWriter, r *http.Request) {
	org := tenant.OrganizationFromContext(r.Context())

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		a.badRequest(w, "name is required")
		return
	}

	if err := a.resolver.Rename(r.Context(), org.ID, req.Name); err != nil {
		a.internal(w, "rename", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"name": req.Name})
}

type domainRequest struct {
	// Domain null or empty detaches the custom domain.
	Domain *string `json:"domain"`
}

func (a *API) setDomain(w http.ResponseWriter, r *http.Request) {
	org := tenant.OrganizationFromContext(r.Context())

	var req domainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequest(w, "request could not be decoded")
		return
	}
	if req.Domain != nil && *req.Domain == "" {
		req.Domain = nil
	}

	if err := a.resolver.SetCustomDomain(r.Context(), org.ID, req.Domain); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"code":    "domain_taken",
				"message": "domain already attached to another organization",
			})
			return
		}
		a.internal(w, "domain update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	org := tenant.OrganizationFromContext(r.Context())

	members, err := a.storage.ListMembersByOrganizationID(r.Context(), org.ID)
	if err != nil {
		a.internal(w, "member listing", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

type roleRequest struct {
	Role types.Role `json:"role"`
}

func (a *API) updateRole(w http.ResponseWriter, r *http.Request) {
	org := tenant.OrganizationFromContext(r.Context())
	userID := chi.URLParam(r, "userID")

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequest(w, "request could not be decoded")
		return
	}
	if !req.Role.Valid() || req.Role == types.RoleSuperadmin {
		// Superadmin is platform-granted, never via the tenant API.
		a.badRequest(w, "invalid role")
		return
	}

	if err := a.directory.UpdateRole(r.Context(), org.ID, userID, req.Role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"code":    "not_found",
				"message": "membership not found",
			})
			return
		}
		a.internal(w, "role update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user_id": userID, "role": req.Role})
}

func (a *API) subscription(w http.ResponseWriter, r *http.Request) {
	org := tenant.OrganizationFromContext(r.Context())

	sub, err := a.storage.GetSubscriptionByOrganizationID(r.Context(), org.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"code":    "not_found",
				"message": "no subscription",
			})
			return
		}
		a.internal(w, "subscription lookup", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":             sub.Status,
		"plan_type":          sub.PlanType,
		"current_period_end": sub.CurrentPeriodEnd,
		"entitled":           sub.Status.Entitled(),
	})
}

func (a *API) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"code":    "invalid_request",
		"message": message,
	})
}

func (a *API) internal(w http.ResponseWriter, what string, err error) {
	a.logger.Errorf("%s failed: %v", what, err)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"code":    "internal_error",
		"message": "internal error",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
