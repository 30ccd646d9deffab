// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handbook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/pipeline"
	"github.com/canonical/handbook-service/pkg/tenant"
)

// API exposes handbook content. The /handbook routes are the public
// surface, published pages only; the /content routes are the member
// surface behind the full pipeline.
type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux, protect *pipeline.Middleware) {
	publicRead := protect.Protect(pipeline.RouteSpec{
		Class:  authorization.ActionRead,
		Kind:   authorization.KindHandbook,
		Public: true,
	})
	memberRead := protect.Protect(pipeline.RouteSpec{
		Class: authorization.ActionRead,
		Kind:  authorization.KindHandbook,
	})
	pageRead := protect.Protect(pipeline.RouteSpec{
		Class:         authorization.ActionRead,
		Kind:          authorization.KindPage,
		ResourceParam: "pageID",
	})
	pageWrite := protect.Protect(pipeline.RouteSpec{
		Class:         authorization.ActionWrite,
		Kind:          authorization.KindPage,
		ResourceParam: "pageID",
	})

	mux.With(publicRead).Get("/api/v0/orgs/{slug}/handbook", a.publicHandbook)
	mux.With(publicRead).Get("/api/v0/orgs/{slug}/handbook/pages/{pageID}", a.publicPage)

	mux.With(memberRead).Get("/api/v0/orgs/{slug}/content", a.fullHandbook)
	mux.With(pageRead).Get("/api/v0/orgs/{slug}/content/pages/{pageID}", a.page)
	mux.With(pageWrite).Patch("/api/v0/orgs/{slug}/content/pages/{pageID}", a.updatePage)
}

func (a *API) publicHandbook(w http.ResponseWriter, r *http.Request) {
	a.handbook(w, r, true)
}

func (a *API) fullHandbook(w http.ResponseWriter, r *http.Request) {
	a.handbook(w, r, false)
}

func (a *API) handbook(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	org := tenant.OrganizationFromContext(r.Context())

	view, err := a.service.GetHandbook(r.Context(), org.ID, publishedOnly)
	if err != nil {
		a.writeError(w, err, "handbook")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) publicPage(w http.ResponseWriter, r *http.Request) {
	a.getPage(w, r, true)
}

func (a *API) page(w http.ResponseWriter, r *http.Request) {
	a.getPage(w, r, false)
}

func (a *API) getPage(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	org := tenant.OrganizationFromContext(r.Context())

	page, err := a.service.GetPage(r.Context(), org.ID, chi.URLParam(r, "pageID"), publishedOnly)
	if err != nil {
		a.writeError(w, err, "page")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) updatePage(w http.ResponseWriter, r *http.Request) {
	var update PageUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    "invalid_request",
			"message": "request could not be decoded",
		})
		return
	}

	page, err := a.service.UpdatePage(r.Context(), chi.URLParam(r, "pageID"), update)
	if err != nil {
		a.writeError(w, err, "page")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) writeError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"code":    "not_found",
			"message": what + " not found",
		})
		return
	}
	a.logger.Errorf("%s request failed: %v", what, err)
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
