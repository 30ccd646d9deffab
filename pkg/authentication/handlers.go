// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/handbook-service/internal/logging"
)

// API is the session boundary: it accepts a token pair from the client-side
// auth flow and persists it as the session cookie pair.
type API struct {
	auth    AuthenticatorInterface
	cookies *CookieManager

	// devOverride, when non-empty, makes the status check report an
	// authenticated session for local development without an IdP.
	devOverride string

	logger logging.LoggerInterface
}

func NewAPI(auth AuthenticatorInterface, cookies *CookieManager, devOverride string, logger logging.LoggerInterface) *API {
	return &API{
		auth:        auth,
		cookies:     cookies,
		devOverride: devOverride,
		logger:      logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/auth/session", a.createSession)
	mux.Get("/api/v0/auth/session", a.sessionStatus)
	mux.Delete("/api/v0/auth/session", a.destroySession)
}

type createSessionRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Errorf("failed to decode session request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.AccessToken == "" || req.RefreshToken == "" {
		http.Error(w, "access_token and refresh_token are required", http.StatusBadRequest)
		return
	}

	// Validate before installing; a bad pair never becomes a session.
	principal, err := a.auth.Authenticate(r.Context(), Credentials{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    "unauthenticated",
			"message": "invalid token pair",
		})
		return
	}

	pair := &TokenPair{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken}
	if principal.NewTokens != nil {
		pair = principal.NewTokens
	}
	a.cookies.SetPair(w, pair)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"authenticated": true,
		"user_id":       principal.UserID,
	})
}

func (a *API) sessionStatus(w http.ResponseWriter, r *http.Request) {
	authenticated := a.cookies.HasPair(r)
	if a.devOverride != "" && r.Header.Get("X-Dev-Session") == a.devOverride {
		authenticated = true
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"authenticated": authenticated,
	})
}

func (a *API) destroySession(w http.ResponseWriter, r *http.Request) {
	a.cookies.ClearPair(w)
	w.WriteHeader(http.StatusNoContent)
}
