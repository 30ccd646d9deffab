// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/pkg/subscription"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// API terminates inbound webhooks from the billing provider and the signup
// flow. Signature verification happens before any processing; an unsigned
// or mis-signed delivery never reaches the reconciler.
type API struct {
	reconciler subscription.ReconcilerInterface
	registrar  RegistrarInterface
	verifier   VerifierInterface

	logger logging.LoggerInterface
}

func NewAPI(reconciler subscription.ReconcilerInterface, registrar RegistrarInterface, verifier VerifierInterface, logger logging.LoggerInterface) *API {
	return &API{
		reconciler: reconciler,
		registrar:  registrar,
		verifier:   verifier,
		logger:     logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/webhooks/billing", a.handleBilling)
	mux.Post("/api/v0/webhooks/registration", a.handleRegistration)
}

func (a *API) handleBilling(w http.ResponseWriter, r *http.Request) {
	body, ok := a.verifiedBody(w, r)
	if !ok {
		return
	}

	event, err := subscription.DecodeEvent(body)
	if err != nil {
		a.logger.Errorf("rejecting billing event: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    "invalid_event",
			"message": "event could not be decoded",
		})
		return
	}

	err = a.reconciler.Apply(r.Context(), event)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{"received": true})
	case errors.Is(err, subscription.ErrDuplicateEvent):
		// Redelivery; acknowledge so the provider stops retrying.
		writeJSON(w, http.StatusOK, map[string]interface{}{"received": true, "duplicate": true})
	case errors.Is(err, subscription.ErrStaleEvent):
		writeJSON(w, http.StatusOK, map[string]interface{}{"received": true, "stale": true})
	default:
		// A transient failure: fail the delivery and let the provider
		// redeliver, the ledger makes the retry idempotent.
		a.logger.Errorf("billing event %s failed: %v", event.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"code":    "event_failed",
			"message": "event could not be applied",
		})
	}
}

func (a *API) handleRegistration(w http.ResponseWriter, r *http.Request) {
	body, ok := a.verifiedBody(w, r)
	if !ok {
		return
	}

	var req RegistrationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    "invalid_request",
			"message": "request could not be decoded",
		})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    "invalid_request",
			"message": err.Error(),
		})
		return
	}

	result, err := a.registrar.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"code":    "slug_taken",
				"message": "organization slug already in use",
			})
			return
		}
		a.logger.Errorf("registration for %s failed: %v", req.OrganizationSlug, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"code":    "registration_failed",
			"message": "registration could not be completed",
		})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// verifiedBody reads the raw payload and checks its signature. The raw
// bytes are what was signed, so verification precedes any decoding.
func (a *API) verifiedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    "invalid_request",
			"message": "body could not be read",
		})
		return nil, false
	}

	if err := a.verifier.Verify(r.Header.Get(SignatureHeader), body); err != nil {
		a.logger.Security().WebhookRejected(err.Error())
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"code":    "invalid_signature",
			"message": "signature verification failed",
		})
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
