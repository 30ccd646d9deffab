// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/handbook-service/internal/cache"
	"github.com/canonical/handbook-service/internal/config"
	"github.com/canonical/handbook-service/internal/db"
	"github.com/canonical/handbook-service/internal/identity"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/pkg/authentication"
	"github.com/canonical/handbook-service/pkg/authorization"
	"github.com/canonical/handbook-service/pkg/handbook"
	"github.com/canonical/handbook-service/pkg/metrics"
	"github.com/canonical/handbook-service/pkg/organization"
	"github.com/canonical/handbook-service/pkg/pipeline"
	"github.com/canonical/handbook-service/pkg/status"
	"github.com/canonical/handbook-service/pkg/subscription"
	"github.com/canonical/handbook-service/pkg/tenant"
	"github.com/canonical/handbook-service/pkg/webhooks"
)

// NewRouter assembles the domain services and mounts every API. The
// network-dependent pieces (token verifier, refresher, identity client)
// are constructed by the caller; everything downstream of storage is wired
// here.
func NewRouter(
	cfg *config.EnvSpec,
	verifier authentication.TokenVerifierInterface,
	refresher authentication.RefresherInterface,
	identityClient identity.ClientInterface,
	s storage.StorageInterface,
	cacheClient cache.CacheInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		db.TransactionMiddleware(dbClient, logger),
	)

	resolver := tenant.NewResolver(
		s,
		cacheClient,
		cfg.BaseDomain,
		splitLabels(cfg.ReservedLabels),
		cfg.TenantCacheTTL,
		tracer, monitor, logger,
	)
	authenticator := authentication.NewAuthenticator(verifier, refresher, tracer, monitor, logger)
	cookies := authentication.NewCookieManager(cfg.CookieSecure, cfg.AccessCookieTTL, cfg.RefreshCookieTTL)

	directory := authorization.NewDirectory(s, cacheClient, cfg.TenantCacheTTL, tracer, monitor, logger)
	hierarchy := authorization.NewHierarchyResolver(s, tracer, monitor, logger)
	authorizer := authorization.NewAuthorizer(directory, hierarchy, tracer, monitor, logger)
	gate := subscription.NewGate(s, tracer, monitor, logger)

	pipe := pipeline.NewPipeline(resolver, authenticator, authorizer, gate, tracer, monitor, logger)
	protect := pipeline.NewMiddleware(pipe, cookies, logger)

	reconciler := subscription.NewReconciler(s, dbClient, tracer, monitor, logger)
	registrar := webhooks.NewRegistrar(s, dbClient, identityClient, tracer, monitor, logger)
	sigVerifier := webhooks.NewSignatureVerifier(cfg.BillingWebhookSecret, cfg.BillingWebhookTolerance)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	authentication.NewAPI(authenticator, cookies, cfg.DevSessionOverride, logger).RegisterEndpoints(router)
	webhooks.NewAPI(reconciler, registrar, sigVerifier, logger).RegisterEndpoints(router)
	handbook.NewAPI(handbook.NewService(s, tracer, monitor, logger), logger).RegisterEndpoints(router, protect)
	organization.NewAPI(resolver, directory, s, logger).RegisterEndpoints(router, protect)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

// splitLabels tolerates both a pre-split list and a single comma-joined
// value, which is how envconfig delivers the default.
func splitLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		for _, part := range strings.Split(l, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
