// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// Tenant resolution
	BaseDomain       string        `envconfig:"base_domain" default:"handbook.test"`
	ReservedLabels   []string      `envconfig:"reserved_labels" default:"www,app,api,static"`
	TenantCacheTTL   time.Duration `envconfig:"tenant_cache_ttl" default:"60s"`
	TenantCacheBytes int64         `envconfig:"tenant_cache_bytes" default:"8388608"`

	// Identity provider
	OIDCIssuer         string        `envconfig:"oidc_issuer" required:"true"`
	OIDCJwksURL        string        `envconfig:"oidc_jwks_url"`
	OIDCTokenURL       string        `envconfig:"oidc_token_url"`
	OIDCClientID       string        `envconfig:"oidc_client_id"`
	OIDCClientSecret   string        `envconfig:"oidc_client_secret"`
	IdentityAdminURL   string        `envconfig:"identity_admin_url" required:"true"`
	IdentityTimeout    time.Duration `envconfig:"identity_timeout" default:"5s"`
	DevSessionOverride string        `envconfig:"dev_session_override"`

	// Session cookies
	CookieSecure     bool          `envconfig:"cookie_secure" default:"true"`
	AccessCookieTTL  time.Duration `envconfig:"access_cookie_ttl" default:"24h"`
	RefreshCookieTTL time.Duration `envconfig:"refresh_cookie_ttl" default:"720h"`

	// Billing provider webhook
	BillingWebhookSecret    string        `envconfig:"billing_webhook_secret" required:"true"`
	BillingWebhookTolerance time.Duration `envconfig:"billing_webhook_tolerance" default:"5m"`
}
