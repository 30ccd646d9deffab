// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/handbook-service/internal/cache"
	"github.com/canonical/handbook-service/internal/config"
	"github.com/canonical/handbook-service/internal/db"
	"github.com/canonical/handbook-service/internal/identity"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring/prometheus"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/pkg/authentication"
	"github.com/canonical/handbook-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("handbook-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	cacheClient, err := cache.NewCache(specs.TenantCacheBytes)
	if err != nil {
		return fmt.Errorf("failed to create cache: %v", err)
	}
	defer cacheClient.Close()

	var verifier authentication.TokenVerifierInterface
	if specs.OIDCJwksURL != "" {
		// Direct JWKS configuration for IdPs without discovery.
		idTokenVerifier, err := authentication.NewProviderWithJWKS(context.Background(), specs.OIDCIssuer, specs.OIDCJwksURL)
		if err != nil {
			return fmt.Errorf("failed to configure JWKS verifier: %v", err)
		}
		verifier = authentication.NewJWTVerifierDirect(idTokenVerifier, tracer, monitor, logger)
	} else {
		provider, err := authentication.NewProvider(context.Background(), specs.OIDCIssuer)
		if err != nil {
			return fmt.Errorf("failed to reach OIDC provider: %v", err)
		}
		verifier = authentication.NewJWTVerifier(provider, tracer, monitor, logger)
	}

	refresher := authentication.NewRefresher(
		specs.OIDCTokenURL,
		specs.OIDCClientID,
		specs.OIDCClientSecret,
		specs.IdentityTimeout,
		tracer, monitor, logger,
	)

	identityClient := identity.NewClient(specs.IdentityAdminURL, specs.IdentityTimeout, tracer, monitor, logger)

	router := web.NewRouter(
		specs,
		verifier,
		refresher,
		identityClient,
		s,
		cacheClient,
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
