// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/handbook-service/internal/identity"
	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

const trialPeriod = 30 * 24 * time.Hour

var ErrSlugTaken = errors.New("organization slug already in use")

type RegistrationRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name" validate:"required"`
	OrganizationSlug string `json:"organization_slug" validate:"required,hostname_rfc1123"`
}

type RegistrationResult struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
}

// Registrar provisions a new organization from the marketing site's signup
// hook: identity, user, organization, admin membership, an empty handbook
// and a trialing subscription.
type Registrar struct {
	storage    RegistrationStorageInterface
	db         DBClientInterface
	identities identity.ClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewRegistrar(
	s RegistrationStorageInterface,
	db DBClientInterface,
	identities identity.ClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Registrar {
	return &Registrar{
		storage:    s,
		db:         db,
		identities: identities,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// Register is idempotent on the identity and user, so a redelivered hook
// for a taken slug fails cleanly without orphaning either. The database
// writes share one transaction; the identity call sits outside it and
// relies on find-or-create for safety.
func (r *Registrar) Register(ctx context.Context, req *RegistrationRequest) (*RegistrationResult, error) {
	ctx, span := r.tracer.Start(ctx, "webhooks.Registrar.Register")
	defer span.End()

	identityID, err := r.identities.GetIdentityIDByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("identity lookup failed: %w", err)
	}
	if identityID == "" {
		identityID, err = r.identities.CreateIdentity(ctx, req.Email, req.Name)
		if err != nil {
			return nil, fmt.Errorf("identity creation failed: %w", err)
		}
	}

	var result RegistrationResult
	err = r.db.WithTx(ctx, func(txCtx context.Context) error {
		user, err := r.findOrCreateUser(txCtx, identityID, req)
		if err != nil {
			return err
		}

		org, err := r.storage.CreateOrganization(txCtx, &types.Organization{
			Slug: req.OrganizationSlug,
			Name: req.OrganizationName,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrSlugTaken
			}
			return fmt.Errorf("organization creation failed: %w", err)
		}

		if _, err := r.storage.AddMember(txCtx, org.ID, user.ID, types.RoleAdmin, true); err != nil {
			return fmt.Errorf("admin membership failed: %w", err)
		}

		if _, err := r.storage.CreateHandbook(txCtx, &types.Handbook{
			OrganizationID: org.ID,
			Title:          req.OrganizationName,
		}); err != nil {
			return fmt.Errorf("handbook creation failed: %w", err)
		}

		// New organizations start trialing; checkout completion later
		// attaches the billing provider's subscription.
		if _, err := r.storage.CreateSubscription(txCtx, &types.Subscription{
			OrganizationID:   org.ID,
			Status:           types.SubscriptionTrialing,
			PlanType:         "trial",
			CurrentPeriodEnd: time.Now().UTC().Add(trialPeriod),
		}); err != nil {
			return fmt.Errorf("subscription creation failed: %w", err)
		}

		result = RegistrationResult{UserID: user.ID, OrganizationID: org.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Infof("registered organization %s (%s) for user %s", req.OrganizationSlug, result.OrganizationID, result.UserID)
	return &result, nil
}

func (r *Registrar) findOrCreateUser(ctx context.Context, identityID string, req *RegistrationRequest) (*types.User, error) {
	user, err := r.storage.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return r.storage.CreateUser(ctx, &types.User{
		ID:    identityID,
		Email: req.Email,
		Name:  req.Name,
	})
}
