// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

var (
	// ErrDuplicateEvent: the event id is already in the ledger. The caller
	// acknowledges it as a success without reapplying anything.
	ErrDuplicateEvent = errors.New("event already applied")
	// ErrStaleEvent: the event is older than the last applied update for
	// the subscription. It is recorded and discarded.
	ErrStaleEvent = errors.New("event older than applied state")
)

var _ ReconcilerInterface = (*Reconciler)(nil)

// Reconciler applies billing provider events to subscription state. The
// ledger insert and the state write commit or roll back as one unit, so a
// crash between them cannot strand an event as applied-but-unrecorded.
type Reconciler struct {
	storage StorageInterface
	db      DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewReconciler(
	s StorageInterface,
	db DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	return &Reconciler{
		storage: s,
		db:      db,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Apply records the event and reconciles subscription state in a single
// transaction. Duplicate delivery returns ErrDuplicateEvent with no state
// change; out-of-order delivery returns ErrStaleEvent with the ledger row
// kept. Both are acknowledgeable outcomes, not failures.
func (r *Reconciler) Apply(ctx context.Context, event *Event) error {
	ctx, span := r.tracer.Start(ctx, "subscription.Reconciler.Apply")
	defer span.End()

	var outcome error
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		ledgerRow := &types.WebhookEvent{
			ExternalEventID: event.ID,
			Type:            event.Payload.Kind(),
			ReceivedAt:      time.Now().UTC(),
		}
		if err := r.storage.RecordWebhookEvent(txCtx, ledgerRow); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrDuplicateEvent
			}
			return fmt.Errorf("recording event %s: %w", event.ID, err)
		}

		stale, err := r.reconcile(txCtx, event)
		if err != nil {
			return err
		}
		if stale {
			// Commit the ledger row; the state stays as the newer
			// event left it.
			outcome = ErrStaleEvent
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			return ErrDuplicateEvent
		}
		return err
	}
	return outcome
}

func (r *Reconciler) reconcile(ctx context.Context, event *Event) (stale bool, err error) {
	switch p := event.Payload.(type) {
	case Unknown:
		r.logger.Warnf("unrecognized billing event type %q (id %s), recorded without effect", p.Type, event.ID)
		return false, nil
	case CheckoutCompleted:
		return r.applyCheckoutCompleted(ctx, event, p)
	case SubscriptionCreated:
		return r.applySubscriptionCreated(ctx, event, p)
	case SubscriptionUpdated:
		return r.applySubscriptionUpdated(ctx, event, p)
	case SubscriptionDeleted:
		return r.applyTransition(ctx, event, p.SubscriptionID, func(s *types.Subscription) {
			s.Status = types.SubscriptionCanceled
		})
	case InvoicePaid:
		return r.applyTransition(ctx, event, p.SubscriptionID, func(s *types.Subscription) {
			switch s.Status {
			case types.SubscriptionTrialing, types.SubscriptionPastDue, types.SubscriptionActive:
				s.Status = types.SubscriptionActive
				if !p.PeriodEnd.IsZero() {
					s.CurrentPeriodEnd = p.PeriodEnd
				}
			default:
				r.logger.Warnf("invoice.paid for %s subscription %s ignored", s.Status, s.ExternalID)
			}
		})
	case InvoicePaymentFailed:
		return r.applyTransition(ctx, event, p.SubscriptionID, func(s *types.Subscription) {
			switch {
			case p.Final:
				s.Status = types.SubscriptionCanceled
			case s.Status == types.SubscriptionActive:
				s.Status = types.SubscriptionPastDue
			default:
				r.logger.Warnf("invoice.payment_failed for %s subscription %s ignored", s.Status, s.ExternalID)
			}
		})
	default:
		return false, fmt.Errorf("unhandled payload variant %T", event.Payload)
	}
}

// applyCheckoutCompleted moves an incomplete subscription to trialing or
// active. Providers do not guarantee delivery order, so a checkout event
// arriving before subscription.created creates the row itself.
func (r *Reconciler) applyCheckoutCompleted(ctx context.Context, event *Event, p CheckoutCompleted) (bool, error) {
	status := types.SubscriptionActive
	if p.Trial {
		status = types.SubscriptionTrialing
	}

	sub, err := r.findOrCreate(ctx, event, p.SubscriptionID, p.OrganizationID, status, p.PlanType, p.PeriodEnd)
	if err != nil || sub == nil {
		return false, err
	}
	if event.Created <= sub.Version {
		return true, nil
	}

	// Checkout upgrades an incomplete subscription; any further state is
	// owned by later lifecycle events.
	if sub.Status == types.SubscriptionIncomplete {
		sub.Status = status
	}
	sub.ExternalID = p.SubscriptionID
	sub.PlanType = p.PlanType
	if !p.PeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = p.PeriodEnd
	}
	sub.Version = event.Created
	return false, r.storage.UpdateSubscription(ctx, sub)
}

func (r *Reconciler) applySubscriptionCreated(ctx context.Context, event *Event, p SubscriptionCreated) (bool, error) {
	status, err := parseStatus(p.Status)
	if err != nil {
		return false, err
	}

	sub, err := r.findOrCreate(ctx, event, p.SubscriptionID, p.OrganizationID, status, p.PlanType, p.PeriodEnd)
	if err != nil || sub == nil {
		return false, err
	}
	if event.Created <= sub.Version {
		return true, nil
	}

	// An existing row means the organization registered before checkout;
	// attach the provider's subscription to it.
	sub.ExternalID = p.SubscriptionID
	sub.Status = status
	sub.PlanType = p.PlanType
	if !p.PeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = p.PeriodEnd
	}
	sub.Version = event.Created
	return false, r.storage.UpdateSubscription(ctx, sub)
}

// findOrCreate locates the subscription by its provider id, falling back to
// the organization's pre-checkout row. When neither exists it creates the
// row itself and returns nil to signal the event is fully applied.
func (r *Reconciler) findOrCreate(
	ctx context.Context,
	event *Event,
	externalID, orgID string,
	status types.SubscriptionStatus,
	planType string,
	periodEnd time.Time,
) (*types.Subscription, error) {
	sub, err := r.storage.GetSubscriptionByExternalID(ctx, externalID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	sub, err = r.storage.GetSubscriptionByOrganizationID(ctx, orgID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	_, err = r.storage.CreateSubscription(ctx, &types.Subscription{
		OrganizationID:   orgID,
		Status:           status,
		PlanType:         planType,
		CurrentPeriodEnd: periodEnd,
		ExternalID:       externalID,
		Version:          event.Created,
	})
	return nil, err
}

// applySubscriptionUpdated takes the provider's status as authoritative;
// the version guard alone decides whether it lands.
func (r *Reconciler) applySubscriptionUpdated(ctx context.Context, event *Event, p SubscriptionUpdated) (bool, error) {
	status, err := parseStatus(p.Status)
	if err != nil {
		return false, err
	}

	return r.applyTransition(ctx, event, p.SubscriptionID, func(s *types.Subscription) {
		s.Status = status
		if p.PlanType != "" {
			s.PlanType = p.PlanType
		}
		if !p.PeriodEnd.IsZero() {
			s.CurrentPeriodEnd = p.PeriodEnd
		}
	})
}

// applyTransition loads the subscription, applies the version guard, runs
// the mutation and persists. A missing subscription propagates as an error
// so the provider redelivers after the creating event lands.
func (r *Reconciler) applyTransition(ctx context.Context, event *Event, externalID string, mutate func(*types.Subscription)) (bool, error) {
	sub, err := r.storage.GetSubscriptionByExternalID(ctx, externalID)
	if err != nil {
		return false, fmt.Errorf("loading subscription %s: %w", externalID, err)
	}
	if event.Created <= sub.Version {
		return true, nil
	}

	mutate(sub)
	sub.Version = event.Created
	return false, r.storage.UpdateSubscription(ctx, sub)
}

func parseStatus(s string) (types.SubscriptionStatus, error) {
	switch status := types.SubscriptionStatus(s); status {
	case types.SubscriptionTrialing, types.SubscriptionActive, types.SubscriptionPastDue,
		types.SubscriptionCanceled, types.SubscriptionIncomplete:
		return status, nil
	default:
		return "", fmt.Errorf("unknown subscription status %q", s)
	}
}
