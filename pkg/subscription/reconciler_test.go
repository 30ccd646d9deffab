// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
)

func newReconciler(s StorageInterface, db DBClientInterface) *Reconciler {
	return NewReconciler(s, db, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

// passthroughTx makes the mocked transaction run its body directly.
func passthroughTx(db *MockDBClientInterface) {
	db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func trialSub(version int64) *types.Subscription {
	return &types.Subscription{
		ID:             "sub-row-1",
		OrganizationID: "org-1",
		Status:         types.SubscriptionTrialing,
		PlanType:       "trial",
		Version:        version,
	}
}

func TestReconciler_DuplicateEventIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)
	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 100, Payload: SubscriptionDeleted{SubscriptionID: "sub_1"}}

	if err := r.Apply(context.Background(), event); !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("expected ErrDuplicateEvent, got %v", err)
	}
}

func TestReconciler_StaleEventKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)

	existing := trialSub(200)
	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	mockStorage.EXPECT().GetSubscriptionByExternalID(gomock.Any(), "sub_1").Return(existing, nil)
	// No UpdateSubscription: the newer state stays.

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 100, Payload: InvoicePaid{SubscriptionID: "sub_1"}}

	if err := r.Apply(context.Background(), event); !errors.Is(err, ErrStaleEvent) {
		t.Fatalf("expected ErrStaleEvent, got %v", err)
	}
}

func TestReconciler_CheckoutAttachesToRegistrationRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)

	existing := trialSub(0)
	periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	mockStorage.EXPECT().GetSubscriptionByExternalID(gomock.Any(), "sub_1").Return(nil, storage.ErrNotFound)
	mockStorage.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(existing, nil)
	mockStorage.EXPECT().UpdateSubscription(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, s *types.Subscription) error {
			if s.ExternalID != "sub_1" {
				t.Errorf("expected provider id attached, got %q", s.ExternalID)
			}
			if s.Version != 300 {
				t.Errorf("expected version 300, got %d", s.Version)
			}
			if s.PlanType != "standard" {
				t.Errorf("expected plan standard, got %s", s.PlanType)
			}
			return nil
		})

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 300, Payload: CheckoutCompleted{
		SubscriptionID: "sub_1",
		OrganizationID: "org-1",
		PlanType:       "standard",
		PeriodEnd:      periodEnd,
	}}

	if err := r.Apply(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconciler_Transitions(t *testing.T) {
	testCases := []struct {
		name           string
		current        types.SubscriptionStatus
		payload        Payload
		expectedStatus types.SubscriptionStatus
	}{
		{
			name:           "invoice paid recovers past due",
			current:        types.SubscriptionPastDue,
			payload:        InvoicePaid{SubscriptionID: "sub_1"},
			expectedStatus: types.SubscriptionActive,
		},
		{
			name:           "invoice paid ends trial",
			current:        types.SubscriptionTrialing,
			payload:        InvoicePaid{SubscriptionID: "sub_1"},
			expectedStatus: types.SubscriptionActive,
		},
		{
			name:           "payment failure marks past due",
			current:        types.SubscriptionActive,
			payload:        InvoicePaymentFailed{SubscriptionID: "sub_1"},
			expectedStatus: types.SubscriptionPastDue,
		},
		{
			name:           "final payment failure cancels",
			current:        types.SubscriptionPastDue,
			payload:        InvoicePaymentFailed{SubscriptionID: "sub_1", Final: true},
			expectedStatus: types.SubscriptionCanceled,
		},
		{
			name:           "deletion cancels",
			current:        types.SubscriptionActive,
			payload:        SubscriptionDeleted{SubscriptionID: "sub_1"},
			expectedStatus: types.SubscriptionCanceled,
		},
		{
			name:           "provider status wins on update",
			current:        types.SubscriptionActive,
			payload:        SubscriptionUpdated{SubscriptionID: "sub_1", Status: "past_due"},
			expectedStatus: types.SubscriptionPastDue,
		},
		{
			name:           "invoice paid on canceled is ignored",
			current:        types.SubscriptionCanceled,
			payload:        InvoicePaid{SubscriptionID: "sub_1"},
			expectedStatus: types.SubscriptionCanceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockDB := NewMockDBClientInterface(ctrl)
			passthroughTx(mockDB)

			existing := trialSub(100)
			existing.Status = tc.current
			existing.ExternalID = "sub_1"

			mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
			mockStorage.EXPECT().GetSubscriptionByExternalID(gomock.Any(), "sub_1").Return(existing, nil)
			mockStorage.EXPECT().UpdateSubscription(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, s *types.Subscription) error {
					if s.Status != tc.expectedStatus {
						t.Errorf("expected status %s, got %s", tc.expectedStatus, s.Status)
					}
					if s.Version != 200 {
						t.Errorf("expected version 200, got %d", s.Version)
					}
					return nil
				})

			r := newReconciler(mockStorage, mockDB)
			event := &Event{ID: "evt_1", Created: 200, Payload: tc.payload}

			if err := r.Apply(context.Background(), event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestReconciler_UnknownEventRecordedWithoutEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)

	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e *types.WebhookEvent) error {
			if e.ExternalEventID != "evt_1" || e.Type != "customer.updated" {
				t.Errorf("unexpected ledger row: %+v", e)
			}
			return nil
		})

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 100, Payload: Unknown{Type: "customer.updated"}}

	if err := r.Apply(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconciler_FailedStateWriteLeavesNoLedgerRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)

	// A transactional fake: writes staged inside the body are discarded
	// when it returns an error, the way a real transaction rolls back.
	var ledger []string
	mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			staged := len(ledger)
			if err := fn(ctx); err != nil {
				ledger = ledger[:staged]
				return err
			}
			return nil
		})

	writeErr := errors.New("connection reset")
	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, e *types.WebhookEvent) error {
			ledger = append(ledger, e.ExternalEventID)
			return nil
		})
	mockStorage.EXPECT().GetSubscriptionByExternalID(gomock.Any(), "sub_1").Return(trialSub(100), nil)
	mockStorage.EXPECT().UpdateSubscription(gomock.Any(), gomock.Any()).Return(writeErr)

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 200, Payload: SubscriptionDeleted{SubscriptionID: "sub_1"}}

	if err := r.Apply(context.Background(), event); !errors.Is(err, writeErr) {
		t.Fatalf("expected the state write error, got %v", err)
	}
	// The event must not be recorded as seen: the provider will redeliver
	// it, and a surviving ledger row would turn that into a dropped event.
	if len(ledger) != 0 {
		t.Errorf("expected no ledger row after rollback, got %v", ledger)
	}
}

func TestReconciler_InfraFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dbErr := errors.New("db error")
	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)

	mockStorage.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	mockStorage.EXPECT().GetSubscriptionByExternalID(gomock.Any(), "sub_1").Return(nil, dbErr)

	r := newReconciler(mockStorage, mockDB)
	event := &Event{ID: "evt_1", Created: 100, Payload: InvoicePaid{SubscriptionID: "sub_1"}}

	if err := r.Apply(context.Background(), event); !errors.Is(err, dbErr) {
		t.Fatalf("expected infra error, got %v", err)
	}
}
