// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/tracing"
	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/authorization"
)

func sub(status types.SubscriptionStatus) *types.Subscription {
	return &types.Subscription{OrganizationID: "org-1", Status: status}
}

func TestGate_Check(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name            string
		class           authorization.ActionClass
		kind            authorization.ResourceKind
		setupMocks      func(*MockStorageInterface)
		expectedAllowed bool
		expectedBilling bool
	}{
		{
			name:  "entitled subscription allows content reads",
			class: authorization.ActionRead,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionActive), nil)
			},
			expectedAllowed: true,
		},
		{
			name:  "canceled blocks content reads",
			class: authorization.ActionRead,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionCanceled), nil)
			},
			expectedBilling: true,
		},
		{
			name:  "subscription read exempt",
			class: authorization.ActionRead,
			kind:  authorization.KindSubscription,
			setupMocks: func(s *MockStorageInterface) {
			},
			expectedAllowed: true,
		},
		{
			name:  "org management exempt so billing stays reachable",
			class: authorization.ActionWrite,
			kind:  authorization.KindOrganization,
			setupMocks: func(s *MockStorageInterface) {
			},
			expectedAllowed: true,
		},
		{
			name:  "subscription management exempt",
			class: authorization.ActionWrite,
			kind:  authorization.KindSubscription,
			setupMocks: func(s *MockStorageInterface) {
			},
			expectedAllowed: true,
		},
		{
			name:  "trialing allows content writes",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionTrialing), nil)
			},
			expectedAllowed: true,
		},
		{
			name:  "active allows content writes",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionActive), nil)
			},
			expectedAllowed: true,
		},
		{
			name:  "past due blocks content writes",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionPastDue), nil)
			},
			expectedBilling: true,
		},
		{
			name:  "canceled blocks content writes",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(sub(types.SubscriptionCanceled), nil)
			},
			expectedBilling: true,
		},
		{
			name:  "no subscription blocks content writes",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(nil, storage.ErrNotFound)
			},
			expectedBilling: true,
		},
		{
			name:  "store outage fails open",
			class: authorization.ActionWrite,
			kind:  authorization.KindPage,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(nil, dbErr)
			},
			expectedAllowed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tc.setupMocks(mockStorage)

			g := NewGate(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
			result := g.Check(context.Background(), "org-1", tc.class, tc.kind)

			if result.Allowed != tc.expectedAllowed {
				t.Errorf("expected allowed=%v, got %v (%s)", tc.expectedAllowed, result.Allowed, result.Reason)
			}
			if result.RedirectToBilling != tc.expectedBilling {
				t.Errorf("expected billing redirect=%v, got %v", tc.expectedBilling, result.RedirectToBilling)
			}
		})
	}
}
