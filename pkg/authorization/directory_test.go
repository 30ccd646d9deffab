// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

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

func newDirectory(s StorageInterface, c *MockCacheInterface) *Directory {
	return NewDirectory(s, c, time.Minute, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestDirectory_Lookup(t *testing.T) {
	member := membership("org-1", types.RoleMember)
	super := membership("org-9", types.RoleSuperadmin)
	dbErr := errors.New("db error")
	key := "membership:user-1:org-1"

	testCases := []struct {
		name        string
		setupMocks  func(*MockStorageInterface, *MockCacheInterface)
		expected    *types.Membership
		expectedErr error
	}{
		{
			name: "cache hit",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(member, true)
			},
			expected: member,
		},
		{
			name: "negative cache hit",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(noMembership{}, true)
			},
			expected: nil,
		},
		{
			name: "store hit is cached",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				s.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(member, nil)
				c.EXPECT().Set(gomock.Any(), key, member, gomock.Any())
			},
			expected: member,
		},
		{
			name: "superadmin fallback",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				s.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(nil, storage.ErrNotFound)
				s.EXPECT().GetSuperadminMembership(gomock.Any(), "user-1").Return(super, nil)
				c.EXPECT().Set(gomock.Any(), key, super, gomock.Any())
			},
			expected: super,
		},
		{
			name: "no membership cached negatively",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				s.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(nil, storage.ErrNotFound)
				s.EXPECT().GetSuperadminMembership(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)
				c.EXPECT().Set(gomock.Any(), key, noMembership{}, gomock.Any())
			},
			expected: nil,
		},
		{
			name: "store failure propagates",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), key).Return(nil, false)
				s.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(nil, dbErr).Times(2)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockCache := NewMockCacheInterface(ctrl)
			tc.setupMocks(mockStorage, mockCache)

			d := newDirectory(mockStorage, mockCache)
			got, err := d.Lookup(context.Background(), "user-1", "org-1")

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tc.expected == nil) {
				t.Fatalf("expected membership %v, got %v", tc.expected, got)
			}
			if got != nil && got.Role != tc.expected.Role {
				t.Errorf("expected role %s, got %s", tc.expected.Role, got.Role)
			}
		})
	}
}

func TestDirectory_UpdateRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockCache := NewMockCacheInterface(ctrl)

	mockStorage.EXPECT().UpdateMemberRole(gomock.Any(), "org-1", "user-1", types.RoleEditor).Return(nil)
	// Invalidation happens before UpdateRole returns.
	mockCache.EXPECT().Delete(gomock.Any(), "membership:user-1:org-1")

	d := newDirectory(mockStorage, mockCache)
	if err := d.UpdateRole(context.Background(), "org-1", "user-1", types.RoleEditor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDirectory_UpdateRoleRejectsUnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := newDirectory(NewMockStorageInterface(ctrl), NewMockCacheInterface(ctrl))
	if err := d.UpdateRole(context.Background(), "org-1", "user-1", types.Role("owner")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
