// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

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
)

//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_tenant.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_cache.go -source=../../internal/cache/interfaces.go

const (
	baseDomain = "handbook.test"
	cacheTTL   = 0
)

var reserved = []string{"www", "app", "api", "static"}

func newResolver(s StorageInterface, c *MockCacheInterface) *Resolver {
	return NewResolver(s, c, baseDomain, reserved, cacheTTL, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestResolver_SubdomainLabel(t *testing.T) {
	testCases := []struct {
		name     string
		host     string
		expected string
	}{
		{"plain subdomain", "brf-eken.handbook.test", "brf-eken"},
		{"base domain alone", "handbook.test", ""},
		{"reserved www", "www.handbook.test", ""},
		{"reserved app", "app.handbook.test", ""},
		{"nested labels", "a.b.handbook.test", ""},
		{"unrelated host", "example.com", ""},
		{"empty", "", ""},
	}

	r := newResolver(nil, nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.subdomainLabel(tc.host); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	testCases := []struct {
		host     string
		expected string
	}{
		{"BRF-Eken.Handbook.Test", "brf-eken.handbook.test"},
		{"brf-eken.handbook.test:8080", "brf-eken.handbook.test"},
		{"brf-eken.handbook.test.", "brf-eken.handbook.test"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := normalizeHost(tc.host); got != tc.expected {
			t.Errorf("normalizeHost(%q): expected %q, got %q", tc.host, tc.expected, got)
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	org := &types.Organization{ID: "org-1", Slug: "brf-eken", Name: "BRF Eken"}
	dbErr := errors.New("connection reset")

	testCases := []struct {
		name        string
		host        string
		pathSlug    string
		setupMocks  func(*MockStorageInterface, *MockCacheInterface)
		expectedOrg *types.Organization
		expectedErr error
	}{
		{
			name: "subdomain resolves",
			host: "brf-eken.handbook.test",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(nil, false)
				s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(org, nil)
				c.EXPECT().Set(gomock.Any(), "tenant:slug:brf-eken", org, gomock.Any())
			},
			expectedOrg: org,
		},
		{
			name: "cache hit skips storage",
			host: "brf-eken.handbook.test",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(org, true)
			},
			expectedOrg: org,
		},
		{
			name:     "path slug on base domain",
			host:     "handbook.test",
			pathSlug: "BRF-Eken",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(nil, false)
				s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(org, nil)
				c.EXPECT().Set(gomock.Any(), "tenant:slug:brf-eken", org, gomock.Any())
			},
			expectedOrg: org,
		},
		{
			name: "custom domain resolves",
			host: "handbok.brfeken.se",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:domain:handbok.brfeken.se").Return(nil, false)
				s.EXPECT().GetOrganizationByDomain(gomock.Any(), "handbok.brfeken.se").Return(org, nil)
				c.EXPECT().Set(gomock.Any(), "tenant:domain:handbok.brfeken.se", org, gomock.Any())
			},
			expectedOrg: org,
		},
		{
			name:     "unknown custom domain falls back to path slug",
			host:     "unknown.example.com",
			pathSlug: "brf-eken",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:domain:unknown.example.com").Return(nil, false)
				s.EXPECT().GetOrganizationByDomain(gomock.Any(), "unknown.example.com").Return(nil, storage.ErrNotFound)
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(nil, false)
				s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(org, nil)
				c.EXPECT().Set(gomock.Any(), "tenant:slug:brf-eken", org, gomock.Any())
			},
			expectedOrg: org,
		},
		{
			name:        "reserved label without path slug",
			host:        "www.handbook.test",
			setupMocks:  func(s *MockStorageInterface, c *MockCacheInterface) {},
			expectedErr: ErrNoTenant,
		},
		{
			name: "unknown slug",
			host: "missing.handbook.test",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:missing").Return(nil, false)
				s.EXPECT().GetOrganizationBySlug(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNoTenant,
		},
		{
			name: "transient failure retried once",
			host: "brf-eken.handbook.test",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(nil, false)
				gomock.InOrder(
					s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(nil, dbErr),
					s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(org, nil),
				)
				c.EXPECT().Set(gomock.Any(), "tenant:slug:brf-eken", org, gomock.Any())
			},
			expectedOrg: org,
		},
		{
			name: "persistent failure surfaces",
			host: "brf-eken.handbook.test",
			setupMocks: func(s *MockStorageInterface, c *MockCacheInterface) {
				c.EXPECT().Get(gomock.Any(), "tenant:slug:brf-eken").Return(nil, false)
				s.EXPECT().GetOrganizationBySlug(gomock.Any(), "brf-eken").Return(nil, dbErr).Times(2)
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

			r := newResolver(mockStorage, mockCache)
			got, err := r.Resolve(context.Background(), tc.host, tc.pathSlug)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tc.expectedOrg.ID {
				t.Errorf("expected org %s, got %s", tc.expectedOrg.ID, got.ID)
			}
		})
	}
}

func TestResolver_RenameInvalidatesCache(t *testing.T) {
	domain := "handbok.brfeken.se"
	org := &types.Organization{ID: "org-1", Slug: "brf-eken", Name: "BRF Eken", Domain: &domain}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockCache := NewMockCacheInterface(ctrl)

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(org, nil)
	mockStorage.EXPECT().UpdateOrganizationName(gomock.Any(), "org-1", "BRF Eken II").Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), "tenant:slug:brf-eken")
	mockCache.EXPECT().Delete(gomock.Any(), "tenant:domain:handbok.brfeken.se")

	r := newResolver(mockStorage, mockCache)
	if err := r.Rename(context.Background(), "org-1", "BRF Eken II"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolver_SetCustomDomainInvalidatesBothEntries(t *testing.T) {
	oldDomain := "old.brfeken.se"
	newDomain := "New.BRFEken.se"
	org := &types.Organization{ID: "org-1", Slug: "brf-eken", Domain: &oldDomain}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockCache := NewMockCacheInterface(ctrl)

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(org, nil)
	mockStorage.EXPECT().SetOrganizationDomain(gomock.Any(), "org-1", &newDomain).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), "tenant:slug:brf-eken")
	mockCache.EXPECT().Delete(gomock.Any(), "tenant:domain:old.brfeken.se")
	mockCache.EXPECT().Delete(gomock.Any(), "tenant:domain:new.brfeken.se")

	r := newResolver(mockStorage, mockCache)
	if err := r.SetCustomDomain(context.Background(), "org-1", &newDomain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
