// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/storage"
	"github.com/canonical/handbook-service/internal/types"
	"github.com/canonical/handbook-service/pkg/tenant"
)

//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_organization.go -source=./interfaces.go

type orgFixture struct {
	resolver  *MockResolverInterface
	directory *MockDirectoryInterface
	storage   *MockStorageInterface
	api       *API
}

func newOrgFixture(ctrl *gomock.Controller) *orgFixture {
	f := &orgFixture{
		resolver:  NewMockResolverInterface(ctrl),
		directory: NewMockDirectoryInterface(ctrl),
		storage:   NewMockStorageInterface(ctrl),
	}
	f.api = NewAPI(f.resolver, f.directory, f.storage, logging.NewNoopLogger())
	return f
}

// serve invokes a handler the way the router does: tenant in context, URL
// params on the chi route context. The pipeline middleware is covered by
// its own tests.
func serve(handler http.HandlerFunc, body string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = tenant.WithOrganization(ctx, &types.Organization{ID: "org-1", Slug: "brf-eken", Name: "BRF Eken"})

	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

func TestAPI_Rename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrgFixture(ctrl)
	f.resolver.EXPECT().Rename(gomock.Any(), "org-1", "BRF Eken II").Return(nil)

	rec := serve(f.api.rename, `{"name": "BRF Eken II"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestAPI_RenameEmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrgFixture(ctrl)

	rec := serve(f.api.rename, `{"name": ""}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAPI_SetDomain(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*orgFixture)
		expectedStatus int
	}{
		{
			name: "attach domain",
			body: `{"domain": "handbok.brfeken.se"}`,
			setupMocks: func(f *orgFixture) {
				f.resolver.EXPECT().SetCustomDomain(gomock.Any(), "org-1", gomock.Any()).DoAndReturn(
					func(ctx context.Context, orgID string, domain *string) error {
						if domain == nil || *domain != "handbok.brfeken.se" {
							t.Errorf("unexpected domain %v", domain)
						}
						return nil
					})
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "empty string detaches",
			body: `{"domain": ""}`,
			setupMocks: func(f *orgFixture) {
				f.resolver.EXPECT().SetCustomDomain(gomock.Any(), "org-1", gomock.Nil()).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "null detaches",
			body: `{"domain": null}`,
			setupMocks: func(f *orgFixture) {
				f.resolver.EXPECT().SetCustomDomain(gomock.Any(), "org-1", gomock.Nil()).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "domain already claimed",
			body: `{"domain": "handbok.brfeken.se"}`,
			setupMocks: func(f *orgFixture) {
				f.resolver.EXPECT().SetCustomDomain(gomock.Any(), "org-1", gomock.Any()).Return(storage.ErrDuplicateKey)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOrgFixture(ctrl)
			tc.setupMocks(f)

			rec := serve(f.api.setDomain, tc.body, nil)
			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_UpdateRole(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*orgFixture)
		expectedStatus int
	}{
		{
			name: "promote to editor",
			body: `{"role": "editor"}`,
			setupMocks: func(f *orgFixture) {
				f.directory.EXPECT().UpdateRole(gomock.Any(), "org-1", "user-2", types.RoleEditor).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "superadmin is not grantable here",
			body:           `{"role": "superadmin"}`,
			setupMocks:     func(f *orgFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown role",
			body:           `{"role": "owner"}`,
			setupMocks:     func(f *orgFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "membership not found",
			body: `{"role": "member"}`,
			setupMocks: func(f *orgFixture) {
				f.directory.EXPECT().UpdateRole(gomock.Any(), "org-1", "user-2", types.RoleMember).Return(storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOrgFixture(ctrl)
			tc.setupMocks(f)

			rec := serve(f.api.updateRole, tc.body, map[string]string{"userID": "user-2"})
			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_Subscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrgFixture(ctrl)
	f.storage.EXPECT().GetSubscriptionByOrganizationID(gomock.Any(), "org-1").Return(&types.Subscription{
		OrganizationID: "org-1",
		Status:         types.SubscriptionPastDue,
		PlanType:       "standard",
	}, nil)

	rec := serve(f.api.subscription, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if payload["status"] != "past_due" || payload["entitled"] != false {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestAPI_ListMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrgFixture(ctrl)
	f.storage.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return([]*types.Membership{
		{UserID: "user-1", OrganizationID: "org-1", Role: types.RoleAdmin},
		{UserID: "user-2", OrganizationID: "org-1", Role: types.RoleMember},
	}, nil)

	rec := serve(f.api.listMembers, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
