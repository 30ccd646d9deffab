// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newCookieManager() *CookieManager {
	return NewCookieManager(true, time.Hour, 24*time.Hour)
}

func TestCookieManager_ExtractCredentials(t *testing.T) {
	testCases := []struct {
		name     string
		prepare  func(*http.Request)
		expected Credentials
	}{
		{
			name:     "no credentials",
			prepare:  func(r *http.Request) {},
			expected: Credentials{},
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer api-token")
			},
			expected: Credentials{AccessToken: "api-token"},
		},
		{
			name: "cookie pair",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-access"})
				r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "cookie-refresh"})
			},
			expected: Credentials{AccessToken: "cookie-access", RefreshToken: "cookie-refresh"},
		},
		{
			name: "bearer header wins over cookies",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer api-token")
				r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-access"})
				r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "cookie-refresh"})
			},
			expected: Credentials{AccessToken: "api-token"},
		},
		{
			name: "refresh cookie alone",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "cookie-refresh"})
			},
			expected: Credentials{RefreshToken: "cookie-refresh"},
		},
		{
			name: "malformed authorization scheme falls back to cookies",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-access"})
			},
			expected: Credentials{AccessToken: "cookie-access"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)

			creds := newCookieManager().ExtractCredentials(req)
			if creds != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, creds)
			}
		})
	}
}

func TestCookieManager_SetPair(t *testing.T) {
	rec := httptest.NewRecorder()
	newCookieManager().SetPair(rec, &TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, ck := range cookies {
		if !ck.HttpOnly {
			t.Errorf("cookie %s must be HttpOnly", ck.Name)
		}
		if !ck.Secure {
			t.Errorf("cookie %s must be Secure", ck.Name)
		}
		if ck.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie %s must be SameSite=Lax", ck.Name)
		}
		if ck.MaxAge <= 0 {
			t.Errorf("cookie %s must have a positive MaxAge, got %d", ck.Name, ck.MaxAge)
		}
	}
}

func TestCookieManager_ClearPair(t *testing.T) {
	rec := httptest.NewRecorder()
	newCookieManager().ClearPair(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, ck := range cookies {
		if ck.MaxAge >= 0 {
			t.Errorf("cookie %s must expire, got MaxAge %d", ck.Name, ck.MaxAge)
		}
		if ck.Value != "" {
			t.Errorf("cookie %s must be emptied", ck.Name)
		}
	}
}

func TestCookieManager_HasPair(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if newCookieManager().HasPair(req) {
		t.Error("expected no pair on a bare request")
	}

	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "refresh"})
	if !newCookieManager().HasPair(req) {
		t.Error("expected pair with a refresh cookie present")
	}
}
