// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"strings"
	"time"
)

const (
	AccessCookieName  = "hb_access_token"
	RefreshCookieName = "hb_refresh_token"
)

// CookieManager owns the session cookie pair at the HTTP edge. The core
// only ever sees the extracted Credentials for the duration of one
// request's validation.
type CookieManager struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieManager(secure bool, accessTTL, refreshTTL time.Duration) *CookieManager {
	return &CookieManager{
		secure:     secure,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// ExtractCredentials reads the token pair from the Authorization header or,
// failing that, from the session cookie pair.
func (c *CookieManager) ExtractCredentials(r *http.Request) Credentials {
	if bearer := r.Header.Get("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
		return Credentials{AccessToken: strings.TrimPrefix(bearer, "Bearer ")}
	}

	var creds Credentials
	if ck, err := r.Cookie(AccessCookieName); err == nil {
		creds.AccessToken = ck.Value
	}
	if ck, err := r.Cookie(RefreshCookieName); err == nil {
		creds.RefreshToken = ck.Value
	}
	return creds
}

// SetPair installs the token pair as HttpOnly, SameSite=Lax cookies.
func (c *CookieManager) SetPair(w http.ResponseWriter, pair *TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(c.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(c.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearPair expires both cookies.
func (c *CookieManager) ClearPair(w http.ResponseWriter) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// HasPair reports whether a session cookie pair is present on the request.
func (c *CookieManager) HasPair(r *http.Request) bool {
	_, errA := r.Cookie(AccessCookieName)
	_, errR := r.Cookie(RefreshCookieName)
	return errA == nil || errR == nil
}
