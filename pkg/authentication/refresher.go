// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/canonical/handbook-service/internal/logging"
	"github.com/canonical/handbook-service/internal/monitoring"
	"github.com/canonical/handbook-service/internal/tracing"
)

// rotatedGrace is how long a consumed refresh token keeps resolving to the
// pair it was exchanged for. A request that raced the rotation and arrives
// just after the singleflight window closed still gets the new pair instead
// of a hard logout.
const rotatedGrace = time.Minute

const refreshRetryBackoff = 100 * time.Millisecond

// Refresher performs the refresh-token exchange against the identity
// provider's token endpoint. Exchanges are single-flight per refresh token:
// at most one upstream call per stale token, with all concurrent callers
// sharing its result.
type Refresher struct {
	conf    *oauth2.Config
	timeout time.Duration

	group   singleflight.Group
	mu      sync.Mutex
	rotated map[string]rotatedEntry

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type rotatedEntry struct {
	pair *TokenPair
	at   time.Time
}

var _ RefresherInterface = (*Refresher)(nil)

func NewRefresher(
	tokenURL, clientID, clientSecret string,
	timeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Refresher {
	return &Refresher{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
		timeout: timeout,
		rotated: make(map[string]rotatedEntry),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, span := r.tracer.Start(ctx, "authentication.Refresher.Refresh")
	defer span.End()

	if pair := r.recentlyRotated(refreshToken); pair != nil {
		return pair, nil
	}

	v, err, _ := r.group.Do(refreshToken, func() (interface{}, error) {
		// Re-check under the flight: a caller that lost the race to a
		// just-finished flight must not trigger a second rotation.
		if pair := r.recentlyRotated(refreshToken); pair != nil {
			return pair, nil
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		// One retry for provider outages; a rejected grant is final and
		// retrying it would only burn the token's grace window.
		var tok *oauth2.Token
		err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(refreshRetryBackoff)), func(ctx context.Context) error {
			var err error
			tok, err = r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
			if err != nil {
				var retrieveErr *oauth2.RetrieveError
				if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < http.StatusInternalServerError {
					return err
				}
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("refresh exchange failed: %w", err)
		}

		pair := &TokenPair{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			Expiry:       tok.Expiry,
		}
		if pair.RefreshToken == "" {
			// Provider did not rotate; the old token stays valid.
			pair.RefreshToken = refreshToken
		}

		r.remember(refreshToken, pair)
		return pair, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*TokenPair), nil
}

func (r *Refresher) recentlyRotated(refreshToken string) *TokenPair {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.rotated[refreshToken]
	if !ok || time.Since(e.at) > rotatedGrace {
		return nil
	}
	return e.pair
}

func (r *Refresher) remember(refreshToken string, pair *TokenPair) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, e := range r.rotated {
		if now.Sub(e.at) > rotatedGrace {
			delete(r.rotated, k)
		}
	}
	r.rotated[refreshToken] = rotatedEntry{pair: pair, at: now}
}
