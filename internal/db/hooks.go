// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import "context"

type AfterCommitContextKey struct{}

var afterCommitKey AfterCommitContextKey

// afterCommitHooks collects callbacks registered during a transaction, to
// run once that transaction has committed.
type afterCommitHooks struct {
	fns []func()
}

func (h *afterCommitHooks) run() {
	for _, fn := range h.fns {
		fn()
	}
}

func contextWithAfterCommitHooks(ctx context.Context, h *afterCommitHooks) context.Context {
	return context.WithValue(ctx, afterCommitKey, h)
}

func afterCommitHooksFromContext(ctx context.Context) *afterCommitHooks {
	if h, ok := ctx.Value(afterCommitKey).(*afterCommitHooks); ok {
		return h
	}
	return nil
}

// AfterCommit defers fn until the transaction wrapping ctx commits; outside
// a transaction fn runs immediately. Cache invalidation must go through
// here: dropping an entry while the write is still uncommitted lets a
// concurrent reader re-cache the old row for a full TTL, after which not
// even the mutator observes its own write.
func AfterCommit(ctx context.Context, fn func()) {
	if h := afterCommitHooksFromContext(ctx); h != nil {
		h.fns = append(h.fns, fn)
		return
	}
	fn()
}
