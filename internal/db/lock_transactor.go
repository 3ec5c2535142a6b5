package db

import (
	"context"
	"sync"
)

type lockContextKey struct{}

type lockTransactor struct {
	mu sync.Mutex
}

// NewLockTransactor serialises units of work inside this process. The
// spreadsheet has no transactions, so read-check-write sequences such as
// "add item unless present" run under one lock. Nested calls reuse the lock.
func NewLockTransactor() Transactor {
	return &lockTransactor{}
}

func (t *lockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(lockContextKey{}).(bool); held {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(context.WithValue(ctx, lockContextKey{}, true))
}
