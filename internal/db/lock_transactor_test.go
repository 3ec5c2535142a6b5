package db

import (
	"context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func TestLockTransactor_Serialises(t *testing.T) {
	tx := NewLockTransactor()

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLockTransactor_Nested(t *testing.T) {
	tx := NewLockTransactor()

	calls := 0
	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLockTransactor_PropagatesError(t *testing.T) {
	tx := NewLockTransactor()
	want := errors.New("boom")

	err := tx.WithinTransaction(context.Background(), func(context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
}
