package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope. A call made
	// with a context that already carries a transaction joins it.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// WithLock marks ctx so that reads made with it take row locks.
	WithLock(ctx context.Context) context.Context
}
