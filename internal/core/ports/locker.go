package ports

import (
	"context"
	"time"
)

// Locker serializes concurrent invocations against the same project. The
// lock is advisory, scoped to the configuration-root identity, and
// acquisition is time-bounded: a timeout is fatal, not retried.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Acquire takes the lock for the project identified by key (the absolute
	// configuration path), waiting at most timeout. It returns a release
	// function on success.
	Acquire(ctx context.Context, key string, timeout time.Duration) (release func() error, err error)
}
