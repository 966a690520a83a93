// Package flock implements the cross-invocation project lock on top of an
// advisory file lock in the system temp directory. The lock file is named
// after a hash of the absolute configuration path, so two invocations against
// the same project contend while unrelated projects never do.
package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

// retryInterval is how often acquisition is retried while waiting.
const retryInterval = 100 * time.Millisecond

// Locker implements ports.Locker.
type Locker struct {
	clock  clockwork.Clock
	logger ports.Logger
}

// NewLocker creates a new Locker.
func NewLocker(clock clockwork.Clock, logger ports.Logger) *Locker {
	return &Locker{clock: clock, logger: logger}
}

// Acquire takes the project lock, retrying until timeout. A timeout means
// another invocation holds the lock and is reported as ErrLockTimeout.
func (l *Locker) Acquire(ctx context.Context, key string, timeout time.Duration) (func() error, error) {
	path := lockPath(key)
	fl := flock.New(path)
	deadline := l.clock.Now().Add(timeout)

	waited := false
	for {
		locked, err := fl.TryLock()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to acquire project lock"), "lock", path)
		}
		if locked {
			return fl.Unlock, nil
		}

		if !l.clock.Now().Add(retryInterval).Before(deadline) {
			return nil, zerr.With(domain.ErrLockTimeout, "lock", path)
		}
		if !waited {
			l.logger.Info(fmt.Sprintf("waiting for project lock %s", path))
			waited = true
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.clock.After(retryInterval):
		}
	}
}

// lockPath derives the lock file location from the project identity.
func lockPath(key string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("chore-%016x.lock", xxhash.Sum64String(key)))
}
