package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	domainerrors "cardfolio/internal/errors"

	"github.com/gofrs/flock"
)

// Lock defaults used when the caller passes zero values.
const (
	DefaultLockTimeout = 10 * time.Second
	DefaultLockRetry   = 50 * time.Millisecond
)

// fileLock is an advisory lock on a zero-byte sidecar file. flock only
// excludes other open file descriptions, so goroutines sharing one fileLock
// are serialised by sem first.
type fileLock struct {
	path    string
	fl      *flock.Flock
	sem     chan struct{}
	timeout time.Duration
	retry   time.Duration
}

func newFileLock(target string, timeout, retry time.Duration) *fileLock {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	if retry <= 0 {
		retry = DefaultLockRetry
	}
	path := target + ".lock"
	return &fileLock{
		path:    path,
		fl:      flock.New(path),
		sem:     make(chan struct{}, 1),
		timeout: timeout,
		retry:   retry,
	}
}

// with runs fn while holding the lock. Waiting is bounded by the lock timeout.
func (l *fileLock) with(ctx context.Context, exclusive bool, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return l.waitErr(ctx.Err())
	}
	defer func() { <-l.sem }()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return domainerrors.IO("create data directory", err)
	}

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = l.fl.TryLockContext(ctx, l.retry)
	} else {
		locked, err = l.fl.TryRLockContext(ctx, l.retry)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return l.waitErr(err)
		}
		return domainerrors.IO("acquire lock", fmt.Errorf("%s: %w", l.path, err))
	}
	if !locked {
		return l.waitErr(context.DeadlineExceeded)
	}
	defer func() {
		if err := l.fl.Unlock(); err != nil {
			log.Printf("⚠️ Failed to release lock %s: %v", l.path, err)
		}
	}()

	return fn()
}

func (l *fileLock) waitErr(cause error) error {
	if errors.Is(cause, context.Canceled) {
		return domainerrors.IO("wait for lock", fmt.Errorf("%s: %w", l.path, cause))
	}
	return fmt.Errorf("%w after %s (%s)", domainerrors.ErrLockTimeout, l.timeout, l.path)
}
