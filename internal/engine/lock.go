package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/LexxFedoroff/cargo/internal/shell"
)

const (
	buildDirName  = "target"
	lockFileName  = ".cargo-lock"
	defaultPoll   = 100 * time.Millisecond
	blockingLabel = "Blocking"
)

// lockBuildDir takes the exclusive build-directory lock under root. When the
// lock is held elsewhere it reports that once and waits for it.
func lockBuildDir(ctx context.Context, root string, sh *shell.Shell, poll time.Duration) (*flock.Flock, error) {
	dir := filepath.Join(root, buildDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create build directory %q: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, lockFileName))

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build directory lock: %w", err)
	}
	if ok {
		return lock, nil
	}

	if sh != nil {
		sh.Status(blockingLabel, "waiting for file lock on build directory")
	}
	if poll <= 0 {
		poll = defaultPoll
	}
	ok, err = lock.TryLockContext(ctx, poll)
	if err != nil {
		return nil, fmt.Errorf("acquire build directory lock: %w", err)
	}
	if !ok {
		return nil, errors.New("acquire build directory lock: lock not obtained")
	}
	return lock, nil
}
