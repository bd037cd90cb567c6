package binary

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// lockRetryDelay is how often a contended install lock is polled.
const lockRetryDelay = 100 * time.Millisecond

// WriteExecutable writes data to dir/name with ExecutableMode, replacing any
// existing file, and returns the written path. dir is created if missing.
//
// The bytes go to a temporary file in dir which is renamed over the target,
// so readers never observe a partially written binary. Concurrent calls for
// the same target are serialized with an advisory lock.
func WriteExecutable(ctx context.Context, dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &FilesystemError{Op: "create directory", Path: dir, Err: err}
	}

	target := filepath.Join(dir, name)

	lock, err := acquireLock(ctx, lockPath(dir, name))
	if err != nil {
		return "", err
	}
	defer lock.Unlock()

	tmpPath := filepath.Join(dir, "."+name+"-"+uuid.NewString()+".tmp")
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ExecutableMode)
	if err != nil {
		return "", &FilesystemError{Op: "write", Path: tmpPath, Err: err}
	}

	// Track whether we need to clean up the temp file
	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return "", &FilesystemError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := tmpFile.Close(); err != nil {
		return "", &FilesystemError{Op: "write", Path: tmpPath, Err: err}
	}

	// The create mode is subject to the umask; set the bits explicitly.
	if err := SetExecutable(tmpPath); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return "", &FilesystemError{Op: "rename", Path: target, Err: err}
	}

	cleanupNeeded = false
	return target, nil
}

// SetExecutable sets ExecutableMode on a file
func SetExecutable(path string) error {
	if err := os.Chmod(path, ExecutableMode); err != nil {
		return &FilesystemError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// lockPath returns the advisory lock file guarding dir/name. It lives next
// to the target so anyone able to install there can also take the lock.
func lockPath(dir, name string) string {
	return filepath.Join(dir, "."+name+".lock")
}

// acquireLock waits for the lock at path. A lock file left behind by another
// user that cannot be opened is replaced; the caller can write to its
// directory, so removing it is allowed.
func acquireLock(ctx context.Context, path string) (*flock.Flock, error) {
	lock := flock.New(path)
	_, err := lock.TryLockContext(ctx, lockRetryDelay)
	if errors.Is(err, fs.ErrPermission) {
		if rmErr := os.Remove(path); rmErr == nil {
			lock = flock.New(path)
			_, err = lock.TryLockContext(ctx, lockRetryDelay)
		}
	}
	if err != nil {
		return nil, &FilesystemError{Op: "lock", Path: path, Err: err}
	}
	return lock, nil
}
