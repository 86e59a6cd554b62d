package lock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLock guards against two daemons scheduling the same jobs at once.
type FileLock struct {
	flock *flock.Flock
}

func (f *FileLock) TryAcquire() (bool, error) {
	return f.flock.TryLock()
}

func (f *FileLock) Release() error {
	return f.flock.Unlock()
}

func (f *FileLock) Path() string {
	return f.flock.Path()
}

func New() Locker {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	lockDir := filepath.Join(cacheDir, "ftpsnap")
	if err := os.MkdirAll(lockDir, os.ModePerm); err != nil {
		lockDir = cacheDir
	}

	lockFile := filepath.Join(lockDir, "daemon.lock")

	return &FileLock{
		flock: flock.New(lockFile),
	}
}
