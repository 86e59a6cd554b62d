// Package snapshot names and lists the timestamped local snapshot directories
// produced by job runs.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StampLayout has second resolution; two runs of the same job inside one
// second still get distinct directories via a numeric suffix.
const StampLayout = "20060102_150405"

const maxCollisions = 1000

// Create makes a fresh directory `root/<job>/<stamp>` for one run and returns
// its path. An existing directory is never reused or overwritten: on
// collision a `_1`, `_2`, ... suffix is appended until a new directory is
// created.
func Create(root, jobName string, t time.Time) (string, error) {
	jobDir := filepath.Join(root, jobName)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("create job dir %s: %w", jobDir, err)
	}

	stamp := t.Format(StampLayout)
	for i := 0; i <= maxCollisions; i++ {
		name := stamp
		if i > 0 {
			name = fmt.Sprintf("%s_%d", stamp, i)
		}

		dir := filepath.Join(jobDir, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create snapshot dir %s: %w", dir, err)
		}
	}

	return "", fmt.Errorf("no free snapshot directory for %s/%s at %s", root, jobName, stamp)
}
