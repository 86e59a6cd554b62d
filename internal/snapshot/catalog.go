package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/automationz/ftpsnap/internal/utils"
)

// Info describes one on-disk snapshot directory.
type Info struct {
	ShortID string
	Name    string
	Path    string
	ModTime time.Time
	Files   int
	Bytes   int64
}

// List returns the snapshots of a job, newest first. Snapshots are whatever
// directories live under `root/<job>`; file count and byte size are computed
// by walking each one.
func List(root, jobName string) ([]Info, error) {
	jobDir := filepath.Join(root, jobName)

	entries, err := os.ReadDir(jobDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read job dir %s: %w", jobDir, err)
	}

	snapshots := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(jobDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files, bytes := measure(path)
		snapshots = append(snapshots, Info{
			ShortID: utils.GenerateShortID(entry.Name(), info.ModTime()),
			Name:    entry.Name(),
			Path:    path,
			ModTime: info.ModTime(),
			Files:   files,
			Bytes:   bytes,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})

	return snapshots, nil
}

func measure(dir string) (files int, bytes int64) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
		}
		return nil
	})
	return files, bytes
}
