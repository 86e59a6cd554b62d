package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SafeJoin joins rel beneath root and refuses results that escape root,
// guarding against remote entry names like "../../etc".
func SafeJoin(root, rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "/", string(os.PathSeparator))
	out := filepath.Join(root, rel)

	cleanRoot := filepath.Clean(root)
	if out != cleanRoot && !strings.HasPrefix(out, cleanRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf("unsafe path: %s", rel)
	}
	return out, nil
}
