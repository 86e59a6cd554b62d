package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeJoin(t *testing.T) {
	got, err := SafeJoin("/backups/run", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/backups/run", "a.txt"), got)

	got, err = SafeJoin("/backups/run", "sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/backups/run", "sub", "b.txt"), got)
}

func TestSafeJoinRefusesEscape(t *testing.T) {
	for _, rel := range []string{"..", "../x", "sub/../../x"} {
		_, err := SafeJoin("/backups/run", rel)
		assert.Error(t, err, "SafeJoin(%q)", rel)
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(1536*1024))
}
