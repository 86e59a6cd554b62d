package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/logr/adapters/zap.v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logr.Logger {
	return zap.New(
		zap.WithConsole(true),
		zap.WithConsoleLevel("ERROR"),
		zap.WithConsoleFormatter("TEXT"),
		zap.WithEnableCaller(false),
	)
}

// fakeClient serves a remote tree from memory, with injectable failures.
type fakeClient struct {
	dirs        map[string][]Entry
	files       map[string]string
	listErr     map[string]error
	downloadErr map[string]error
	closed      bool
}

func (f *fakeClient) List(path string) ([]Entry, error) {
	if err := f.listErr[path]; err != nil {
		return nil, err
	}
	return f.dirs[path], nil
}

func (f *fakeClient) Download(path string) (io.ReadCloser, error) {
	if err := f.downloadErr[path]; err != nil {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func treeClient() *fakeClient {
	return &fakeClient{
		dirs: map[string][]Entry{
			"/src": {
				{Name: "a.txt", Size: 5},
				{Name: "sub", Dir: true},
			},
			"/src/sub": {
				{Name: "b.txt", Size: 6},
				{Name: "deep", Dir: true},
			},
			"/src/sub/deep": {
				{Name: "c.txt", Size: 7},
			},
		},
		files: map[string]string{
			"/src/a.txt":          "alpha",
			"/src/sub/b.txt":      "bravoo",
			"/src/sub/deep/c.txt": "charlie",
		},
		listErr:     map[string]error{},
		downloadErr: map[string]error{},
	}
}

func TestMirrorCopiesTree(t *testing.T) {
	client := treeClient()
	local := t.TempDir()

	engine := New(testLogger())
	results := engine.Mirror(context.Background(), client, "/src", local)

	copied, skipped, failed := Summarize(results)
	assert.Equal(t, 3, copied)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 0, failed)
	assert.Equal(t, int64(5+6+7), TotalBytes(results))

	for rel, want := range map[string]string{
		"a.txt":          "alpha",
		"sub/b.txt":      "bravoo",
		"sub/deep/c.txt": "charlie",
	} {
		got, err := os.ReadFile(filepath.Join(local, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestMirrorToleratesSingleFileFailure(t *testing.T) {
	client := treeClient()
	client.downloadErr["/src/sub/b.txt"] = errors.New("550 permission denied")
	local := t.TempDir()

	engine := New(testLogger())
	results := engine.Mirror(context.Background(), client, "/src", local)

	copied, _, failed := Summarize(results)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 1, failed)

	for _, res := range results {
		if res.Outcome == OutcomeFailed {
			assert.Equal(t, "/src/sub/b.txt", res.RemotePath)
			assert.Error(t, res.Err)
		}
	}
}

func TestMirrorAbandonsUnlistableSubtreeOnly(t *testing.T) {
	client := treeClient()
	client.listErr["/src/sub"] = errors.New("550 no access")
	local := t.TempDir()

	engine := New(testLogger())
	results := engine.Mirror(context.Background(), client, "/src", local)

	copied, _, failed := Summarize(results)
	assert.Equal(t, 1, copied, "sibling file outside the bad subtree still copies")
	assert.Equal(t, 1, failed, "one failed result for the unlistable directory")

	_, err := os.Stat(filepath.Join(local, "a.txt"))
	assert.NoError(t, err)
}

func TestMirrorSkipsExistingFiles(t *testing.T) {
	client := treeClient()
	local := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(local, "a.txt"), []byte("old"), 0o644))

	engine := New(testLogger())
	results := engine.Mirror(context.Background(), client, "/src", local)

	copied, skipped, failed := Summarize(results)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 0, failed)

	got, err := os.ReadFile(filepath.Join(local, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "existing file is never overwritten")
}

func TestMirrorRefusesEscapingEntryNames(t *testing.T) {
	client := &fakeClient{
		dirs: map[string][]Entry{
			"/src": {{Name: "..", Dir: true}},
		},
		listErr:     map[string]error{},
		downloadErr: map[string]error{},
	}
	local := t.TempDir()

	engine := New(testLogger())
	results := engine.Mirror(context.Background(), client, "/src", local)

	_, _, failed := Summarize(results)
	assert.Equal(t, 1, failed)
}

func TestMirrorCancelledContext(t *testing.T) {
	client := treeClient()
	local := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := New(testLogger())
	results := engine.Mirror(ctx, client, "/src", local)

	copied, _, failed := Summarize(results)
	assert.Equal(t, 0, copied)
	assert.GreaterOrEqual(t, failed, 1)
}

func TestJoinRemote(t *testing.T) {
	assert.Equal(t, "/docs", joinRemote("/", "docs"))
	assert.Equal(t, "/srv/docs", joinRemote("/srv", "docs"))
}
