package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BrunoTulio/logr"

	"github.com/automationz/ftpsnap/internal/encoder"
	"github.com/automationz/ftpsnap/internal/utils"
)

type (
	Option  func(*Options)
	Options struct {
		Encryptor *encoder.Encryptor
		Progress  io.Writer
	}

	// Engine walks a remote tree and downloads it beneath a local root. One
	// bad file never aborts the walk; one unlistable directory only abandons
	// its own subtree.
	Engine struct {
		log logr.Logger
		opt *Options
	}
)

// WithEncryptor encrypts every downloaded file with age, appending a ".age"
// suffix to the local name.
func WithEncryptor(enc *encoder.Encryptor) Option {
	return func(o *Options) {
		o.Encryptor = enc
	}
}

// WithProgress mirrors every downloaded byte into w, for terminal progress
// bars on manual runs.
func WithProgress(w io.Writer) Option {
	return func(o *Options) {
		o.Progress = w
	}
}

func New(log logr.Logger, opts ...Option) *Engine {
	opt := &Options{}
	for _, o := range opts {
		o(opt)
	}
	return &Engine{log: log, opt: opt}
}

// pending is one directory waiting to be walked.
type pending struct {
	remote string
	local  string
}

// Mirror copies the remote tree rooted at remoteRoot into localRoot and
// returns one Result per remote file, plus one failed Result per directory
// that could not be listed. Traversal uses an explicit work list, so tree
// depth is bounded by memory rather than the call stack.
//
// Listing order is not part of the contract; only the final file set is.
func (e *Engine) Mirror(ctx context.Context, client Client, remoteRoot, localRoot string) []Result {
	results := make([]Result, 0, 64)

	if err := os.MkdirAll(localRoot, 0o755); err != nil {
		return append(results, Result{
			RemotePath: remoteRoot,
			LocalPath:  localRoot,
			Outcome:    OutcomeFailed,
			Err:        fmt.Errorf("create local root: %w", err),
		})
	}

	stack := []pending{{remote: remoteRoot, local: localRoot}}

	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := ctx.Err(); err != nil {
			results = append(results, Result{RemotePath: d.remote, LocalPath: d.local, Outcome: OutcomeFailed, Err: err})
			continue
		}

		entries, err := client.List(d.remote)
		if err != nil {
			e.log.Warnf("📂 Listing %s failed, abandoning subtree: %v", d.remote, err)
			results = append(results, Result{RemotePath: d.remote, LocalPath: d.local, Outcome: OutcomeFailed, Err: err})
			continue
		}

		for _, entry := range entries {
			remote := joinRemote(d.remote, entry.Name)

			local, err := utils.SafeJoin(d.local, entry.Name)
			if err != nil {
				results = append(results, Result{RemotePath: remote, Outcome: OutcomeFailed, Err: err})
				continue
			}

			if entry.Dir {
				if err := os.MkdirAll(local, 0o755); err != nil {
					results = append(results, Result{RemotePath: remote, LocalPath: local, Outcome: OutcomeFailed, Err: err})
					continue
				}
				stack = append(stack, pending{remote: remote, local: local})
				continue
			}

			results = append(results, e.downloadFile(client, remote, local))
		}
	}

	return results
}

func (e *Engine) downloadFile(client Client, remote, local string) Result {
	if e.opt.Encryptor != nil {
		local += ".age"
	}

	if _, err := os.Stat(local); err == nil {
		return Result{RemotePath: remote, LocalPath: local, Outcome: OutcomeSkipped}
	}

	rc, err := client.Download(remote)
	if err != nil {
		e.log.Warnf("⚠️  Download %s failed: %v", remote, err)
		return Result{RemotePath: remote, LocalPath: local, Outcome: OutcomeFailed, Err: err}
	}
	defer func() {
		_ = rc.Close()
	}()

	n, err := e.writeFile(local, rc)
	if err != nil {
		_ = os.Remove(local)
		e.log.Warnf("⚠️  Write %s failed: %v", local, err)
		return Result{RemotePath: remote, LocalPath: local, Bytes: n, Outcome: OutcomeFailed, Err: err}
	}

	e.log.Infof("⬇️  %s (%s)", remote, utils.FormatBytes(n))
	return Result{RemotePath: remote, LocalPath: local, Bytes: n, Outcome: OutcomeCopied}
}

func (e *Engine) writeFile(local string, r io.Reader) (int64, error) {
	f, err := os.Create(local)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", local, err)
	}

	var w io.Writer = f
	var ageWriter io.WriteCloser

	if e.opt.Encryptor != nil {
		ageWriter, err = e.opt.Encryptor.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return 0, fmt.Errorf("age writer: %w", err)
		}
		w = ageWriter
	}

	if e.opt.Progress != nil {
		w = io.MultiWriter(w, e.opt.Progress)
	}

	n, copyErr := io.Copy(w, r)
	if ageWriter != nil {
		if err := ageWriter.Close(); err != nil && copyErr == nil {
			copyErr = err
		}
	}
	if err := f.Close(); err != nil && copyErr == nil {
		copyErr = err
	}

	return n, copyErr
}

func joinRemote(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
