package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BrunoTulio/logr"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/notify"
	"github.com/automationz/ftpsnap/internal/snapshot"
	"github.com/automationz/ftpsnap/internal/transfer"
	"github.com/automationz/ftpsnap/internal/utils"
)

// Runner executes a single backup run for a job: create the snapshot
// directory, connect to the remote, mirror the tree, classify the outcome
// and emit lifecycle events.
type Runner struct {
	log        logr.Logger
	notifier   notify.Notifier
	engineOpts []transfer.Option
	dial       DialFunc
}

// DialFunc opens a connection to a job's remote server.
type DialFunc func(ctx context.Context, profile *config.Profile, log logr.Logger) (transfer.Client, error)

type Option func(*Runner)

// WithEngineOptions forwards options (encryption, progress output) to the
// transfer engine built for each run.
func WithEngineOptions(opts ...transfer.Option) Option {
	return func(r *Runner) {
		r.engineOpts = append(r.engineOpts, opts...)
	}
}

// WithDialer replaces the FTP dialer.
func WithDialer(dial DialFunc) Option {
	return func(r *Runner) {
		r.dial = dial
	}
}

func New(log logr.Logger, notifier notify.Notifier, opts ...Option) *Runner {
	r := &Runner{
		log:      log,
		notifier: notifier,
		dial:     transfer.Dial,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary describes one finished run.
type Summary struct {
	Job      string
	Snapshot string
	Copied   int
	Skipped  int
	Failed   int
	Bytes    int64
	Duration time.Duration
	Outcome  notify.EventType
}

// Execute performs one run of job with logical run timestamp now. It returns
// a nil error for successful and partially failed runs; a non-nil error
// means the run failed outright (no file made it into the snapshot).
func (r *Runner) Execute(ctx context.Context, job config.ResolvedJob, now time.Time) (*Summary, error) {
	started := time.Now()
	r.log.Infof("🚀 Starting backup run: job=%s remote=%s", job.Name, job.RemoteRoot)

	notify.Emit(r.notifier, notify.Event{
		Type:    notify.EventStart,
		Job:     job.Name,
		RunTime: now,
	})

	snapDir, err := snapshot.Create(job.LocalTarget, job.Name, now)
	if err != nil {
		return r.fail(job, now, fmt.Errorf("create snapshot dir: %w", err))
	}

	client, err := r.dial(ctx, job.Profile, r.log)
	if err != nil {
		return r.fail(job, now, fmt.Errorf("connect %s: %w", job.Profile.Addr(), err))
	}
	defer func() {
		_ = client.Close()
	}()

	engine := transfer.New(r.log, r.engineOpts...)
	results := engine.Mirror(ctx, client, job.RemoteRoot, snapDir)

	copied, skipped, failed := transfer.Summarize(results)
	sum := &Summary{
		Job:      job.Name,
		Snapshot: snapDir,
		Copied:   copied,
		Skipped:  skipped,
		Failed:   failed,
		Bytes:    transfer.TotalBytes(results),
		Duration: time.Since(started),
	}

	switch {
	case failed == 0:
		sum.Outcome = notify.EventSuccess
	case copied+skipped > 0:
		sum.Outcome = notify.EventPartialFailure
	default:
		sum.Outcome = notify.EventFailure
	}

	detail := failureDetail(results)

	notify.Emit(r.notifier, notify.Event{
		Type:      sum.Outcome,
		Job:       job.Name,
		RunTime:   now,
		Detail:    detail,
		Succeeded: copied,
		Failed:    failed,
	})

	switch sum.Outcome {
	case notify.EventSuccess:
		r.log.Infof("✅ Backup done: job=%s files=%d skipped=%d size=%s duration=%s",
			job.Name, copied, skipped, utils.FormatBytes(sum.Bytes), utils.FormatDuration(sum.Duration))
	case notify.EventPartialFailure:
		r.log.Warnf("⚠️ Backup partially failed: job=%s copied=%d failed=%d: %s",
			job.Name, copied, failed, detail)
	default:
		r.log.Errorf("❌ Backup failed: job=%s: %s", job.Name, detail)
		return sum, fmt.Errorf("job %s: no file transferred: %s", job.Name, detail)
	}

	return sum, nil
}

// fail emits the failure event for runs that never reached the transfer
// phase.
func (r *Runner) fail(job config.ResolvedJob, now time.Time, err error) (*Summary, error) {
	r.log.Errorf("❌ Backup failed: job=%s: %v", job.Name, err)
	notify.Emit(r.notifier, notify.Event{
		Type:    notify.EventFailure,
		Job:     job.Name,
		RunTime: now,
		Detail:  err.Error(),
	})
	return &Summary{Job: job.Name, Outcome: notify.EventFailure}, err
}

// failureDetail condenses per-file errors into a short report for events.
func failureDetail(results []transfer.Result) string {
	const maxLines = 3

	var lines []string
	total := 0
	for _, res := range results {
		if res.Outcome != transfer.OutcomeFailed {
			continue
		}
		total++
		if len(lines) < maxLines {
			lines = append(lines, fmt.Sprintf("%s: %v", res.RemotePath, res.Err))
		}
	}

	if total == 0 {
		return ""
	}
	if total > maxLines {
		lines = append(lines, fmt.Sprintf("… and %d more", total-maxLines))
	}
	return strings.Join(lines, "; ")
}
