package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/logr/adapters/zap.v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/notify"
	"github.com/automationz/ftpsnap/internal/runner"
	"github.com/automationz/ftpsnap/internal/schedule"
)

func testLogger() logr.Logger {
	return zap.New(
		zap.WithConsole(true),
		zap.WithConsoleLevel("ERROR"),
		zap.WithConsoleFormatter("TEXT"),
		zap.WithEnableCaller(false),
	)
}

// fakeRunner records executions and can block or panic on demand.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []string
	started  chan string
	release  chan struct{}
	panicMsg string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{started: make(chan string, 16)}
}

func (f *fakeRunner) Execute(ctx context.Context, job config.ResolvedJob, now time.Time) (*runner.Summary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, job.Name)
	f.mu.Unlock()

	f.started <- job.Name

	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.release != nil {
		<-f.release
	}
	return &runner.Summary{Job: job.Name, Outcome: notify.EventSuccess}, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) waitStart(t *testing.T) string {
	t.Helper()
	select {
	case name := <-f.started:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("no run dispatched")
		return ""
	}
}

type chanNotifier struct {
	events chan notify.Event
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{events: make(chan notify.Event, 16)}
}

func (c *chanNotifier) Notify(ctx context.Context, ev notify.Event) error {
	c.events <- ev
	return nil
}

func testJobs(exprs map[string]string) []config.ResolvedJob {
	jobs := make([]config.ResolvedJob, 0, len(exprs))
	for name, expr := range exprs {
		jobs = append(jobs, config.ResolvedJob{
			Name:        name,
			Profile:     &config.Profile{Name: "nas", Host: "localhost"},
			RemoteRoot:  "/data",
			LocalTarget: "/tmp/backups",
			Rule:        schedule.MustParse(expr),
		})
	}
	return jobs
}

func newTestScheduler(r JobRunner, n notify.Notifier, jobs []config.ResolvedJob) *Scheduler {
	return New(testLogger(), r, n, jobs, time.UTC, 4, time.Minute)
}

func TestTickFiresOncePerMatchingMinute(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{"docs": "* * * * *"}))

	minute := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s.Tick(context.Background(), minute)
	fr.waitStart(t)
	s.Wait()

	// Later ticks inside the same minute fire nothing.
	s.Tick(context.Background(), minute.Add(20*time.Second))
	s.Tick(context.Background(), minute.Add(59*time.Second))
	s.Wait()
	assert.Equal(t, 1, fr.callCount())

	// The next minute fires again.
	s.Tick(context.Background(), minute.Add(time.Minute))
	fr.waitStart(t)
	s.Wait()
	assert.Equal(t, 2, fr.callCount())
}

func TestTickIgnoresNonMatchingMinute(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{"docs": "0 2 * * *"}))

	s.Tick(context.Background(), time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC))
	s.Wait()
	assert.Equal(t, 0, fr.callCount())

	s.Tick(context.Background(), time.Date(2026, 8, 28, 2, 0, 30, 0, time.UTC))
	fr.waitStart(t)
	s.Wait()
	assert.Equal(t, 1, fr.callCount())
}

func TestOverlappingRunIsSkippedNotQueued(t *testing.T) {
	fr := newFakeRunner()
	fr.release = make(chan struct{})
	cn := newChanNotifier()
	s := newTestScheduler(fr, cn, testJobs(map[string]string{"docs": "* * * * *"}))

	minute := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s.Tick(context.Background(), minute)
	fr.waitStart(t)

	// Next due minute lands while the first run is still active.
	s.Tick(context.Background(), minute.Add(time.Minute))

	select {
	case ev := <-cn.events:
		assert.Equal(t, notify.EventSkippedOverlap, ev.Type)
		assert.Equal(t, "docs", ev.Job)
	case <-time.After(2 * time.Second):
		t.Fatal("no skipped-overlap event")
	}

	close(fr.release)
	s.Wait()

	// The skipped minute is consumed, not queued: no second run happened.
	assert.Equal(t, 1, fr.callCount())
}

func TestPanickingRunReleasesTheJob(t *testing.T) {
	fr := newFakeRunner()
	fr.panicMsg = "boom"
	cn := newChanNotifier()
	s := newTestScheduler(fr, cn, testJobs(map[string]string{"docs": "* * * * *"}))

	minute := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s.Tick(context.Background(), minute)
	fr.waitStart(t)
	s.Wait()

	select {
	case ev := <-cn.events:
		require.Equal(t, notify.EventFailure, ev.Type)
		assert.Contains(t, ev.Detail, "boom")
	case <-time.After(2 * time.Second):
		t.Fatal("no failure event after panic")
	}

	// The job is dispatchable again on the next minute.
	fr.panicMsg = ""
	s.Tick(context.Background(), minute.Add(time.Minute))
	fr.waitStart(t)
	s.Wait()
	assert.Equal(t, 2, fr.callCount())
}

func TestNightlyRuleFiresOncePerDay(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{"docs": "0 2 * * *"}))

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// Sweep two full days of minutes through Tick.
	for m := 0; m < 2*24*60; m++ {
		s.Tick(context.Background(), day.Add(time.Duration(m)*time.Minute))
		s.Wait()
	}

	assert.Equal(t, 2, fr.callCount(), "exactly one run per day at 02:00")
}

func TestTriggerAllIgnoresSchedules(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{
		"docs":   "0 2 * * *",
		"photos": "30 4 1 * *",
	}))

	s.TriggerAll(context.Background(), time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	fr.waitStart(t)
	fr.waitStart(t)
	s.Wait()
	assert.Equal(t, 2, fr.callCount())
}

func TestReloadPreservesFireState(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{"docs": "* * * * *"}))

	minute := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s.Tick(context.Background(), minute)
	fr.waitStart(t)
	s.Wait()

	s.Reload(testJobs(map[string]string{"docs": "* * * * *", "photos": "0 2 * * *"}))

	// The surviving job does not re-fire for the minute it already ran.
	s.Tick(context.Background(), minute.Add(30*time.Second))
	s.Wait()
	assert.Equal(t, 1, fr.callCount())
}

func TestStatusSortedWithNextRun(t *testing.T) {
	fr := newFakeRunner()
	s := newTestScheduler(fr, newChanNotifier(), testJobs(map[string]string{
		"photos": "30 4 * * *",
		"docs":   "0 2 * * *",
	}))

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	statuses := s.Status(now)
	require.Len(t, statuses, 2)

	assert.Equal(t, "docs", statuses[0].Name)
	assert.Equal(t, "photos", statuses[1].Name)
	assert.Equal(t, time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC), statuses[0].NextRun)
	assert.False(t, statuses[0].InFlight)
}
