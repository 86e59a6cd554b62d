package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BrunoTulio/logr"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/notify"
	"github.com/automationz/ftpsnap/internal/runner"
)

// JobRunner executes one backup run. *runner.Runner is the production
// implementation.
type JobRunner interface {
	Execute(ctx context.Context, job config.ResolvedJob, now time.Time) (*runner.Summary, error)
}

type jobState struct {
	job       config.ResolvedJob
	lastFired time.Time
	inFlight  bool
}

// Scheduler evaluates every job schedule once per minute and dispatches due
// runs. Each job has at most one run in flight; a due minute that lands
// while the previous run is still active is skipped, never queued. Ticks
// are idempotent per minute, so a repeated or late tick within the same
// minute fires nothing twice.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*jobState

	runner     JobRunner
	notifier   notify.Notifier
	log        logr.Logger
	loc        *time.Location
	sem        chan struct{}
	runTimeout time.Duration
	wg         sync.WaitGroup
}

func New(
	log logr.Logger,
	jobRunner JobRunner,
	notifier notify.Notifier,
	jobs []config.ResolvedJob,
	loc *time.Location,
	concurrency int,
	runTimeout time.Duration,
) *Scheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	s := &Scheduler{
		jobs:       make(map[string]*jobState, len(jobs)),
		runner:     jobRunner,
		notifier:   notifier,
		log:        log,
		loc:        loc,
		sem:        make(chan struct{}, concurrency),
		runTimeout: runTimeout,
	}
	for _, job := range jobs {
		s.jobs[job.Name] = &jobState{job: job}
	}
	return s
}

// Tick fires every job whose schedule matches the minute of now and that has
// not already fired for that minute.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	minute := now.In(s.loc).Truncate(time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, state := range s.jobs {
		if !state.job.Rule.Matches(minute) {
			continue
		}
		if state.lastFired.Equal(minute) {
			continue
		}
		state.lastFired = minute

		if state.inFlight {
			s.log.Warnf("⏭️ Run skipped, previous still active: job=%s minute=%s",
				name, minute.Format("15:04"))
			notify.Emit(s.notifier, notify.Event{
				Type:    notify.EventSkippedOverlap,
				Job:     name,
				RunTime: minute,
			})
			continue
		}

		state.inFlight = true
		s.wg.Add(1)
		go s.dispatch(ctx, name, state.job, minute)
	}
}

// TriggerAll dispatches every job immediately, regardless of schedule. The
// overlap guard still applies, and the fire counts for the current minute.
func (s *Scheduler) TriggerAll(ctx context.Context, now time.Time) {
	minute := now.In(s.loc).Truncate(time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, state := range s.jobs {
		if state.inFlight {
			continue
		}
		state.lastFired = minute
		state.inFlight = true
		s.wg.Add(1)
		go s.dispatch(ctx, name, state.job, minute)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, name string, job config.ResolvedJob, minute time.Time) {
	defer s.wg.Done()
	defer s.clearInFlight(name)
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("💥 Run panicked: job=%s: %v", name, r)
			notify.Emit(s.notifier, notify.Event{
				Type:    notify.EventFailure,
				Job:     name,
				RunTime: minute,
				Detail:  fmt.Sprintf("panic: %v", r),
			})
		}
	}()

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	// The runner logs and notifies its own outcome.
	_, _ = s.runner.Execute(runCtx, job, minute)
}

func (s *Scheduler) clearInFlight(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.jobs[name]; ok {
		state.inFlight = false
	}
}

// Reload replaces the job set, keeping fire and in-flight state for jobs
// that survive the reload so a reload never re-fires the current minute.
func (s *Scheduler) Reload(jobs []config.ResolvedJob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*jobState, len(jobs))
	for _, job := range jobs {
		state := &jobState{job: job}
		if old, ok := s.jobs[job.Name]; ok {
			state.lastFired = old.lastFired
			state.inFlight = old.inFlight
		}
		next[job.Name] = state
	}
	s.jobs = next
	s.log.Infof("🔄 Job set reloaded: jobs=%d", len(next))
}

// Run blocks, ticking at each minute boundary until ctx is cancelled, then
// waits for in-flight runs to drain.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Infof("⏰ Scheduler started: jobs=%d concurrency=%d", len(s.jobs), cap(s.sem))

	for {
		now := time.Now().In(s.loc)
		timer := time.NewTimer(now.Truncate(time.Minute).Add(time.Minute).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.wg.Wait()
			s.log.Info("⏰ Scheduler stopped")
			return
		case <-timer.C:
			s.Tick(ctx, time.Now().In(s.loc))
		}
	}
}

// Wait blocks until all dispatched runs have finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// JobStatus is a point-in-time view of one scheduled job.
type JobStatus struct {
	Name      string    `json:"name"`
	Schedule  string    `json:"schedule"`
	LastFired time.Time `json:"last_fired,omitzero"`
	NextRun   time.Time `json:"next_run,omitzero"`
	InFlight  bool      `json:"in_flight"`
}

// Status reports all jobs sorted by name.
func (s *Scheduler) Status(now time.Time) []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.jobs))
	for name, state := range s.jobs {
		statuses = append(statuses, JobStatus{
			Name:      name,
			Schedule:  state.job.Rule.String(),
			LastFired: state.lastFired,
			NextRun:   state.job.Rule.Next(now.In(s.loc)),
			InFlight:  state.inFlight,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}
