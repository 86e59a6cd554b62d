package config

import (
	"fmt"

	"github.com/BrunoTulio/logr"
	"github.com/automationz/ftpsnap/internal/schedule"
)

// ResolvedJob is a job that survived load-time validation: its profile
// reference is resolved and its recurrence rule is parsed. Only resolved jobs
// ever reach the scheduler.
type ResolvedJob struct {
	Name        string
	Profile     *Profile
	RemoteRoot  string
	LocalTarget string
	Rule        *schedule.Rule
}

// Resolve turns the configured jobs into dispatchable ones. A job with a
// malformed schedule or a dangling profile reference is a configuration
// error: it is disabled here, logged, and never evaluated at runtime.
func (c *Config) Resolve(log logr.Logger) []ResolvedJob {
	resolved := make([]ResolvedJob, 0, len(c.Jobs))

	for i := range c.Jobs {
		job := &c.Jobs[i]
		if !job.Enabled {
			log.Infof("⏭️  Job %s is disabled, skipping", job.Name)
			continue
		}

		rj, err := c.resolveJob(job)
		if err != nil {
			log.Errorf("❌ Job %s disabled: %v", job.Name, err)
			continue
		}
		resolved = append(resolved, rj)
	}

	return resolved
}

func (c *Config) resolveJob(job *Job) (ResolvedJob, error) {
	profile, ok := c.FindProfile(job.Profile)
	if !ok {
		return ResolvedJob{}, fmt.Errorf("profile %q not found", job.Profile)
	}

	rule, err := schedule.Parse(job.Schedule)
	if err != nil {
		return ResolvedJob{}, fmt.Errorf("invalid schedule %q: %w", job.Schedule, err)
	}

	return ResolvedJob{
		Name:        job.Name,
		Profile:     profile,
		RemoteRoot:  job.RemotePath(profile),
		LocalTarget: job.LocalTarget,
		Rule:        rule,
	}, nil
}
