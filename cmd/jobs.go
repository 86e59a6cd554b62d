package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/automationz/ftpsnap/internal/utils"
)

// jobsCmd represents the jobs command
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List configured jobs and their next run",
	Run:   runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) {
	loadEnvIfExists()

	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	resolved := cfg.Resolve(log)
	runnable := make(map[string]bool, len(resolved))
	nextRuns := make(map[string]time.Time, len(resolved))
	now := time.Now().In(cfg.MustLocation())
	for _, job := range resolved {
		runnable[job.Name] = true
		nextRuns[job.Name] = job.Rule.Next(now)
	}

	fmt.Printf("Jobs in %s:\n\n", cfgFile)
	for _, job := range cfg.Jobs {
		status := "disabled"
		next := "-"
		if runnable[job.Name] {
			status = "enabled"
			if n := nextRuns[job.Name]; !n.IsZero() {
				next = utils.FormatTime(n)
			}
		} else if job.Enabled {
			status = "invalid"
		}

		fmt.Printf("  %-20s %-9s %-16s %s -> %s\n",
			job.Name, status, job.Schedule, job.RemoteSource, job.LocalTarget)
		fmt.Printf("  %-20s next: %s\n", "", next)
	}
}
