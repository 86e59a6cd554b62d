package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/transfer"
	"github.com/automationz/ftpsnap/internal/utils"
)

var runCheckOnly bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [job]",
	Short: "Run a backup job once, immediately",
	Long: `Execute a single backup run for the named job, outside the schedule.

The run behaves exactly like a scheduled one: it creates a fresh snapshot
directory, mirrors the remote folder into it and sends the configured
notifications.

With --check, only connectivity is verified: ftpsnap connects to the
profile's server, lists the remote source folder and reports what it sees,
without downloading anything.

Examples:
  # Run a job now
  ftpsnap run nightly-docs

  # Verify credentials and remote path only
  ftpsnap run nightly-docs --check`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runCheckOnly, "check", false, "connect and list the remote source without downloading")
}

func runRun(cmd *cobra.Command, args []string) {
	jobName := args[0]

	loadEnvIfExists()

	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	job, ok := findResolvedJob(cfg, jobName)
	if !ok {
		if _, exists := cfg.FindJob(jobName); exists {
			log.Fatalf("Job %s exists but is disabled or misconfigured", jobName)
		}
		log.Fatalf("Job %s not found in %s", jobName, cfgFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.RunTimeout())
	defer cancel()

	if runCheckOnly {
		runCheck(ctx, job)
		return
	}

	bar := progressbar.DefaultBytes(-1, fmt.Sprintf("Downloading %s", job.Name))

	notifierService := createNotifierService(cfg)
	runnerService, err := createRunner(cfg, notifierService, transfer.WithProgress(bar))
	if err != nil {
		log.Fatalf("Error initializing runner: %v", err)
	}

	sum, err := runnerService.Execute(ctx, job, time.Now())
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("✅ Snapshot: %s\n", sum.Snapshot)
	fmt.Printf("   Copied:   %d files (%s)\n", sum.Copied, utils.FormatBytes(sum.Bytes))
	if sum.Skipped > 0 {
		fmt.Printf("   Skipped:  %d files\n", sum.Skipped)
	}
	if sum.Failed > 0 {
		fmt.Printf("   Failed:   %d files\n", sum.Failed)
	}
	fmt.Printf("   Duration: %s\n", utils.FormatDuration(sum.Duration))
}

func runCheck(ctx context.Context, job config.ResolvedJob) {
	log.Infof("🔎 Checking %s (%s)...", job.Name, job.Profile.Addr())

	client, err := transfer.Dial(ctx, job.Profile, log)
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	entries, err := client.List(job.RemoteRoot)
	if err != nil {
		log.Fatalf("Listing %s failed: %v", job.RemoteRoot, err)
	}

	files, dirs := 0, 0
	for _, e := range entries {
		if e.Dir {
			dirs++
		} else {
			files++
		}
	}

	fmt.Printf("✅ Connected to %s\n", job.Profile.Addr())
	fmt.Printf("   Remote:  %s\n", job.RemoteRoot)
	fmt.Printf("   Entries: %d files, %d folders\n", files, dirs)
}

func findResolvedJob(cfg *config.Config, name string) (config.ResolvedJob, bool) {
	for _, job := range cfg.Resolve(log) {
		if job.Name == name {
			return job, true
		}
	}
	return config.ResolvedJob{}, false
}
