package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/automationz/ftpsnap/internal/config"
	apphttp "github.com/automationz/ftpsnap/internal/http"
	"github.com/automationz/ftpsnap/internal/lock"
	"github.com/automationz/ftpsnap/internal/scheduler"
)

const (
	readTimeout  = 10 * time.Second
	idleTimeout  = 1 * time.Second
	writeTimeout = 10 * time.Second
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run ftpsnap as a background service",
	Long: `Start ftpsnap in daemon mode to continuously run scheduled backups.

This command starts a long-running process that:
  - Evaluates job schedules once per minute and dispatches due runs
  - Runs HTTP server for health checks and snapshot listings
  - Handles graceful shutdown on SIGTERM/SIGINT
  - Reloads the job set on SIGHUP
  - Optionally runs all jobs once on startup

The daemon will stay running until stopped with Ctrl+C or kill signal.

Examples:
  # Start daemon with default config
  ftpsnap daemon

  # Start with custom config
  ftpsnap daemon --config /path/to/config.yaml

  # Run as systemd service
  systemctl start ftpsnap`,
	Run: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) {
	log.Info("📸 Starting ftpsnap - FTP Folder Backup System")

	loadEnvIfExists()

	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	fileLock := lock.New()
	acquired, err := fileLock.TryAcquire()
	if err != nil {
		log.Fatalf("Daemon lock failed: %v", err)
	}
	if !acquired {
		log.Fatalf("Another ftpsnap daemon is already running (lock: %s)", fileLock.Path())
	}
	defer func() {
		_ = fileLock.Release()
	}()

	notifierService := createNotifierService(cfg)

	runnerService, err := createRunner(cfg, notifierService)
	if err != nil {
		log.Fatalf("Error initializing runner: %v", err)
	}

	jobs := cfg.Resolve(log)
	if len(jobs) == 0 {
		log.Warn("⚠️  No runnable jobs configured")
	}

	sched := scheduler.New(
		log,
		runnerService,
		notifierService,
		jobs,
		cfg.MustLocation(),
		cfg.Scheduler.Concurrency(),
		cfg.Scheduler.RunTimeout(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RunOnStartup {
		log.Info("Running all jobs on startup...")
		sched.TriggerAll(ctx, time.Now())
	}

	go sched.Run(ctx)

	s := http.Server{
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
		WriteTimeout: writeTimeout,
		Addr:         cfg.Server.Addr,
		Handler:      apphttp.New(cfg, sched, log),
	}

	go func() {
		log.Infof("🌐 HTTP server on %s", cfg.Server.Addr)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	log.Info("ftpsnap is running. Press Ctrl+C to stop.")

	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			reloadJobs(sched)
			continue
		}
		break
	}

	log.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = s.Shutdown(shutdownCtx)

	sched.Wait()
	log.Info("✅ Shutdown complete")
}

// reloadJobs re-reads the config file and swaps the scheduler's job set.
// Notifier and server settings keep their boot-time values; changing those
// requires a restart.
func reloadJobs(sched *scheduler.Scheduler) {
	log.Infof("🔄 SIGHUP received, reloading %s", cfgFile)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Errorf("Reload failed, keeping current jobs: %v", err)
		return
	}

	sched.Reload(cfg.Resolve(log))
}
