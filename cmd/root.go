package cmd

import (
	"os"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/logr/adapters/zap.v1"
	"github.com/spf13/cobra"
)

var (
	log     logr.Logger
	cfgFile string

	configDefault = `# =============================================================================
# FTPSNAP - FTP/FTPS Folder Backup Configuration
# =============================================================================

server:
  addr: ":8080"

timezone: "" #Ex: America/Sao_Paulo, UTC, by default UTC

profiles:
  - name: "nas"
    host: "ftp.example.com"
    port: 21
    username: "backup"
    password: "" #plaintext, or output of 'ftpsnap obscure' with password_obscured: true
    password_obscured: false
    tls: false #explicit FTPS (AUTH TLS)
    root: "/" #remote dir relative remote_source paths are joined to
    timeout_seconds: 30

jobs:
  - name: "nightly-docs"
    enabled: true
    profile: "nas"
    remote_source: "/srv/docs"
    local_target: "./backups"
    schedule: "0 2 * * *" #minute hour day-of-month month day-of-week

scheduler:
  max_concurrent_runs: 4
  run_timeout_minutes: 60

notification:
  start_enabled: false
  success_enabled: true
  error_enabled: true
  emails:
    # - "admin@example.com"
  email_from: "backup@example.com"
  smtp_server: ""
  smtp_port: 587
  smtp_user: ""
  smtp_password: ""
  smtp_auth: "plain"
  smtp_tls: false
  discord_webhook_url: "" #https://discord.com/api/webhooks/...
  telegram_bot_token: ""
  telegram_chat_id: ""

encryption_key: "" #when set, every downloaded file is age-encrypted

run_on_startup: false
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ftpsnap",
	Short: "Scheduled FTP/FTPS folder backups into timestamped snapshots",
	Long: `ftpsnap is a small daemon that mirrors remote FTP/FTPS folders into
local timestamped snapshot directories on a recurring schedule.

	- Jobs scheduled via cron-like rules (ex: "0 2 * * *")
	- Each run lands in its own snapshot folder (ex: nightly-docs/20260828_020000)
	- Runs of the same job never overlap; a due run overlapping is skipped
	- Optional age encryption of every downloaded file
	- Notifications on start/success/failure (Discord, Telegram, Mail)

Examples:

	# Create a default config.yaml
	ftpsnap init

	# Obscure an FTP password for the config file
	ftpsnap obscure "my-ftp-password"

	# Run one job manually
	ftpsnap run nightly-docs

	# Check connectivity without downloading
	ftpsnap run nightly-docs --check

	# Start the daemon (scheduler + HTTP API)
	ftpsnap daemon -c /etc/ftpsnap/config.yaml
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = zap.New(
			zap.WithConsole(true),
			zap.WithConsoleLevel("INFO"),
			zap.WithConsoleFormatter("TEXT"),
			zap.WithEnableCaller(false),
		)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./ftpsnap.yaml)")
}
