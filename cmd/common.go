package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/automationz/ftpsnap/internal/config"
	"github.com/automationz/ftpsnap/internal/encoder"
	"github.com/automationz/ftpsnap/internal/notify"
	"github.com/automationz/ftpsnap/internal/runner"
	"github.com/automationz/ftpsnap/internal/transfer"
	"github.com/automationz/ftpsnap/internal/utils"
)

func loadEnvIfExists() {
	envFile := ".env"

	if _, err := os.Stat(envFile); err != nil {
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("⚠️  Failed to load .env: %v", err)
		return
	}

	log.Info("🔧 Loaded .env file (development mode)")
}

func loadConfigOrFail() (*config.Config, error) {
	if cfgFile == "" {
		cfgFile = "./ftpsnap.yaml"
	}

	if !utils.FileExists(cfgFile) {
		return nil, fmt.Errorf("config file %s not found, run 'ftpsnap init' to create one", cfgFile)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	utils.InitTimezone(cfg.MustLocation(), "2006-01-02 15:04:05")

	return cfg, nil
}

func createNotifierService(cfg *config.Config) notify.Notifier {
	notifierService := notify.NewMultiNotifier(
		cfg.Notification.StartEnabled,
		cfg.Notification.SuccessEnabled,
		cfg.Notification.ErrorEnabled,
		log,
	)
	if cfg.IsNotifyMail() {
		notifierService.AddNotifier(notify.NewMail(
			cfg.Notification.SMTPServer,
			cfg.Notification.SMTPPort,
			cfg.Notification.SMTPUser,
			cfg.Notification.SMTPPassword,
			cfg.Notification.Emails,
			cfg.Notification.EmailFrom,
			cfg.Notification.SMTPAuth,
			cfg.Notification.SMTPTLS,
			log,
		))
	}

	if cfg.IsNotifyDiscord() {
		notifierService.AddNotifier(notify.NewDiscord(
			cfg.Notification.DiscordWebhookURL,
			log,
		))
	}

	if cfg.IsNotifyTelegram() {
		notifierService.AddNotifier(notify.NewTelegramNotifier(
			cfg.Notification.TelegramBotToken,
			cfg.Notification.TelegramChatID,
			log,
		))
	}

	return notifierService
}

// createRunner builds the per-run engine options from config: encryption at
// rest when a key is set, plus any extra options from the caller (progress
// output on manual runs).
func createRunner(cfg *config.Config, notifier notify.Notifier, extra ...transfer.Option) (*runner.Runner, error) {
	var engineOpts []transfer.Option

	if cfg.IsEncryptEnabled() {
		enc, err := encoder.NewEncryptor(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("init encryption: %w", err)
		}
		engineOpts = append(engineOpts, transfer.WithEncryptor(enc))
		log.Info("🔐 Snapshot encryption enabled")
	}
	engineOpts = append(engineOpts, extra...)

	return runner.New(log, notifier, runner.WithEngineOptions(engineOpts...)), nil
}
