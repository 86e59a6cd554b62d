package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config, applies environment overrides and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	applyDefaults(cfg)
	loadEnvOverrides(cfg)

	return cfg, cfg.Validate()
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
}

func loadEnvOverrides(cfg *Config) {
	if timezone, ok := stringLookup("TZ"); ok {
		cfg.Timezone = timezone
	}
	if serverAddr, ok := stringLookup("SERVER_ADDR"); ok {
		cfg.Server.Addr = serverAddr
	}
	if runOnStartup, ok := boolLookup("RUN_ON_STARTUP"); ok {
		cfg.RunOnStartup = runOnStartup
	}
	if encryptionKey, ok := stringLookup("BACKUP_ENCRYPTION_KEY"); ok {
		cfg.EncryptionKey = encryptionKey
	}

	if maxRuns, ok := intLookup("MAX_CONCURRENT_RUNS"); ok {
		cfg.Scheduler.MaxConcurrentRuns = maxRuns
	}
	if runTimeout, ok := intLookup("RUN_TIMEOUT_MINUTES"); ok {
		cfg.Scheduler.RunTimeoutMinutes = runTimeout
	}

	if startEnabled, ok := boolLookup("NOTIFICATION_START_ENABLED"); ok {
		cfg.Notification.StartEnabled = startEnabled
	}
	if successEnabled, ok := boolLookup("NOTIFICATION_SUCCESS_ENABLED"); ok {
		cfg.Notification.SuccessEnabled = successEnabled
	}
	if errorEnabled, ok := boolLookup("NOTIFICATION_ERROR_ENABLED"); ok {
		cfg.Notification.ErrorEnabled = errorEnabled
	}
	if emails, ok := stringsLookup("NOTIFICATION_EMAIL"); ok {
		cfg.Notification.Emails = emails
	}
	if emailFrom, ok := stringLookup("NOTIFICATION_EMAIL_FROM"); ok {
		cfg.Notification.EmailFrom = emailFrom
	}
	if smtpServer, ok := stringLookup("SMTP_SERVER"); ok {
		cfg.Notification.SMTPServer = smtpServer
	}
	if smtpPort, ok := intLookup("SMTP_PORT"); ok {
		cfg.Notification.SMTPPort = smtpPort
	}
	if smtpUser, ok := stringLookup("SMTP_USER"); ok {
		cfg.Notification.SMTPUser = smtpUser
	}
	if smtpPassword, ok := stringLookup("SMTP_PASSWORD"); ok {
		cfg.Notification.SMTPPassword = smtpPassword
	}
	if smtpAuth, ok := stringLookup("SMTP_AUTH_METHOD"); ok {
		cfg.Notification.SMTPAuth = smtpAuth
	}
	if smtpTLS, ok := boolLookup("SMTP_TLS"); ok {
		cfg.Notification.SMTPTLS = smtpTLS
	}
	if discordWebhookURL, ok := stringLookup("DISCORD_WEBHOOK_URL"); ok {
		cfg.Notification.DiscordWebhookURL = discordWebhookURL
	}
	if telegramBotToken, ok := stringLookup("TELEGRAM_BOT_TOKEN"); ok {
		cfg.Notification.TelegramBotToken = telegramBotToken
	}
	if telegramChatID, ok := stringLookup("TELEGRAM_CHAT_ID"); ok {
		cfg.Notification.TelegramChatID = telegramChatID
	}
}
