package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/BrunoTulio/logr"
)

// Validate checks the structural parts of the configuration. Per-job schedule
// errors are deliberately not fatal here: a bad rule disables that job during
// Resolve, it does not take the whole daemon down.
func (c *Config) Validate() error {
	if err := c.validateTimezone(); err != nil {
		return fmt.Errorf("timezone config: %w", err)
	}

	if err := c.validateProfiles(); err != nil {
		return fmt.Errorf("profiles config: %w", err)
	}

	if err := c.validateJobs(); err != nil {
		return fmt.Errorf("jobs config: %w", err)
	}

	if err := c.validateScheduler(); err != nil {
		return fmt.Errorf("scheduler config: %w", err)
	}

	if err := c.validateNotification(); err != nil {
		return fmt.Errorf("notify config: %w", err)
	}

	return nil
}

func (c *Config) validateTimezone() error {
	if c.Timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}

	if _, err := c.GetLocation(); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if len(c.Profiles) == 0 {
		logr.Warn("No profiles configured")
	}

	names := make(map[string]bool)

	for i, p := range c.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("profile[%d]: name is required", i)
		}
		if names[p.Name] {
			return fmt.Errorf("profile[%d]: duplicate profile name '%s'", i, p.Name)
		}
		names[p.Name] = true

		if strings.TrimSpace(p.Host) == "" {
			return fmt.Errorf("profile[%d] (%s): host is required", i, p.Name)
		}
		if !isValidHost(p.Host) {
			return fmt.Errorf("profile[%d] (%s): host has invalid format: %s", i, p.Name, p.Host)
		}
		if p.Port < 0 || p.Port > 65535 {
			return fmt.Errorf("profile[%d] (%s): port must be between 0 and 65535, got %d", i, p.Name, p.Port)
		}
		if p.Password == "" {
			logr.Warnf("Profile '%s' has an empty password", p.Name)
		}
		if p.TimeoutSeconds > 3600 {
			logr.Warnf("Profile '%s' has timeout=%ds (>1h). This seems excessive.", p.Name, p.TimeoutSeconds)
		}
		if p.Passive != nil && !*p.Passive {
			logr.Warnf("Profile '%s' requests active mode; the FTP client only supports passive transfers", p.Name)
		}
	}

	return nil
}

func (c *Config) validateJobs() error {
	names := make(map[string]bool)

	for i, j := range c.Jobs {
		if strings.TrimSpace(j.Name) == "" {
			return fmt.Errorf("job[%d]: name is required", i)
		}
		if names[j.Name] {
			return fmt.Errorf("job[%d]: duplicate job name '%s'", i, j.Name)
		}
		names[j.Name] = true

		if strings.TrimSpace(j.Profile) == "" {
			return fmt.Errorf("job[%d] (%s): profile is required", i, j.Name)
		}

		if strings.TrimSpace(j.LocalTarget) == "" {
			return fmt.Errorf("job[%d] (%s): local_target is required", i, j.Name)
		}
		if strings.Contains(j.LocalTarget, "..") {
			return fmt.Errorf("job[%d] (%s): local_target cannot contain '..'", i, j.Name)
		}

		if j.Enabled && strings.TrimSpace(j.Schedule) == "" {
			logr.Warnf("Job '%s' is enabled but has no schedule configured", j.Name)
		}
	}

	return nil
}

func (c *Config) validateScheduler() error {
	s := c.Scheduler

	if s.MaxConcurrentRuns < 0 {
		return fmt.Errorf("max_concurrent_runs cannot be negative, got %d", s.MaxConcurrentRuns)
	}
	if s.MaxConcurrentRuns > 64 {
		logr.Warnf("max_concurrent_runs=%d is very high for FTP connections", s.MaxConcurrentRuns)
	}

	if s.RunTimeoutMinutes < 0 {
		return fmt.Errorf("run_timeout_minutes cannot be negative, got %d", s.RunTimeoutMinutes)
	}

	return nil
}

func (c *Config) validateNotification() error {
	notif := c.Notification

	if !c.IsNotifyMail() && !c.IsNotifyDiscord() && !c.IsNotifyTelegram() {
		return nil
	}

	if c.IsNotifyMail() {
		for _, email := range notif.Emails {
			if !isValidEmail(email) {
				return fmt.Errorf("emails has invalid format: %s", email)
			}
		}

		if notif.SMTPServer == "" {
			return fmt.Errorf("smtp_server is required when emails is set")
		}

		if notif.SMTPPort < 1 || notif.SMTPPort > 65535 {
			return fmt.Errorf("smtp_port must be between 1 and 65535, got %d", notif.SMTPPort)
		}

		validSMTPPorts := map[int]bool{25: true, 465: true, 587: true, 2525: true}
		if !validSMTPPorts[notif.SMTPPort] {
			logr.Warnf("smtp_port=%d is unusual. Common ports are 25, 465, 587, 2525", notif.SMTPPort)
		}

		if notif.EmailFrom != "" && !isValidEmail(notif.EmailFrom) {
			return fmt.Errorf("email_from has invalid format: %s", notif.EmailFrom)
		}

		validAuthMethods := map[string]bool{"login": true, "plain": true, "cram-md5": true, "none": true, "": true}
		if !validAuthMethods[strings.ToLower(notif.SMTPAuth)] {
			return fmt.Errorf("smtp_auth must be one of: login, plain, cram-md5, none, got '%s'", notif.SMTPAuth)
		}
	}

	if c.IsNotifyDiscord() {
		if !strings.HasPrefix(notif.DiscordWebhookURL, "http://") && !strings.HasPrefix(notif.DiscordWebhookURL, "https://") {
			return fmt.Errorf("discord_webhook_url must start with http:// or https://")
		}
	}

	if c.IsNotifyTelegram() && strings.TrimSpace(notif.TelegramChatID) == "" {
		return fmt.Errorf("telegram_chat_id is required when telegram_bot_token is set")
	}

	return nil
}

// isValidHost validates whether the host is valid (hostname or IP)
func isValidHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	hostnameRegex := regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)
	return hostnameRegex.MatchString(host)
}

// isValidEmail validate email format
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
