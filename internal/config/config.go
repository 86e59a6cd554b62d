package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rclone/rclone/fs/config/obscure"
)

type Config struct {
	Server       Server             `yaml:"server"`
	Timezone     string             `yaml:"timezone"`
	Profiles     []Profile          `yaml:"profiles"`
	Jobs         []Job              `yaml:"jobs"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Notification NotificationConfig `yaml:"notification"`

	// EncryptionKey, when set, encrypts every downloaded file with age.
	EncryptionKey string `yaml:"encryption_key"`
	RunOnStartup  bool   `yaml:"run_on_startup"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Profile identifies one remote FTP/FTPS server. Profiles are immutable once
// loaded; jobs hold a reference by name, never a copy.
type Profile struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	// Password is either plaintext or the output of `ftpsnap obscure` when
	// PasswordObscured is set.
	Password         string `yaml:"password"`
	PasswordObscured bool   `yaml:"password_obscured"`
	TLS              bool   `yaml:"tls"`
	Passive          *bool  `yaml:"passive"`
	// Root is the remote directory relative remote_source paths are joined to.
	Root           string `yaml:"root"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Job binds a profile, a remote source folder, a local destination root and a
// recurrence rule under a stable name.
type Job struct {
	Name         string `yaml:"name"`
	Enabled      bool   `yaml:"enabled"`
	Profile      string `yaml:"profile"`
	RemoteSource string `yaml:"remote_source"`
	LocalTarget  string `yaml:"local_target"`
	// Schedule is a 5-field cron-like expression, e.g. "0 2 * * 6".
	Schedule string `yaml:"schedule"`
}

type SchedulerConfig struct {
	// MaxConcurrentRuns caps simultaneous runs across all jobs. Runs of the
	// same job never overlap regardless of this value.
	MaxConcurrentRuns int `yaml:"max_concurrent_runs"`
	RunTimeoutMinutes int `yaml:"run_timeout_minutes"`
}

type NotificationConfig struct {
	StartEnabled   bool `yaml:"start_enabled"`
	SuccessEnabled bool `yaml:"success_enabled"`
	ErrorEnabled   bool `yaml:"error_enabled"`

	Emails       []string `yaml:"emails"`
	EmailFrom    string   `yaml:"email_from"`
	SMTPServer   string   `yaml:"smtp_server"`
	SMTPPort     int      `yaml:"smtp_port"`
	SMTPUser     string   `yaml:"smtp_user"`
	SMTPPassword string   `yaml:"smtp_password"`
	SMTPAuth     string   `yaml:"smtp_auth"`
	SMTPTLS      bool     `yaml:"smtp_tls"`

	DiscordWebhookURL string `yaml:"discord_webhook_url"`

	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   string `yaml:"telegram_chat_id"`
}

const (
	DefaultMaxConcurrentRuns = 4
	DefaultRunTimeoutMinutes = 60
	DefaultProfileTimeout    = 30
	DefaultPort              = 21
)

func (c *Config) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) MustLocation() *time.Location {
	loc, err := c.GetLocation()
	if err != nil {
		panic(err)
	}
	return loc
}

func (c *Config) IsEncryptEnabled() bool {
	return c.EncryptionKey != ""
}

func (c *Config) IsNotifyMail() bool {
	return len(c.Notification.Emails) > 0
}

func (c *Config) IsNotifyDiscord() bool {
	return c.Notification.DiscordWebhookURL != ""
}

func (c *Config) IsNotifyTelegram() bool {
	return c.Notification.TelegramBotToken != ""
}

func (c *Config) FindProfile(name string) (*Profile, bool) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

func (c *Config) FindJob(name string) (*Job, bool) {
	for i := range c.Jobs {
		if c.Jobs[i].Name == name {
			return &c.Jobs[i], true
		}
	}
	return nil, false
}

// RevealPassword returns the plaintext password, de-obscuring it when the
// profile stores the `ftpsnap obscure` form.
func (p *Profile) RevealPassword() (string, error) {
	if !p.PasswordObscured {
		return p.Password, nil
	}
	plain, err := obscure.Reveal(p.Password)
	if err != nil {
		return "", fmt.Errorf("profile %s: reveal password: %w", p.Name, err)
	}
	return plain, nil
}

// IsPassive defaults to true; the transfer stack only speaks passive mode.
func (p *Profile) IsPassive() bool {
	return p.Passive == nil || *p.Passive
}

func (p *Profile) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return DefaultProfileTimeout * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (p *Profile) Addr() string {
	port := p.Port
	if port <= 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", p.Host, port)
}

// NormRemote normalizes a remote path: forward slashes, a single leading
// slash, no trailing slash.
func NormRemote(path string) string {
	p := strings.NewReplacer("\\", "/", "\r", "", "\n", "").Replace(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// RemotePath resolves the job's remote source against the profile root.
// Absolute sources ignore the root.
func (j *Job) RemotePath(p *Profile) string {
	src := strings.TrimSpace(j.RemoteSource)
	src = strings.NewReplacer("\\", "/", "\r", "", "\n", "").Replace(src)
	if strings.HasPrefix(src, "/") {
		return NormRemote(src)
	}
	root := strings.TrimRight(NormRemote(p.Root), "/")
	return NormRemote(root + "/" + src)
}

func (s *SchedulerConfig) Concurrency() int {
	if s.MaxConcurrentRuns <= 0 {
		return DefaultMaxConcurrentRuns
	}
	return s.MaxConcurrentRuns
}

func (s *SchedulerConfig) RunTimeout() time.Duration {
	if s.RunTimeoutMinutes <= 0 {
		return DefaultRunTimeoutMinutes * time.Minute
	}
	return time.Duration(s.RunTimeoutMinutes) * time.Minute
}
