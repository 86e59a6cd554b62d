package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  addr: ":9090"

timezone: "America/Sao_Paulo"

profiles:
  - name: "nas"
    host: "ftp.example.com"
    username: "backup"
    password: "secret"
    root: "/srv"

jobs:
  - name: "docs"
    enabled: true
    profile: "nas"
    remote_source: "docs"
    local_target: "./backups"
    schedule: "0 2 * * *"

scheduler:
  max_concurrent_runs: 2
  run_timeout_minutes: 15

notification:
  success_enabled: true
  error_enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ftpsnap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, 2, cfg.Scheduler.Concurrency())

	require.Len(t, cfg.Profiles, 1)
	assert.Equal(t, "ftp.example.com:21", cfg.Profiles[0].Addr())

	require.Len(t, cfg.Jobs, 1)
	assert.True(t, cfg.Jobs[0].Enabled)
}

func TestLoadAppliesDefaults(t *testing.T) {
	minimal := `
profiles:
  - name: "nas"
    host: "localhost"
jobs: []
`
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("MAX_CONCURRENT_RUNS", "8")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/x")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Scheduler.MaxConcurrentRuns)
	assert.True(t, cfg.IsNotifyDiscord())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate profile names",
			yaml: `
profiles:
  - name: "nas"
    host: "a.example.com"
  - name: "nas"
    host: "b.example.com"
jobs: []
`,
		},
		{
			name: "job escaping local target",
			yaml: `
profiles:
  - name: "nas"
    host: "localhost"
jobs:
  - name: "evil"
    enabled: true
    profile: "nas"
    remote_source: "docs"
    local_target: "../../etc"
    schedule: "0 2 * * *"
`,
		},
		{
			name: "bad timezone",
			yaml: `
timezone: "Mars/Olympus"
profiles:
  - name: "nas"
    host: "localhost"
jobs: []
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}
