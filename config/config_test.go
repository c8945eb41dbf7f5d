package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "stp.yaml", `
server:
  socket_path: /run/stp/test.sock
log:
  level: DEBUG
corner_kick_play:
  max_time_commit_to_pass_seconds: 1.5
passing:
  num_candidates: 20
  steps_per_update: 5
decision_log:
  path: /var/lib/stp/decisions.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/run/stp/test.sock", cfg.Server.SocketPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, 1500*time.Millisecond, cfg.CornerKick.MaxTimeCommitToPass())
	assert.Equal(t, 0.5, cfg.CornerKick.BallInCornerRadius, "unset keys keep their defaults")
	assert.NotEmpty(t, cfg.CornerKick.ApplicableWhen)
	assert.Equal(t, 20, cfg.Passing.NumCandidates)
	assert.Equal(t, 5, cfg.Passing.StepsPerUpdate)
	assert.Equal(t, 3.5, cfg.Passing.MinPassSpeed)
	assert.Equal(t, "/var/lib/stp/decisions.db", cfg.DecisionLog.Path)
	assert.Equal(t, defaultQueueSize, cfg.DecisionLog.QueueSize)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "stp.yaml", "server:\n  socket_path: /from/file.sock\n")
	t.Setenv(EnvSocket, "/from/env.sock")
	t.Setenv(EnvDecisionLog, "/tmp/d.db")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.sock", cfg.Server.SocketPath)
	assert.Equal(t, "/tmp/d.db", cfg.DecisionLog.Path)
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Log:         LogConfig{Level: "chatty"},
		DecisionLog: DecisionLogConfig{QueueSize: 1 << 30},
	}
	cfg.Validate()

	assert.Equal(t, DefaultSocketPath, cfg.Server.SocketPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, maxQueueSize, cfg.DecisionLog.QueueSize)
	assert.Equal(t, 0.5, cfg.CornerKick.BallInCornerRadius)
	assert.NotEmpty(t, cfg.CornerKick.InvariantWhile)
	assert.Equal(t, 12, cfg.Passing.NumCandidates)
}

func TestValidateKeepsZeroCommitWindow(t *testing.T) {
	cfg := Default()
	cfg.CornerKick.MaxTimeCommitToPassSeconds = 0
	cfg.Validate()
	assert.Zero(t, cfg.CornerKick.MaxTimeCommitToPass())
}

func TestLoadEnv(t *testing.T) {
	const key = "STP_TEST_DOTENV_VALUE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-dotenv\n")
	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}
