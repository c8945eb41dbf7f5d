// Package config loads the sidecar's settings: compiled-in defaults, then an
// optional YAML file, then environment overrides (optionally from .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/stp/stp-core/passing"
	"github.com/nstehr/stp/stp-core/play"
)

// Environment variables that override the file.
const (
	EnvSocket      = "STP_SOCKET"
	EnvDecisionLog = "STP_DECISION_DB"
	EnvLogLevel    = "STP_LOG_LEVEL"
)

const (
	DefaultSocketPath = "/tmp/stp.sock"
	defaultQueueSize  = 256
	maxQueueSize      = 1 << 16
	defaultLogLevel   = "info"
)

type Config struct {
	Server      ServerConfig          `yaml:"server"`
	Log         LogConfig             `yaml:"log"`
	CornerKick  play.CornerKickConfig `yaml:"corner_kick_play"`
	Passing     passing.Config        `yaml:"passing"`
	DecisionLog DecisionLogConfig     `yaml:"decision_log"`
}

type ServerConfig struct {
	SocketPath string `yaml:"socket_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DecisionLogConfig points at the sqlite file play decisions are written
// to. An empty path disables the log.
type DecisionLogConfig struct {
	Path      string `yaml:"path"`
	QueueSize int    `yaml:"queue_size"`
}

func Default() Config {
	return Config{
		Server:      ServerConfig{SocketPath: DefaultSocketPath},
		Log:         LogConfig{Level: defaultLogLevel},
		CornerKick:  play.DefaultCornerKickConfig(),
		Passing:     passing.DefaultConfig(),
		DecisionLog: DecisionLogConfig{QueueSize: defaultQueueSize},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("no config file, using defaults", "path", path)
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment without
// replacing variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSocket); v != "" {
		c.Server.SocketPath = v
	}
	if v := os.Getenv(EnvDecisionLog); v != "" {
		c.DecisionLog.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate fills unset fields and pulls the rest back into usable ranges.
func (c *Config) Validate() {
	if c.Server.SocketPath == "" {
		c.Server.SocketPath = DefaultSocketPath
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		c.Log.Level = defaultLogLevel
	}
	if c.DecisionLog.QueueSize <= 0 {
		c.DecisionLog.QueueSize = defaultQueueSize
	}
	c.DecisionLog.QueueSize = min(c.DecisionLog.QueueSize, maxQueueSize)
	c.CornerKick.Validate()
	c.Passing.Validate()
}

// SlogLevel is the configured level. Validate has already rejected
// anything slog cannot parse.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
