package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables for the trigger loop and the two dismissal gates.
type Config struct {
	// EARThreshold is the eye-aspect-ratio above which a frame counts as
	// eyes-open.
	EARThreshold float64 `yaml:"ear_threshold"`

	// TriggerPollInterval is the clock poller cadence.
	TriggerPollInterval time.Duration `yaml:"trigger_poll_interval"`

	// LivenessPollInterval is the detection poll cadence while ringing.
	LivenessPollInterval time.Duration `yaml:"liveness_poll_interval"`

	// SnoozeDelta is how far snooze pushes the alarm time.
	SnoozeDelta time.Duration `yaml:"snooze_delta"`

	// WrongAnswerRetryDelay is the pause before a fresh question is fetched
	// after a wrong answer.
	WrongAnswerRetryDelay time.Duration `yaml:"wrong_answer_retry_delay"`

	// AwakeConsecutiveFrames is the number of consecutive eyes-open frames
	// required before the liveness gate reports awake. 1 means every frame
	// stands on its own.
	AwakeConsecutiveFrames int `yaml:"awake_consecutive_frames"`

	// AudioCommand is the external player invoked for the alarm sound,
	// e.g. "aplay" or "afplay". Empty selects a silent player.
	AudioCommand string `yaml:"audio_command"`

	// AudioFile is the sound file passed to AudioCommand.
	AudioFile string `yaml:"audio_file"`

	// DetectorURL is the base URL of the facial-landmark detection service.
	DetectorURL string `yaml:"detector_url"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		EARThreshold:           0.28,
		TriggerPollInterval:    time.Second,
		LivenessPollInterval:   300 * time.Millisecond,
		SnoozeDelta:            5 * time.Minute,
		WrongAnswerRetryDelay:  2 * time.Second,
		AwakeConsecutiveFrames: 1,
		DetectorURL:            "http://127.0.0.1:8790",
	}
}

// Load builds the configuration: defaults, then the YAML config file if one
// exists, then WAKEY_* environment overrides.
func Load() (Config, error) {
	cfg := Default()

	path, err := DefaultPath()
	if err == nil {
		if data, rerr := os.ReadFile(path); rerr == nil {
			if uerr := yaml.Unmarshal(data, &cfg); uerr != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, uerr)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath resolves the config file location:
// $WAKEY_CONFIG, then $XDG_CONFIG_HOME/wakey/config.yaml,
// then ~/.config/wakey/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("WAKEY_CONFIG"); p != "" {
		return p, nil
	}
	confHome := os.Getenv("XDG_CONFIG_HOME")
	if confHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		confHome = filepath.Join(home, ".config")
	}
	return filepath.Join(confHome, "wakey", "config.yaml"), nil
}

// Save writes the configuration to path, creating parent directories.
// Used by the calibrate command to persist a tuned EAR threshold.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the gates cannot operate with.
func (c Config) Validate() error {
	if c.EARThreshold <= 0 {
		return fmt.Errorf("ear_threshold must be positive, got %g", c.EARThreshold)
	}
	if c.TriggerPollInterval <= 0 {
		return fmt.Errorf("trigger_poll_interval must be positive, got %s", c.TriggerPollInterval)
	}
	if c.LivenessPollInterval <= 0 {
		return fmt.Errorf("liveness_poll_interval must be positive, got %s", c.LivenessPollInterval)
	}
	if c.SnoozeDelta < time.Minute {
		return fmt.Errorf("snooze_delta must be at least one minute, got %s", c.SnoozeDelta)
	}
	if c.AwakeConsecutiveFrames < 1 {
		return fmt.Errorf("awake_consecutive_frames must be >= 1, got %d", c.AwakeConsecutiveFrames)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WAKEY_EAR_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EARThreshold = f
		}
	}
	if v := os.Getenv("WAKEY_TRIGGER_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TriggerPollInterval = d
		}
	}
	if v := os.Getenv("WAKEY_LIVENESS_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LivenessPollInterval = d
		}
	}
	if v := os.Getenv("WAKEY_SNOOZE_DELTA"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SnoozeDelta = d
		}
	}
	if v := os.Getenv("WAKEY_WRONG_ANSWER_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WrongAnswerRetryDelay = d
		}
	}
	if v := os.Getenv("WAKEY_AWAKE_CONSECUTIVE_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AwakeConsecutiveFrames = n
		}
	}
	if v := os.Getenv("WAKEY_AUDIO_COMMAND"); v != "" {
		cfg.AudioCommand = v
	}
	if v := os.Getenv("WAKEY_AUDIO_FILE"); v != "" {
		cfg.AudioFile = v
	}
	if v := os.Getenv("WAKEY_DETECTOR_URL"); v != "" {
		cfg.DetectorURL = v
	}
}
