// ABOUTME: Configuration schema for the cadenza client and server
// ABOUTME: Declares YAML structure, defaults, and validation
// Package config provides the configuration schema and loader for
// Cadenza. Configs are YAML files loaded with [Load] or
// [LoadFromReader]; the API key may also come from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
)

// APIKeyEnv is consulted when the config file carries no key.
const APIKeyEnv = "GEMINI_API_KEY"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Models ModelsConfig `yaml:"models"`
	Speech SpeechConfig `yaml:"speech"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds credentials for the hosted model API.
type APIConfig struct {
	// Key is the API key. Leave empty to read it from GEMINI_API_KEY.
	Key string `yaml:"key"`
}

// ModelsConfig selects the model IDs used per capability.
type ModelsConfig struct {
	Chat     string `yaml:"chat"`
	Thinking string `yaml:"thinking"`
	Image    string `yaml:"image"`
	Speech   string `yaml:"speech"`

	// Live is the bidirectional streaming dialog model.
	Live string `yaml:"live"`
}

// SpeechConfig holds speech synthesis and playback settings.
type SpeechConfig struct {
	// Voice is the prebuilt voice name sent with synthesis requests.
	Voice string `yaml:"voice"`

	// Volume is the playback volume (0-100).
	Volume int `yaml:"volume"`
}

// ServerConfig holds settings for the optional HTTP API facade.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g. ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins lists browser origins permitted by CORS.
	// Empty means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level LogLevel `yaml:"level"`
	File  string   `yaml:"file"`
}

// Default returns a config with working defaults for everything but
// the API key.
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Chat:     "gemini-2.5-flash",
			Thinking: "gemini-2.5-pro",
			Image:    "gemini-2.5-flash-image-preview",
			Speech:   "gemini-2.5-flash-preview-tts",
			Live:     "gemini-2.5-flash-preview-native-audio-dialog",
		},
		Speech: SpeechConfig{
			Voice:  "Kore",
			Volume: 100,
		},
		Server: ServerConfig{
			ListenAddr: ":8420",
		},
		Log: LogConfig{
			Level: LogInfo,
			File:  "cadenza.log",
		},
	}
}

// ResolveAPIKey returns the configured key, falling back to the
// environment.
func (c *Config) ResolveAPIKey() string {
	if c.API.Key != "" {
		return c.API.Key
	}
	return os.Getenv(APIKeyEnv)
}

// SpeechFormat returns the fixed audio wire format. Synthesis output
// is not configurable; the value lives here so callers read it from
// one place.
func (c *Config) SpeechFormat() audio.Format {
	return audio.SpeechFormat()
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("config: invalid log level %q", cfg.Log.Level))
	}
	if cfg.Speech.Volume < 0 || cfg.Speech.Volume > 100 {
		errs = append(errs, fmt.Errorf("config: speech volume %d outside 0-100", cfg.Speech.Volume))
	}
	if cfg.Speech.Voice == "" {
		errs = append(errs, errors.New("config: speech voice must not be empty"))
	}
	for name, model := range map[string]string{
		"chat":     cfg.Models.Chat,
		"thinking": cfg.Models.Thinking,
		"image":    cfg.Models.Image,
		"speech":   cfg.Models.Speech,
		"live":     cfg.Models.Live,
	} {
		if model == "" {
			errs = append(errs, fmt.Errorf("config: models.%s must not be empty", name))
		}
	}
	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("config: server listen_addr must not be empty"))
	}

	return errors.Join(errs...)
}
