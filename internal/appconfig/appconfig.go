// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDaemonURL is the address of a locally running Ollama daemon.
	DefaultDaemonURL = "http://localhost:11434"
	// DefaultModelTool is the executable used for pull/rm operations.
	DefaultModelTool = "ollama"
	// defaultCheckTimeout bounds the daemon liveness probe.
	defaultCheckTimeout = 2 * time.Second
	// defaultUnloadTimeout bounds the keep_alive-0 unload request.
	defaultUnloadTimeout = 5 * time.Second
	// defaultDeleteTimeout bounds the external rm invocation.
	defaultDeleteTimeout = 10 * time.Second
	// defaultEnhanceTimeout bounds a full enhancement generate call.
	defaultEnhanceTimeout = 300 * time.Second
	// defaultExpandTimeout bounds the expansion pre-pass generate call.
	defaultExpandTimeout = 30 * time.Second
)

// DefaultEnhancementModel is used when the config names no enhancement model.
const DefaultEnhancementModel = "dolphin-llama3:latest"

// DefaultVisionModel is used when the config names no vision model.
const DefaultVisionModel = "llava:latest"

// Config represents the top-level application configuration.
type Config struct {
	DaemonURL             string `json:"daemonUrl,omitempty"`
	ModelTool             string `json:"modelTool,omitempty"`
	EnhancementModel      string `json:"enhancementModel,omitempty"`
	VisionModel           string `json:"visionModel,omitempty"`
	CheckTimeoutSeconds   int    `json:"checkTimeout,omitempty"`
	UnloadTimeoutSeconds  int    `json:"unloadTimeout,omitempty"`
	DeleteTimeoutSeconds  int    `json:"deleteTimeout,omitempty"`
	EnhanceTimeoutSeconds int    `json:"enhanceTimeout,omitempty"`
	ExpandTimeoutSeconds  int    `json:"expandTimeout,omitempty"`
	Debug                 bool   `json:"debug"`
	LogFile               string `json:"logFile,omitempty"`
	ConfigPath            string `json:"-"`
}

// URL returns the daemon base URL, falling back to the local default.
func (c Config) URL() string {
	if u := strings.TrimSpace(c.DaemonURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return DefaultDaemonURL
}

// Tool returns the model management executable name.
func (c Config) Tool() string {
	if t := strings.TrimSpace(c.ModelTool); t != "" {
		return t
	}
	return DefaultModelTool
}

// Enhancement returns the configured enhancement model name.
func (c Config) Enhancement() string {
	if m := strings.TrimSpace(c.EnhancementModel); m != "" {
		return m
	}
	return DefaultEnhancementModel
}

// Vision returns the configured vision model name.
func (c Config) Vision() string {
	if m := strings.TrimSpace(c.VisionModel); m != "" {
		return m
	}
	return DefaultVisionModel
}

// CheckTimeout returns the liveness probe timeout.
func (c Config) CheckTimeout() time.Duration {
	return durationOrDefault(c.CheckTimeoutSeconds, defaultCheckTimeout)
}

// UnloadTimeout returns the timeout for unload requests.
func (c Config) UnloadTimeout() time.Duration {
	return durationOrDefault(c.UnloadTimeoutSeconds, defaultUnloadTimeout)
}

// DeleteTimeout returns the timeout for external delete invocations.
func (c Config) DeleteTimeout() time.Duration {
	return durationOrDefault(c.DeleteTimeoutSeconds, defaultDeleteTimeout)
}

// EnhanceTimeout returns the timeout for enhancement generate calls.
func (c Config) EnhanceTimeout() time.Duration {
	return durationOrDefault(c.EnhanceTimeoutSeconds, defaultEnhanceTimeout)
}

// ExpandTimeout returns the timeout for the expansion pre-pass.
func (c Config) ExpandTimeout() time.Duration {
	return durationOrDefault(c.ExpandTimeoutSeconds, defaultExpandTimeout)
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "promptforge.log"
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath reads and decodes a configuration file from the given path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	return config, nil
}
