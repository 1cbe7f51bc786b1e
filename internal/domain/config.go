package domain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download" yaml:"download"`
	Engine       EngineConfig       `mapstructure:"engine" yaml:"engine"`
	Notification NotificationConfig `mapstructure:"notification" yaml:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig contains settings for the external extraction engine
type EngineConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary"` // yt-dlp executable name or path
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Sound   bool   `mapstructure:"sound" yaml:"sound"`
	Method  string `mapstructure:"method" yaml:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`             // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format"`           // json, console
	OutputPath string `mapstructure:"output_path" yaml:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DefaultDownloadConfig(),
		Engine: EngineConfig{
			Binary: "yt-dlp",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   false,
			Method:  defaultNotificationMethod(),
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// DefaultOutputDir returns the user's downloads directory.
func DefaultOutputDir() string {
	if dir := xdg.UserDirs.Download; dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}

func defaultNotificationMethod() string {
	if runtime.GOOS == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

// ExpandPath expands environment variables and ~ in paths
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return path
}
