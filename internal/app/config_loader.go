package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/yourusername/ydownloader/internal/domain"
)

const (
	appName    = "ydownloader"
	envPrefix  = "YDOWNLOADER"
	configName = "config"
)

// DefaultConfigPath returns where `config init` writes the config file
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configName+".yaml")
}

// configSearchPaths lists the directories searched when no file is given
func configSearchPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName),
		"$HOME/." + appName,
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	return loadConfig(configPath, configSearchPaths())
}

func loadConfig(configPath string, searchPaths []string) (*domain.Config, error) {
	// Start with default config
	config := domain.DefaultConfig()

	// Set up viper
	v := viper.New()
	v.SetConfigType("yaml")

	// If config path is provided, use it
	if configPath != "" {
		v.SetConfigFile(domain.ExpandPath(configPath))
	} else {
		// Look for config in standard locations
		v.SetConfigName(configName)
		for _, path := range searchPaths {
			v.AddConfigPath(path)
		}
	}

	// Environment variables only bind to keys viper knows about
	setDefaults(v, config)

	// Read environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand environment variables in paths
	expandPaths(config)

	// Validate config
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, config *domain.Config) {
	d := config.Download
	v.SetDefault("download.output_dir", d.OutputDir)
	v.SetDefault("download.filename_template", d.FilenameTemplate)
	v.SetDefault("download.audio_only", d.AudioOnly)
	v.SetDefault("download.quality", d.Quality)
	v.SetDefault("download.audio_quality", d.AudioQuality)
	v.SetDefault("download.video_format", d.VideoFormat)
	v.SetDefault("download.audio_format", d.AudioFormat)
	v.SetDefault("download.embed_metadata", d.EmbedMetadata)
	v.SetDefault("download.embed_thumbnail", d.EmbedThumbnail)
	v.SetDefault("download.embed_subtitles", d.EmbedSubtitles)
	v.SetDefault("download.download_subtitles", d.DownloadSubtitles)
	v.SetDefault("download.subtitle_langs", d.SubtitleLangs)
	v.SetDefault("download.auto_subtitles", d.AutoSubtitles)
	v.SetDefault("download.playlist", d.Playlist)
	v.SetDefault("download.playlist_start", d.PlaylistStart)
	v.SetDefault("download.playlist_end", d.PlaylistEnd)
	v.SetDefault("download.rate_limit", d.RateLimit)
	v.SetDefault("download.retries", d.Retries)
	v.SetDefault("download.quiet", d.Quiet)
	v.SetDefault("download.verbose", d.Verbose)

	v.SetDefault("engine.binary", config.Engine.Binary)

	v.SetDefault("notification.enabled", config.Notification.Enabled)
	v.SetDefault("notification.sound", config.Notification.Sound)
	v.SetDefault("notification.method", config.Notification.Method)

	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)
}

// expandPaths expands environment variables and ~ in path configurations
func expandPaths(config *domain.Config) {
	config.Download.OutputDir = domain.ExpandPath(config.Download.OutputDir)
	config.Engine.Binary = domain.ExpandPath(config.Engine.Binary)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = domain.ExpandPath(config.Logging.OutputPath)
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(config *domain.Config) error {
	if err := config.Download.Validate(); err != nil {
		return err
	}

	if config.Download.OutputDir == "" {
		return fmt.Errorf("output directory not configured")
	}

	if config.Engine.Binary == "" {
		return fmt.Errorf("engine binary not configured")
	}

	switch config.Logging.Level {
	case "":
		config.Logging.Level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	// Set up viper
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("download", config.Download)
	v.Set("engine", config.Engine)
	v.Set("notification", config.Notification)
	v.Set("logging", config.Logging)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
