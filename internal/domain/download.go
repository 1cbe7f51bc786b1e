package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFilenameTemplate names files after the video title.
const DefaultFilenameTemplate = "%(title)s.%(ext)s"

// Supported container and codec choices
var (
	VideoFormats = []string{"mp4", "mkv", "webm"}
	AudioFormats = []string{"mp3", "m4a", "opus", "flac", "wav"}
)

// DownloadConfig holds every user-adjustable download parameter.
// It is built once per invocation (or across interactive prompts) and treated
// as read-only after it is handed to the orchestrator.
type DownloadConfig struct {
	OutputDir        string `mapstructure:"output_dir" yaml:"output_dir"`
	FilenameTemplate string `mapstructure:"filename_template" yaml:"filename_template"`

	AudioOnly bool `mapstructure:"audio_only" yaml:"audio_only"`

	Quality      string `mapstructure:"quality" yaml:"quality"`             // best, worst, 720p, 1080p...
	AudioQuality string `mapstructure:"audio_quality" yaml:"audio_quality"` // best, worst, 192k...

	VideoFormat string `mapstructure:"video_format" yaml:"video_format"`
	AudioFormat string `mapstructure:"audio_format" yaml:"audio_format"`

	EmbedMetadata  bool `mapstructure:"embed_metadata" yaml:"embed_metadata"`
	EmbedThumbnail bool `mapstructure:"embed_thumbnail" yaml:"embed_thumbnail"`
	EmbedSubtitles bool `mapstructure:"embed_subtitles" yaml:"embed_subtitles"`

	DownloadSubtitles bool     `mapstructure:"download_subtitles" yaml:"download_subtitles"`
	SubtitleLangs     []string `mapstructure:"subtitle_langs" yaml:"subtitle_langs"`
	AutoSubtitles     bool     `mapstructure:"auto_subtitles" yaml:"auto_subtitles"`

	// Playlist bounds are 1-based; zero means unset.
	Playlist      bool `mapstructure:"playlist" yaml:"playlist"`
	PlaylistStart int  `mapstructure:"playlist_start" yaml:"playlist_start"`
	PlaylistEnd   int  `mapstructure:"playlist_end" yaml:"playlist_end"`

	RateLimit string `mapstructure:"rate_limit" yaml:"rate_limit"` // e.g. 1M, 500K
	Retries   int    `mapstructure:"retries" yaml:"retries"`

	Quiet   bool `mapstructure:"quiet" yaml:"quiet"`
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultDownloadConfig returns the download defaults.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		OutputDir:        DefaultOutputDir(),
		FilenameTemplate: DefaultFilenameTemplate,
		Quality:          "best",
		AudioQuality:     "best",
		VideoFormat:      "mp4",
		AudioFormat:      "mp3",
		EmbedMetadata:    true,
		SubtitleLangs:    []string{"en"},
		AutoSubtitles:    true,
		Playlist:         true,
		Retries:          3,
	}
}

// Clone returns a deep copy so variants never share the language slice.
func (c DownloadConfig) Clone() DownloadConfig {
	clone := c
	clone.SubtitleLangs = append([]string(nil), c.SubtitleLangs...)
	return clone
}

// Resolve expands ~ and environment variables in the output directory and
// makes it absolute.
func (c *DownloadConfig) Resolve() error {
	dir := ExpandPath(c.OutputDir)
	if dir == "" {
		dir = DefaultOutputDir()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory %q: %w", c.OutputDir, err)
	}
	c.OutputDir = abs
	return nil
}

// Validate checks the configuration for values the engine cannot use.
// Unknown quality strings are accepted: they fall back to the best selector.
func (c *DownloadConfig) Validate() error {
	if !contains(VideoFormats, c.VideoFormat) {
		return fmt.Errorf("invalid video format %q (choose from %s)", c.VideoFormat, strings.Join(VideoFormats, ", "))
	}
	if !contains(AudioFormats, c.AudioFormat) {
		return fmt.Errorf("invalid audio format %q (choose from %s)", c.AudioFormat, strings.Join(AudioFormats, ", "))
	}
	if c.FilenameTemplate == "" {
		return fmt.Errorf("filename template cannot be empty")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}
	if c.PlaylistStart < 0 || c.PlaylistEnd < 0 {
		return fmt.Errorf("playlist bounds must be positive")
	}
	if c.PlaylistStart > 0 && c.PlaylistEnd > 0 && c.PlaylistStart > c.PlaylistEnd {
		return fmt.Errorf("playlist start (%d) is after playlist end (%d)", c.PlaylistStart, c.PlaylistEnd)
	}
	if c.DownloadSubtitles && len(c.SubtitleLangs) == 0 {
		return fmt.Errorf("at least one subtitle language is required")
	}
	if _, err := ParseRateLimit(c.RateLimit); err != nil {
		return err
	}
	return nil
}

// ParseSubtitleLangs splits a comma-separated language list, dropping blanks.
func ParseSubtitleLangs(s string) []string {
	var langs []string
	for _, lang := range strings.Split(s, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
