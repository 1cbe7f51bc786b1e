package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Audio quality markers understood by the engine (0 = best VBR, 9 = worst)
const (
	AudioQualityBest  = "0"
	AudioQualityWorst = "9"
)

// EngineOptions projects the configuration into the engine's option set.
// The only failure is a malformed rate limit.
func (c *DownloadConfig) EngineOptions() (EngineOptions, error) {
	opts := EngineOptions{
		OutputTemplate: filepath.Join(c.OutputDir, c.FilenameTemplate),
		Retries:        c.Retries,
		IgnoreErrors:   false,
		Quiet:          c.Quiet,
		NoWarnings:     c.Quiet,
		Verbose:        c.Verbose,
	}

	if c.AudioOnly {
		opts.Format = "bestaudio/best"
		opts.PostProcessors = append(opts.PostProcessors, PostProcessor{
			Key:              PostProcessorExtractAudio,
			PreferredCodec:   c.AudioFormat,
			PreferredQuality: AudioQualityCode(c.AudioQuality),
		})
	} else {
		opts.Format = FormatSelector(c.Quality)
		opts.MergeOutputFormat = c.VideoFormat
	}

	if c.EmbedMetadata {
		opts.PostProcessors = append(opts.PostProcessors, PostProcessor{
			Key:         PostProcessorMetadata,
			AddMetadata: true,
		})
	}

	if c.EmbedThumbnail {
		opts.WriteThumbnail = true
		opts.PostProcessors = append(opts.PostProcessors, PostProcessor{Key: PostProcessorEmbedThumb})
	}

	if c.DownloadSubtitles {
		opts.WriteSubtitles = true
		opts.SubtitleLangs = append([]string(nil), c.SubtitleLangs...)
		opts.WriteAutoSubtitles = c.AutoSubtitles
		if c.EmbedSubtitles {
			opts.PostProcessors = append(opts.PostProcessors, PostProcessor{Key: PostProcessorEmbedSubtitle})
		}
	}

	if !c.Playlist {
		opts.NoPlaylist = true
	} else {
		opts.PlaylistStart = c.PlaylistStart
		opts.PlaylistEnd = c.PlaylistEnd
	}

	limit, err := ParseRateLimit(c.RateLimit)
	if err != nil {
		return EngineOptions{}, err
	}
	opts.RateLimit = limit

	return opts, nil
}

// FormatSelector builds the engine format string for a video quality.
// "720p" (or "720") caps the height; unknown values fall back to best.
func FormatSelector(quality string) string {
	switch quality {
	case "best":
		return "bestvideo+bestaudio/best"
	case "worst":
		return "worstvideo+worstaudio/worst"
	}

	height := strings.TrimSuffix(quality, "p")
	if isDigits(height) {
		return fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best[height<=%s]", height, height)
	}
	return "bestvideo+bestaudio/best"
}

// AudioQualityCode maps an audio quality setting to the engine's marker
func AudioQualityCode(quality string) string {
	switch quality {
	case "best":
		return AudioQualityBest
	case "worst":
		return AudioQualityWorst
	default:
		return strings.TrimRight(quality, "kK")
	}
}

// ParseRateLimit converts "500K", "1.5m", "2G" or "1048576" to bytes per
// second. The only accepted suffixes are single K, M, G and T letters, each
// 1024-based like yt-dlp's own. A bare number must be a whole byte count.
// An empty string means no limit.
func ParseRateLimit(rate string) (int64, error) {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return 0, nil
	}
	invalid := fmt.Errorf("invalid rate limit %q", rate)

	number, unit := rate[:len(rate)-1], strings.ToUpper(rate[len(rate)-1:])
	if !strings.Contains(rateUnits, unit) {
		value, err := strconv.ParseInt(rate, 10, 64)
		if err != nil || value < 0 {
			return 0, invalid
		}
		return value, nil
	}

	if !isDecimal(number) {
		return 0, invalid
	}
	n, err := humanize.ParseBytes(number + unit + "iB")
	if err != nil {
		return 0, invalid
	}
	return int64(n), nil
}

// rateUnits are the binary multiplier letters accepted by ParseRateLimit
const rateUnits = "KMGT"

// isDecimal reports whether s is a plain non-negative decimal like "1" or "1.5"
func isDecimal(s string) bool {
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return isDigits(whole)
	}
	return (whole == "" || isDigits(whole)) && isDigits(frac)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
