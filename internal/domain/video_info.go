package domain

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
)

// Format describes one stream the engine can fetch
type Format struct {
	FormatID string
	Ext      string
	VCodec   string
	ACodec   string
	Height   int
	Width    int
	Filesize int64
}

// IsVideo reports whether the format carries a video stream
func (f Format) IsVideo() bool {
	return f.VCodec != "none" && f.Height > 0
}

// VideoInfo is a normalized snapshot of remote metadata
type VideoInfo struct {
	URL         string
	Title       string
	Channel     string
	Duration    int // seconds
	ViewCount   *int64
	Thumbnail   string
	Description string
	UploadDate  string
	Formats     []Format

	IsPlaylist    bool
	PlaylistCount int
	PlaylistTitle string
}

// DurationFormatted returns the duration as H:MM:SS or M:SS
func (v *VideoInfo) DurationFormatted() string {
	d := v.Duration
	if d < 0 {
		d = 0
	}
	hours, rem := d/3600, d%3600
	minutes, seconds := rem/60, rem%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ViewsFormatted returns the view count with thousands separators, or N/A
func (v *VideoInfo) ViewsFormatted() string {
	if v.ViewCount == nil {
		return "N/A"
	}
	return humanize.Comma(*v.ViewCount)
}

// AvailableQualities lists distinct video heights, highest first ("1080p", "720p", ...)
func (v *VideoInfo) AvailableQualities() []string {
	seen := make(map[int]bool)
	var heights []int
	for _, f := range v.Formats {
		if f.IsVideo() && !seen[f.Height] {
			seen[f.Height] = true
			heights = append(heights, f.Height)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	qualities := make([]string, 0, len(heights))
	for _, h := range heights {
		qualities = append(qualities, fmt.Sprintf("%dp", h))
	}
	return qualities
}

// AvailableAudioFormats lists the audio codecs the engine can extract to
func (v *VideoInfo) AvailableAudioFormats() []string {
	return append([]string(nil), AudioFormats...)
}
