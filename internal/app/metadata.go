package app

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/yourusername/ydownloader/internal/domain"
)

const (
	unknownValue    = "Unknown"
	unknownPlaylist = "Unknown Playlist"
)

// rawInfo is the subset of the engine's metadata payload we read
type rawInfo struct {
	Type        string      `mapstructure:"_type"`
	Title       string      `mapstructure:"title"`
	Uploader    string      `mapstructure:"uploader"`
	Channel     string      `mapstructure:"channel"`
	Duration    float64     `mapstructure:"duration"`
	ViewCount   *int64      `mapstructure:"view_count"`
	Thumbnail   string      `mapstructure:"thumbnail"`
	Description string      `mapstructure:"description"`
	UploadDate  string      `mapstructure:"upload_date"`
	Formats     []rawFormat `mapstructure:"formats"`
	Entries     []rawInfo   `mapstructure:"entries"`
}

type rawFormat struct {
	FormatID string  `mapstructure:"format_id"`
	Ext      string  `mapstructure:"ext"`
	VCodec   string  `mapstructure:"vcodec"`
	ACodec   string  `mapstructure:"acodec"`
	Height   int     `mapstructure:"height"`
	Width    int     `mapstructure:"width"`
	Filesize float64 `mapstructure:"filesize"`
}

func decodeInfo(payload map[string]interface{}) (*rawInfo, error) {
	var raw rawInfo
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("failed to decode video info: %w", err)
	}
	return &raw, nil
}

// NormalizeInfo converts the engine payload into a VideoInfo. Playlists
// are described by their container plus the first entry.
func NormalizeInfo(url string, payload map[string]interface{}) (*domain.VideoInfo, error) {
	if len(payload) == 0 {
		return nil, domain.ErrNoInfo
	}

	raw, err := decodeInfo(payload)
	if err != nil {
		return nil, err
	}

	if raw.Type == "playlist" {
		return normalizePlaylist(url, raw), nil
	}

	channel := firstNonEmpty(raw.Uploader, raw.Channel, unknownValue)
	return &domain.VideoInfo{
		URL:         url,
		Title:       firstNonEmpty(raw.Title, unknownValue),
		Channel:     channel,
		Duration:    int(raw.Duration),
		ViewCount:   raw.ViewCount,
		Thumbnail:   raw.Thumbnail,
		Description: raw.Description,
		UploadDate:  raw.UploadDate,
		Formats:     convertFormats(raw.Formats),
	}, nil
}

func normalizePlaylist(url string, raw *rawInfo) *domain.VideoInfo {
	var first rawInfo
	if len(raw.Entries) > 0 {
		first = raw.Entries[0]
	}

	return &domain.VideoInfo{
		URL:           url,
		Title:         firstNonEmpty(first.Title, unknownValue),
		Channel:       firstNonEmpty(raw.Uploader, first.Uploader, unknownValue),
		Duration:      int(first.Duration),
		ViewCount:     first.ViewCount,
		Thumbnail:     firstNonEmpty(raw.Thumbnail, first.Thumbnail),
		Description:   raw.Description,
		UploadDate:    first.UploadDate,
		Formats:       convertFormats(first.Formats),
		IsPlaylist:    true,
		PlaylistCount: len(raw.Entries),
		PlaylistTitle: firstNonEmpty(raw.Title, unknownPlaylist),
	}
}

func convertFormats(raw []rawFormat) []domain.Format {
	if len(raw) == 0 {
		return nil
	}
	formats := make([]domain.Format, 0, len(raw))
	for _, f := range raw {
		formats = append(formats, domain.Format{
			FormatID: f.FormatID,
			Ext:      f.Ext,
			VCodec:   f.VCodec,
			ACodec:   f.ACodec,
			Height:   f.Height,
			Width:    f.Width,
			Filesize: int64(f.Filesize),
		})
	}
	return formats
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
