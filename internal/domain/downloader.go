package domain

import "context"

// Engine is the external media-extraction engine. Everything behind it
// (stream selection, muxing, transcoding) is opaque to this program.
type Engine interface {
	// ExtractInfo returns the engine's raw metadata payload for url.
	ExtractInfo(ctx context.Context, url string, opts InfoOptions) (map[string]interface{}, error)

	// Download fetches urls to disk, invoking every hook synchronously for
	// each progress event until the call returns.
	Download(ctx context.Context, urls []string, opts EngineOptions, hooks []EngineHook) error
}

// InfoOptions controls a metadata-only query
type InfoOptions struct {
	FlatPlaylist bool
	Quiet        bool
	NoWarnings   bool
}

// Post-processor keys understood by the engine
const (
	PostProcessorExtractAudio  = "FFmpegExtractAudio"
	PostProcessorMetadata      = "FFmpegMetadata"
	PostProcessorEmbedThumb    = "EmbedThumbnail"
	PostProcessorEmbedSubtitle = "FFmpegEmbedSubtitle"
)

// PostProcessor is a named post-download transformation step
type PostProcessor struct {
	Key              string `json:"key"`
	PreferredCodec   string `json:"preferredcodec,omitempty"`
	PreferredQuality string `json:"preferredquality,omitempty"`
	AddMetadata      bool   `json:"add_metadata,omitempty"`
}

// EngineOptions is the engine's declarative download option set
type EngineOptions struct {
	OutputTemplate    string          `json:"outtmpl"`
	Format            string          `json:"format"`
	MergeOutputFormat string          `json:"merge_output_format,omitempty"`
	PostProcessors    []PostProcessor `json:"postprocessors,omitempty"`

	WriteThumbnail     bool     `json:"writethumbnail,omitempty"`
	WriteSubtitles     bool     `json:"writesubtitles,omitempty"`
	WriteAutoSubtitles bool     `json:"writeautomaticsub,omitempty"`
	SubtitleLangs      []string `json:"subtitleslangs,omitempty"`

	NoPlaylist    bool `json:"noplaylist,omitempty"`
	PlaylistStart int  `json:"playliststart,omitempty"`
	PlaylistEnd   int  `json:"playlistend,omitempty"`

	RateLimit    int64 `json:"ratelimit,omitempty"` // bytes per second, 0 = unlimited
	Retries      int   `json:"retries"`
	IgnoreErrors bool  `json:"ignoreerrors"`

	Quiet      bool `json:"quiet"`
	NoWarnings bool `json:"no_warnings"`
	Verbose    bool `json:"verbose"`
}

// HasPostProcessor reports whether a post-processor with key is scheduled
func (o EngineOptions) HasPostProcessor(key string) bool {
	for _, pp := range o.PostProcessors {
		if pp.Key == key {
			return true
		}
	}
	return false
}

// Engine progress statuses
const (
	EngineStatusDownloading = "downloading"
	EngineStatusFinished    = "finished"
	EngineStatusError       = "error"
)

// EngineProgress is one raw progress report from the engine. Counters the
// engine did not report are zero.
type EngineProgress struct {
	Status             string
	Filename           string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	Speed              float64 // bytes per second
	ETA                int64   // seconds
	Error              string
}

// EngineHook receives raw progress reports
type EngineHook func(EngineProgress)
