package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/ydownloader/internal/domain"
)

// Downloader orchestrates metadata queries and downloads against the engine
type Downloader struct {
	engine    domain.Engine
	config    domain.DownloadConfig
	logger    *zap.Logger
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewDownloader creates a new downloader. A nil cfg uses the defaults.
func NewDownloader(engine domain.Engine, cfg *domain.DownloadConfig, logger *zap.Logger) *Downloader {
	config := domain.DefaultDownloadConfig()
	if cfg != nil {
		config = cfg.Clone()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		engine: engine,
		config: config,
		logger: logger,
	}
}

// Config returns a copy of the active configuration
func (d *Downloader) Config() domain.DownloadConfig {
	return d.config.Clone()
}

// AddObserver registers an observer for progress events of later downloads
func (d *Downloader) AddObserver(o ProgressObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// ClearObservers removes all registered observers
func (d *Downloader) ClearObservers() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = nil
}

func (d *Downloader) snapshotObservers() []ProgressObserver {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]ProgressObserver(nil), d.observers...)
}

// FetchMetadata queries the engine for url without downloading anything
func (d *Downloader) FetchMetadata(ctx context.Context, url string) (*domain.VideoInfo, error) {
	d.logger.Debug("Fetching metadata", zap.String("url", url))

	payload, err := d.engine.ExtractInfo(ctx, url, domain.InfoOptions{
		FlatPlaylist: true,
		Quiet:        true,
		NoWarnings:   true,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, domain.ErrUserInterrupt
		}
		d.logger.Debug("Metadata fetch failed", zap.String("url", url), zap.Error(err))
		return nil, &domain.MetadataFetchError{URL: url, Err: err}
	}

	info, err := NormalizeInfo(url, payload)
	if err != nil {
		return nil, &domain.MetadataFetchError{URL: url, Err: err}
	}

	d.logger.Debug("Metadata fetched",
		zap.String("url", url),
		zap.String("title", info.Title),
		zap.Bool("playlist", info.IsPlaylist))
	return info, nil
}

// Download fetches url with cfg (the active configuration when nil) and
// returns the path of every file the engine finished.
func (d *Downloader) Download(ctx context.Context, url string, cfg *domain.DownloadConfig) ([]string, error) {
	run := d.config.Clone()
	if cfg != nil {
		run = cfg.Clone()
	}

	if err := run.Resolve(); err != nil {
		return nil, err
	}
	opts, err := run.EngineOptions()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger := d.logger.With(
		zap.String("download_id", uuid.NewString()),
		zap.String("url", url))

	logger.Info("Starting download",
		zap.String("output_dir", run.OutputDir),
		zap.String("format", opts.Format),
		zap.Bool("audio_only", run.AudioOnly))

	var files []string
	trackFiles := func(p domain.EngineProgress) {
		if p.Status == domain.EngineStatusFinished && p.Filename != "" {
			files = append(files, p.Filename)
		}
	}
	hooks := []domain.EngineHook{trackFiles, NewProgressHook(d.snapshotObservers()...)}

	if err := d.engine.Download(ctx, []string{url}, opts, hooks); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("Download cancelled", zap.Int("files", len(files)))
			return files, domain.ErrUserInterrupt
		}
		logger.Debug("Download failed", zap.Error(err))
		return files, &domain.DownloadError{URL: url, Err: err}
	}

	logger.Info("Download completed", zap.Strings("files", files))
	return files, nil
}

// DownloadAudio downloads url as audio only using the active configuration
func (d *Downloader) DownloadAudio(ctx context.Context, url string) ([]string, error) {
	cfg := d.config.Clone()
	cfg.AudioOnly = true
	return d.Download(ctx, url, &cfg)
}

// DownloadVideo downloads url as video using the active configuration
func (d *Downloader) DownloadVideo(ctx context.Context, url string) ([]string, error) {
	cfg := d.config.Clone()
	cfg.AudioOnly = false
	return d.Download(ctx, url, &cfg)
}

var youtubeHosts = []string{
	"youtube.com",
	"youtu.be",
	"youtube.com/shorts",
	"music.youtube.com",
}

// IsValidURL reports whether url looks like a YouTube address
func IsValidURL(url string) bool {
	lower := strings.ToLower(url)
	for _, host := range youtubeHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// IsPlaylistURL reports whether url refers to a playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, "list=") || strings.Contains(url, "/playlist")
}
