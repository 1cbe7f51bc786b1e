package ui

import (
	"context"
	"errors"

	"github.com/yourusername/ydownloader/internal/app"
	"github.com/yourusername/ydownloader/internal/domain"
)

// CLI runs a single non-interactive download
type CLI struct {
	console    *Console
	downloader *app.Downloader
	notifier   Notifier
}

// NewCLI creates the non-interactive front-end; notifier may be nil
func NewCLI(console *Console, downloader *app.Downloader, notifier Notifier) *CLI {
	return &CLI{
		console:    console,
		downloader: downloader,
		notifier:   notifier,
	}
}

// DownloadWithProgress downloads url with cfg. Unless quiet, the metadata
// header and a live progress bar are printed first. Errors are returned
// unprinted so the caller decides the exit status.
func (c *CLI) DownloadWithProgress(ctx context.Context, url string, cfg domain.DownloadConfig, quiet bool) ([]string, error) {
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}

	if quiet {
		files, err := c.downloader.Download(ctx, url, &cfg)
		c.notify(url, "", cfg.OutputDir, files, err)
		return files, err
	}

	var info *domain.VideoInfo
	err := c.console.Spin("Fetching video info...", func() error {
		var err error
		info, err = c.downloader.FetchMetadata(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := c.console.Writer()
	PrintSummary(out, info)

	renderer := NewProgressRenderer(out, info.Title)
	c.downloader.AddObserver(renderer)
	defer c.downloader.ClearObservers()

	files, err := c.downloader.Download(ctx, url, &cfg)
	renderer.Close()
	c.notify(url, info.Title, cfg.OutputDir, files, err)
	if err != nil {
		return files, err
	}

	PrintCompletion(out, cfg.OutputDir, files)
	return files, nil
}

func (c *CLI) notify(url, title, outputDir string, files []string, err error) {
	if c.notifier == nil || errors.Is(err, domain.ErrUserInterrupt) {
		return
	}
	if err != nil {
		c.notifier.NotifyDownloadFailed(url, err)
		return
	}
	if title == "" {
		title = url
	}
	count, _ := summarizeFiles(files)
	c.notifier.NotifyDownloadCompleted(title, count, outputDir)
}
