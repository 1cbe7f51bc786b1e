package ui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ydownloader/internal/app"
	"github.com/yourusername/ydownloader/internal/domain"
)

// Version is shown in the interactive banner and by --version
const Version = "2.0.0"

var (
	downloadTypes = []string{"Video (highest quality)", "Video (select quality)", "Audio only"}
	audioChoices  = []string{"mp3", "m4a", "opus", "flac"}
)

const (
	typeBestVideo = iota
	typeSelectQuality
	typeAudio
)

// Notifier announces finished downloads outside the terminal
type Notifier interface {
	NotifyDownloadCompleted(title string, files int, outputDir string)
	NotifyDownloadFailed(url string, err error)
}

// Interactive runs the prompt-driven download loop
type Interactive struct {
	console    *Console
	downloader *app.Downloader
	base       domain.DownloadConfig
	notifier   Notifier
	logger     *zap.Logger
}

// NewInteractive creates the interactive session. base seeds every
// download's configuration; notifier may be nil.
func NewInteractive(console *Console, downloader *app.Downloader, base domain.DownloadConfig, notifier Notifier, logger *zap.Logger) *Interactive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactive{
		console:    console,
		downloader: downloader,
		base:       base.Clone(),
		notifier:   notifier,
		logger:     logger,
	}
}

// Run loops until the user quits or input ends
func (i *Interactive) Run(ctx context.Context) error {
	i.printHeader()

	for {
		url, err := i.askURL()
		if err != nil {
			return i.finish(err)
		}

		info, err := i.fetchInfo(ctx, url)
		if err != nil {
			if errors.Is(err, domain.ErrUserInterrupt) {
				i.console.Warn("Cancelled.")
			} else {
				i.console.Error("Error fetching video info: %v", err)
			}
			continue
		}

		PrintVideoInfo(i.console.Writer(), info)

		cfg, err := i.buildConfig(info)
		if err != nil {
			return i.finish(err)
		}

		i.console.Println()
		start, err := i.console.Confirm("Start download?", true)
		if err != nil {
			return i.finish(err)
		}
		if !start {
			i.console.Dim("Download cancelled.")
			continue
		}

		i.runDownload(ctx, url, info, cfg)

		i.console.Println()
		again, err := i.console.Confirm("Download another?", true)
		if err != nil || !again {
			return i.finish(err)
		}
	}
}

func (i *Interactive) printHeader() {
	i.console.Println()
	i.console.Printf("%s %s\n", cyan("YDownloader"), faint("v"+Version))
	i.console.Dim("A modern YouTube downloader")
	i.console.Println()
}

// finish ends the session; running out of input counts as quitting
func (i *Interactive) finish(err error) error {
	i.console.Println()
	i.console.Dim("Goodbye!")
	i.console.Println()
	if err != nil && !errors.Is(err, ErrInputClosed) && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// errQuit signals that the user asked to leave
var errQuit = errors.New("quit")

func (i *Interactive) askURL() (string, error) {
	for {
		i.console.Printf("%s %s\n", cyan("Enter YouTube URL"), faint("(or 'quit' to exit)"))
		line, err := i.console.ReadLine("> ")
		if err != nil {
			return "", err
		}

		url := strings.TrimSpace(line)
		switch strings.ToLower(url) {
		case "quit", "exit", "q":
			return "", errQuit
		case "":
			i.console.Warn("Please enter a URL.")
			continue
		}

		if !app.IsValidURL(url) {
			i.console.Error("Invalid YouTube URL. Please try again.")
			continue
		}
		return url, nil
	}
}

func (i *Interactive) fetchInfo(ctx context.Context, url string) (*domain.VideoInfo, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var info *domain.VideoInfo
	err := i.console.Spin("Fetching video info...", func() error {
		var err error
		info, err = i.downloader.FetchMetadata(ctx, url)
		return err
	})
	return info, err
}

// buildConfig walks the download prompts and returns the resulting configuration
func (i *Interactive) buildConfig(info *domain.VideoInfo) (domain.DownloadConfig, error) {
	cfg := i.base.Clone()

	choice, err := i.console.Select("What would you like to download?", downloadTypes, typeBestVideo)
	if err != nil {
		return cfg, err
	}

	switch choice {
	case typeBestVideo:
		cfg.AudioOnly = false
		cfg.Quality = "best"

	case typeSelectQuality:
		cfg.AudioOnly = false
		qualities := info.AvailableQualities()
		if len(qualities) == 0 {
			i.console.Warn("No quality info available, using best.")
			cfg.Quality = "best"
			break
		}
		idx, err := i.console.Select("Select video quality:", qualities, 0)
		if err != nil {
			return cfg, err
		}
		cfg.Quality = qualities[idx]

	case typeAudio:
		cfg.AudioOnly = true
		def := 0
		for n, format := range audioChoices {
			if format == cfg.AudioFormat {
				def = n
			}
		}
		idx, err := i.console.Select("Select audio format:", audioChoices, def)
		if err != nil {
			return cfg, err
		}
		cfg.AudioFormat = audioChoices[idx]
	}

	subs, err := i.console.Confirm("Download subtitles?", false)
	if err != nil {
		return cfg, err
	}
	cfg.DownloadSubtitles = subs
	cfg.EmbedSubtitles = false
	if subs {
		embed, err := i.console.Confirm("Embed subtitles in video?", true)
		if err != nil {
			return cfg, err
		}
		cfg.EmbedSubtitles = embed
		if len(cfg.SubtitleLangs) == 0 {
			cfg.SubtitleLangs = []string{"en"}
		}
	}

	thumb, err := i.console.Confirm("Embed thumbnail?", cfg.EmbedThumbnail)
	if err != nil {
		return cfg, err
	}
	cfg.EmbedThumbnail = thumb

	dir, err := i.console.Prompt("Output directory", cfg.OutputDir)
	if err != nil {
		return cfg, err
	}
	cfg.OutputDir = domain.ExpandPath(dir)

	return cfg, nil
}

func (i *Interactive) runDownload(ctx context.Context, url string, info *domain.VideoInfo, cfg domain.DownloadConfig) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	renderer := NewProgressRenderer(i.console.Writer(), info.Title)
	i.downloader.ClearObservers()
	i.downloader.AddObserver(renderer)
	defer i.downloader.ClearObservers()

	i.console.Println()
	if err := cfg.Resolve(); err != nil {
		i.console.Error("Download failed: %v", err)
		return
	}

	files, err := i.downloader.Download(ctx, url, &cfg)
	renderer.Close()

	switch {
	case err == nil:
		PrintCompletion(i.console.Writer(), cfg.OutputDir, files)
		if i.notifier != nil {
			count, _ := summarizeFiles(files)
			i.notifier.NotifyDownloadCompleted(info.Title, count, cfg.OutputDir)
		}
	case errors.Is(err, domain.ErrUserInterrupt):
		i.console.Println()
		i.console.Warn("Download cancelled.")
	default:
		i.logger.Debug("Interactive download failed", zap.String("url", url), zap.Error(err))
		i.console.Println()
		i.console.Error("Download failed: %v", err)
		if i.notifier != nil {
			i.notifier.NotifyDownloadFailed(url, err)
		}
	}
}
