package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yourusername/ydownloader/internal/app"
	"github.com/yourusername/ydownloader/internal/domain"
	"github.com/yourusername/ydownloader/internal/infrastructure"
	"github.com/yourusername/ydownloader/internal/ui"
	"github.com/yourusername/ydownloader/pkg/logger"
)

const examples = `  ydownloader https://youtube.com/watch?v=...          Download video
  ydownloader -a https://youtube.com/watch?v=...       Download audio only
  ydownloader -q 720p https://youtube.com/watch?v=...  Download in 720p
  ydownloader -i                                       Interactive mode
  ydownloader --subs https://youtube.com/watch?v=...   Download with subtitles`

// exitCode ends the process with a specific status after output was printed
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// options holds the raw flag values
type options struct {
	configPath string
	ytdlp      string
	notify     bool

	interactive bool
	audio       bool

	quality      string
	audioQuality string
	videoFormat  string
	audioFormat  string

	output   string
	filename string

	embedThumbnail bool
	noMetadata     bool

	subs       bool
	subsLang   string
	embedSubs  bool
	noAutoSubs bool

	noPlaylist    bool
	playlistStart int
	playlistEnd   int

	rateLimit string
	retries   int

	quiet   bool
	verbose bool
}

// ambientFlags do not count as download flags when deciding whether a
// bare invocation should start interactive mode
var ambientFlags = map[string]bool{
	"config": true,
	"ytdlp":  true,
	"notify": true,
}

// signalContext returns the context a command-line download runs under.
// It is cancelled by Ctrl-C or SIGTERM.
var signalContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ydownloader [url]",
		Short:         "A modern YouTube downloader with CLI and interactive mode",
		Long:          `Download YouTube videos, audio and playlists through yt-dlp, from the command line or an interactive prompt.`,
		Example:       examples,
		Version:       ui.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/ydownloader/config.yaml)")

	bindFlags(cmd.Flags(), opts)
	cmd.AddCommand(newConfigCmd(opts, stdout))

	return cmd
}

// bindFlags registers the download flags on f
func bindFlags(f *pflag.FlagSet, opts *options) {
	d := domain.DefaultDownloadConfig()

	f.StringVar(&opts.ytdlp, "ytdlp", "", "Path to the yt-dlp executable")
	f.BoolVar(&opts.notify, "notify", false, "Send a desktop notification when the download ends")

	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Run in interactive mode")
	f.BoolVarP(&opts.audio, "audio", "a", false, "Download audio only")

	f.StringVarP(&opts.quality, "quality", "q", d.Quality, "Video quality (best, worst, 720p, 1080p, etc)")
	f.StringVar(&opts.audioQuality, "audio-quality", d.AudioQuality, "Audio quality (best, worst, 192k, 320k, etc)")
	f.StringVarP(&opts.videoFormat, "format", "f", d.VideoFormat, "Video format (mp4, mkv, webm)")
	f.StringVar(&opts.audioFormat, "audio-format", d.AudioFormat, "Audio format when using --audio (mp3, m4a, opus, flac, wav)")

	f.StringVarP(&opts.output, "output", "o", d.OutputDir, "Output directory")
	f.StringVar(&opts.filename, "filename", d.FilenameTemplate, "Filename template")

	f.BoolVar(&opts.embedThumbnail, "embed-thumbnail", false, "Embed thumbnail in the file")
	f.BoolVar(&opts.noMetadata, "no-metadata", false, "Don't embed metadata")

	f.BoolVar(&opts.subs, "subs", false, "Download subtitles")
	f.StringVar(&opts.subsLang, "subs-lang", "en", "Subtitle language(s), comma-separated")
	f.BoolVar(&opts.embedSubs, "embed-subs", false, "Embed subtitles in the video")
	f.BoolVar(&opts.noAutoSubs, "no-auto-subs", false, "Don't include auto-generated subtitles")

	f.BoolVar(&opts.noPlaylist, "no-playlist", false, "Download only the video, not the playlist")
	f.IntVar(&opts.playlistStart, "playlist-start", 0, "Start playlist at video N")
	f.IntVar(&opts.playlistEnd, "playlist-end", 0, "End playlist at video N")

	f.StringVarP(&opts.rateLimit, "rate-limit", "r", "", "Download rate limit (e.g., 1M, 500K)")
	f.IntVar(&opts.retries, "retries", d.Retries, "Number of retries")

	f.BoolVar(&opts.quiet, "quiet", false, "Suppress output (only errors)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
}

func runRoot(cmd *cobra.Command, args []string, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	interactive := opts.interactive || (len(args) == 0 && !downloadFlagsChanged(cmd))
	if !interactive && len(args) == 0 {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitCode(1)
	}

	config, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.ytdlp != "" {
		config.Engine.Binary = domain.ExpandPath(opts.ytdlp)
	}
	if opts.notify {
		config.Notification.Enabled = true
	}

	download := config.Download.Clone()
	if !interactive {
		download, err = buildDownloadConfig(cmd, opts, config.Download)
		if err != nil {
			return err
		}
	}

	log, err := logger.New(logger.Config{
		Level:      logger.LevelFor(config.Logging.Level, download.Verbose, download.Quiet),
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
		Writer:     logWriter(config.Logging.OutputPath, stderr),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	engine := infrastructure.NewYTDLPEngine(&config.Engine, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)
	downloader := app.NewDownloader(engine, &download, log)
	console := ui.NewConsole(stdin, stdout)

	if interactive {
		session := ui.NewInteractive(console, downloader, download, notifier, log)
		return session.Run(context.Background())
	}

	if _, err := exec.LookPath(engine.Binary()); err != nil {
		return fmt.Errorf("yt-dlp executable %q not found: install yt-dlp or pass --ytdlp", engine.Binary())
	}

	ctx, stop := signalContext()
	defer stop()

	url := args[0]
	cli := ui.NewCLI(console, downloader, notifier)
	_, err = cli.DownloadWithProgress(ctx, url, download, download.Quiet)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserInterrupt):
		fmt.Fprintln(stderr, "\nDownload cancelled.")
		return exitCode(130)
	default:
		if download.Verbose {
			log.Error("Download failed", zap.String("url", url), zap.Error(err))
		}
		return err
	}
}

// downloadFlagsChanged reports whether any flag other than the ambient ones was given
func downloadFlagsChanged(cmd *cobra.Command) bool {
	changed := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if !ambientFlags[f.Name] {
			changed = true
		}
	})
	return changed
}

// buildDownloadConfig layers explicitly given flags over base and validates
// the result
func buildDownloadConfig(cmd *cobra.Command, opts *options, base domain.DownloadConfig) (domain.DownloadConfig, error) {
	cfg := base.Clone()
	flags := cmd.Flags()

	if flags.Changed("audio") {
		cfg.AudioOnly = opts.audio
	}
	if flags.Changed("quality") {
		cfg.Quality = opts.quality
	}
	if flags.Changed("audio-quality") {
		cfg.AudioQuality = opts.audioQuality
	}
	if flags.Changed("format") {
		cfg.VideoFormat = opts.videoFormat
	}
	if flags.Changed("audio-format") {
		cfg.AudioFormat = opts.audioFormat
	}
	if flags.Changed("output") {
		cfg.OutputDir = opts.output
	}
	if flags.Changed("filename") {
		cfg.FilenameTemplate = opts.filename
	}
	if flags.Changed("embed-thumbnail") {
		cfg.EmbedThumbnail = opts.embedThumbnail
	}
	if flags.Changed("no-metadata") {
		cfg.EmbedMetadata = !opts.noMetadata
	}
	if flags.Changed("subs") {
		cfg.DownloadSubtitles = opts.subs
	}
	if flags.Changed("subs-lang") {
		cfg.SubtitleLangs = domain.ParseSubtitleLangs(opts.subsLang)
	}
	if flags.Changed("embed-subs") {
		cfg.EmbedSubtitles = opts.embedSubs
	}
	if flags.Changed("no-auto-subs") {
		cfg.AutoSubtitles = !opts.noAutoSubs
	}
	if flags.Changed("no-playlist") {
		cfg.Playlist = !opts.noPlaylist
	}
	if flags.Changed("playlist-start") {
		cfg.PlaylistStart = opts.playlistStart
	}
	if flags.Changed("playlist-end") {
		cfg.PlaylistEnd = opts.playlistEnd
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = opts.rateLimit
	}
	if flags.Changed("retries") {
		cfg.Retries = opts.retries
	}
	if flags.Changed("quiet") {
		cfg.Quiet = opts.quiet
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	// Embedding subtitles needs them downloaded first
	cfg.DownloadSubtitles = cfg.DownloadSubtitles || cfg.EmbedSubtitles

	cfg.OutputDir = domain.ExpandPath(cfg.OutputDir)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func logWriter(outputPath string, stderr io.Writer) io.Writer {
	if outputPath == "" || outputPath == "stderr" {
		return stderr
	}
	return nil
}
