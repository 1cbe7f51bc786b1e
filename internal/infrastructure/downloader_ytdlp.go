package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"

	"github.com/yourusername/ydownloader/internal/domain"
)

// Prefixes of the machine-readable lines we ask yt-dlp to print
const (
	progressPrefix = "[ydl-progress] "
	filePrefix     = "[ydl-file] "
)

// maxStderrLines bounds how much diagnostic output is kept per run
const maxStderrLines = 50

// YTDLPEngine implements domain.Engine by running the yt-dlp executable
type YTDLPEngine struct {
	binary string
	logger *zap.Logger
}

// NewYTDLPEngine creates a new yt-dlp backed engine
func NewYTDLPEngine(config *domain.EngineConfig, logger *zap.Logger) *YTDLPEngine {
	binary := "yt-dlp"
	if config != nil && config.Binary != "" {
		binary = config.Binary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPEngine{
		binary: binary,
		logger: logger,
	}
}

// Binary returns the executable this engine runs
func (e *YTDLPEngine) Binary() string {
	return e.binary
}

// ExtractInfo runs yt-dlp in metadata-only mode and returns its JSON payload
func (e *YTDLPEngine) ExtractInfo(ctx context.Context, url string, opts domain.InfoOptions) (map[string]interface{}, error) {
	args := BuildInfoArgs(url, opts)
	e.logCommand(args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setProcessGroup(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.New(errorMessage(err, splitLines(stderr.String())))
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 || string(out) == "null" {
		return nil, domain.ErrNoInfo
	}

	var info map[string]interface{}
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if info == nil {
		return nil, domain.ErrNoInfo
	}
	return info, nil
}

// Download runs yt-dlp for urls and feeds every progress line to hooks.
// Hooks run on the calling goroutine, one event at a time.
func (e *YTDLPEngine) Download(ctx context.Context, urls []string, opts domain.EngineOptions, hooks []domain.EngineHook) error {
	args := BuildDownloadArgs(urls, opts)
	e.logCommand(args)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", e.binary, err)
	}

	stderrDone := make(chan []string, 1)
	go func() {
		stderrDone <- e.collectStderr(stderr)
	}()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if progress, ok := ParseProgressLine(line); ok {
			dispatch(hooks, progress)
			continue
		}
		// The final file after merging and post-processing
		if idx := strings.Index(line, filePrefix); idx >= 0 {
			dispatch(hooks, domain.EngineProgress{
				Status:   domain.EngineStatusFinished,
				Filename: strings.TrimSpace(line[idx+len(filePrefix):]),
			})
			continue
		}
		if line != "" {
			e.logger.Debug("yt-dlp output", zap.String("line", line))
		}
	}
	// Keep the pipe drained past an oversized line so yt-dlp never blocks
	if err := scanner.Err(); err != nil {
		e.logger.Warn("Failed to read yt-dlp output", zap.Error(err))
	}
	_, _ = io.Copy(io.Discard, stdout)

	stderrLines := <-stderrDone
	err = cmd.Wait()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := errorMessage(err, stderrLines)
		dispatch(hooks, domain.EngineProgress{Status: domain.EngineStatusError, Error: msg})
		return errors.New(msg)
	}

	e.logger.Debug("yt-dlp finished", zap.Strings("urls", urls))
	return nil
}

// collectStderr logs yt-dlp diagnostics and keeps the most recent lines
func (e *YTDLPEngine) collectStderr(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		e.logger.Debug("yt-dlp stderr", zap.String("line", line))
		lines = append(lines, line)
		if len(lines) > maxStderrLines {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		e.logger.Warn("Failed to read yt-dlp diagnostics", zap.Error(err))
	}
	_, _ = io.Copy(io.Discard, r)
	return lines
}

func (e *YTDLPEngine) logCommand(args []string) {
	e.logger.Debug("running yt-dlp",
		zap.String("command", shellescape.QuoteCommand(append([]string{e.binary}, args...))))
}

// BuildInfoArgs builds the yt-dlp arguments for a metadata-only query
func BuildInfoArgs(url string, opts domain.InfoOptions) []string {
	args := []string{"--dump-single-json"}
	if opts.FlatPlaylist {
		args = append(args, "--flat-playlist")
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if opts.NoWarnings {
		args = append(args, "--no-warnings")
	}
	return append(args, "--", url)
}

// BuildDownloadArgs translates the declarative option set into yt-dlp flags
func BuildDownloadArgs(urls []string, opts domain.EngineOptions) []string {
	args := []string{
		"--newline",
		"--progress",
		"--progress-template", "download:" + progressPrefix + "%(progress)j",
		"--print", "after_move:" + filePrefix + "%(filepath)s",
		"--no-simulate",
		"-o", opts.OutputTemplate,
	}

	if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	if opts.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", opts.MergeOutputFormat)
	}

	if opts.WriteThumbnail {
		args = append(args, "--write-thumbnail")
	}
	if opts.WriteSubtitles {
		args = append(args, "--write-subs")
		if opts.WriteAutoSubtitles {
			args = append(args, "--write-auto-subs")
		}
		if len(opts.SubtitleLangs) > 0 {
			args = append(args, "--sub-langs", strings.Join(opts.SubtitleLangs, ","))
		}
	}

	for _, pp := range opts.PostProcessors {
		switch pp.Key {
		case domain.PostProcessorExtractAudio:
			args = append(args, "-x")
			if pp.PreferredCodec != "" {
				args = append(args, "--audio-format", pp.PreferredCodec)
			}
			if pp.PreferredQuality != "" {
				args = append(args, "--audio-quality", pp.PreferredQuality)
			}
		case domain.PostProcessorMetadata:
			args = append(args, "--embed-metadata")
		case domain.PostProcessorEmbedThumb:
			args = append(args, "--embed-thumbnail")
		case domain.PostProcessorEmbedSubtitle:
			args = append(args, "--embed-subs")
		}
	}

	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	} else {
		args = append(args, "--yes-playlist")
		if opts.PlaylistStart > 0 {
			args = append(args, "--playlist-start", strconv.Itoa(opts.PlaylistStart))
		}
		if opts.PlaylistEnd > 0 {
			args = append(args, "--playlist-end", strconv.Itoa(opts.PlaylistEnd))
		}
	}

	if opts.RateLimit > 0 {
		args = append(args, "--limit-rate", strconv.FormatInt(opts.RateLimit, 10))
	}
	args = append(args, "--retries", strconv.Itoa(opts.Retries))

	if opts.IgnoreErrors {
		args = append(args, "--ignore-errors")
	} else {
		args = append(args, "--abort-on-error")
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if opts.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}

	args = append(args, "--")
	return append(args, urls...)
}

// progressLine mirrors the progress dictionary yt-dlp prints as JSON
type progressLine struct {
	Status             string  `json:"status"`
	Filename           string  `json:"filename"`
	DownloadedBytes    float64 `json:"downloaded_bytes"`
	TotalBytes         float64 `json:"total_bytes"`
	TotalBytesEstimate float64 `json:"total_bytes_estimate"`
	Speed              float64 `json:"speed"`
	ETA                float64 `json:"eta"`
}

// ParseProgressLine decodes one machine-readable progress line
func ParseProgressLine(line string) (domain.EngineProgress, bool) {
	idx := strings.Index(line, progressPrefix)
	if idx < 0 {
		return domain.EngineProgress{}, false
	}

	var p progressLine
	if err := json.Unmarshal([]byte(line[idx+len(progressPrefix):]), &p); err != nil {
		return domain.EngineProgress{}, false
	}
	if p.Status == "" {
		return domain.EngineProgress{}, false
	}

	return domain.EngineProgress{
		Status:             p.Status,
		Filename:           p.Filename,
		DownloadedBytes:    int64(p.DownloadedBytes),
		TotalBytes:         int64(p.TotalBytes),
		TotalBytesEstimate: int64(p.TotalBytesEstimate),
		Speed:              p.Speed,
		ETA:                int64(p.ETA),
	}, true
}

// errorMessage picks the engine's own error text, falling back to the exit status
func errorMessage(err error, stderrLines []string) string {
	for i := len(stderrLines) - 1; i >= 0; i-- {
		if strings.HasPrefix(stderrLines[i], "ERROR:") {
			return stderrLines[i]
		}
	}

	msg := fmt.Sprintf("yt-dlp failed: %v", err)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg = fmt.Sprintf("yt-dlp exited with status %d", exitErr.ExitCode())
	}
	if n := len(stderrLines); n > 0 {
		msg += ": " + stderrLines[n-1]
	}
	return msg
}

func dispatch(hooks []domain.EngineHook, progress domain.EngineProgress) {
	for _, hook := range hooks {
		if hook != nil {
			hook(progress)
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
