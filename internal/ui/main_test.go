package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/yourusername/ydownloader/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakeEngine implements domain.Engine. Download writes one file of
// fileSize bytes into the output directory and reports it as finished.
// With cancel set, Download instead cancels the caller's context and
// fails the way an interrupted engine run does.
type fakeEngine struct {
	info        map[string]interface{}
	infoErr     error
	downloadErr error
	cancel      context.CancelFunc
	fileName    string
	fileSize    int

	opts      domain.EngineOptions
	downloads int
}

func (f *fakeEngine) ExtractInfo(ctx context.Context, url string, opts domain.InfoOptions) (map[string]interface{}, error) {
	return f.info, f.infoErr
}

func (f *fakeEngine) Download(ctx context.Context, urls []string, opts domain.EngineOptions, hooks []domain.EngineHook) error {
	f.downloads++
	f.opts = opts
	if f.cancel != nil {
		f.cancel()
		<-ctx.Done()
		return ctx.Err()
	}
	if f.downloadErr != nil {
		for _, hook := range hooks {
			hook(domain.EngineProgress{Status: domain.EngineStatusError, Error: f.downloadErr.Error()})
		}
		return f.downloadErr
	}

	name := f.fileName
	if name == "" {
		name = "video.mp4"
	}
	path := filepath.Join(filepath.Dir(opts.OutputTemplate), name)
	if err := os.WriteFile(path, make([]byte, f.fileSize), 0644); err != nil {
		return err
	}

	size := int64(f.fileSize)
	events := []domain.EngineProgress{
		{Status: domain.EngineStatusDownloading, DownloadedBytes: size / 2, TotalBytes: size},
		{Status: domain.EngineStatusDownloading, DownloadedBytes: size, TotalBytes: size},
		{Status: domain.EngineStatusFinished, Filename: path},
	}
	for _, e := range events {
		for _, hook := range hooks {
			hook(e)
		}
	}
	return nil
}

type recordingNotifier struct {
	completed []string
	failed    []string
}

func (n *recordingNotifier) NotifyDownloadCompleted(title string, files int, outputDir string) {
	n.completed = append(n.completed, title)
}

func (n *recordingNotifier) NotifyDownloadFailed(url string, err error) {
	n.failed = append(n.failed, url)
}

func videoPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":    "Test Video",
		"uploader": "Test Channel",
		"duration": float64(125),
		"formats": []interface{}{
			map[string]interface{}{"vcodec": "avc1", "height": float64(1080)},
			map[string]interface{}{"vcodec": "avc1", "height": float64(720)},
			map[string]interface{}{"vcodec": "none", "acodec": "opus"},
		},
	}
}
