package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ydownloader/internal/app"
	"github.com/yourusername/ydownloader/internal/domain"
)

func newTestCLI(t *testing.T, engine *fakeEngine) (*CLI, *bytes.Buffer, *recordingNotifier, domain.DownloadConfig) {
	t.Helper()
	cfg := domain.DefaultDownloadConfig()
	cfg.OutputDir = t.TempDir()

	var out bytes.Buffer
	notifier := &recordingNotifier{}
	downloader := app.NewDownloader(engine, &cfg, nil)
	return NewCLI(NewConsole(strings.NewReader(""), &out), downloader, notifier), &out, notifier, cfg
}

func TestCLI_DownloadWithProgress(t *testing.T) {
	engine := &fakeEngine{info: videoPayload(), fileSize: 4096}
	cli, out, notifier, cfg := newTestCLI(t, engine)

	files, err := cli.DownloadWithProgress(context.Background(), "https://youtu.be/abc", cfg, false)
	require.NoError(t, err)
	require.Len(t, files, 1)

	s := out.String()
	assert.Contains(t, s, "Title: Test Video")
	assert.Contains(t, s, "Channel: Test Channel")
	assert.Contains(t, s, "Duration: 2:05")
	assert.Contains(t, s, "Download complete!")
	assert.Contains(t, s, "Files: 1 (4.0 KiB)")
	assert.Equal(t, []string{"Test Video"}, notifier.completed)
}

func TestCLI_Playlist(t *testing.T) {
	engine := &fakeEngine{info: map[string]interface{}{
		"_type":   "playlist",
		"title":   "Mix",
		"entries": []interface{}{map[string]interface{}{"title": "One"}, map[string]interface{}{"title": "Two"}},
	}}
	cli, out, _, cfg := newTestCLI(t, engine)

	_, err := cli.DownloadWithProgress(context.Background(), "https://www.youtube.com/playlist?list=PL1", cfg, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Playlist: Mix (2 videos)")
}

func TestCLI_QuietPrintsNothing(t *testing.T) {
	engine := &fakeEngine{infoErr: errors.New("must not be called")}
	cli, out, _, cfg := newTestCLI(t, engine)

	files, err := cli.DownloadWithProgress(context.Background(), "https://youtu.be/abc", cfg, true)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Empty(t, out.String())
}

func TestCLI_MetadataFailureSkipsDownload(t *testing.T) {
	engine := &fakeEngine{infoErr: errors.New("ERROR: [youtube] abc: Private video")}
	cli, _, _, cfg := newTestCLI(t, engine)

	_, err := cli.DownloadWithProgress(context.Background(), "https://youtu.be/abc", cfg, false)
	var fetchErr *domain.MetadataFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 0, engine.downloads)
}

func TestCLI_DownloadFailure(t *testing.T) {
	engine := &fakeEngine{info: videoPayload(), downloadErr: errors.New("ERROR: boom")}
	cli, out, notifier, cfg := newTestCLI(t, engine)

	_, err := cli.DownloadWithProgress(context.Background(), "https://youtu.be/abc", cfg, false)
	var dlErr *domain.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, "ERROR: boom", err.Error())
	assert.NotContains(t, out.String(), "Download complete!")
	assert.Equal(t, []string{"https://youtu.be/abc"}, notifier.failed)
}

func TestCLI_CancelledDownload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := &fakeEngine{info: videoPayload(), cancel: cancel}
	cli, out, notifier, cfg := newTestCLI(t, engine)

	_, err := cli.DownloadWithProgress(ctx, "https://youtu.be/abc", cfg, false)
	require.ErrorIs(t, err, domain.ErrUserInterrupt)
	assert.NotContains(t, out.String(), "Download complete!")
	assert.Empty(t, notifier.failed)
	assert.Empty(t, notifier.completed)
}
