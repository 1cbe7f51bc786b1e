package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "yt-dlp", config.Engine.Binary)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "stderr", config.Logging.OutputPath)

	dl := config.Download
	assert.NotEmpty(t, dl.OutputDir)
	assert.Equal(t, "%(title)s.%(ext)s", dl.FilenameTemplate)
	assert.Equal(t, "best", dl.Quality)
	assert.Equal(t, "best", dl.AudioQuality)
	assert.Equal(t, "mp4", dl.VideoFormat)
	assert.Equal(t, "mp3", dl.AudioFormat)
	assert.Equal(t, 3, dl.Retries)
	assert.True(t, dl.EmbedMetadata)
	assert.True(t, dl.Playlist)
	assert.True(t, dl.AutoSubtitles)
	assert.Equal(t, []string{"en"}, dl.SubtitleLangs)
	assert.False(t, dl.AudioOnly)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("YDL_TEST_DIR", "/srv/media")

	assert.Equal(t, filepath.Join(home, "Videos"), ExpandPath("~/Videos"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/srv/media/clips", ExpandPath("$YDL_TEST_DIR/clips"))
	assert.Equal(t, "/plain/path", ExpandPath("/plain/path"))
}
