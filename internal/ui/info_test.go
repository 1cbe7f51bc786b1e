package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ydownloader/internal/domain"
)

func TestPrintVideoInfo_Video(t *testing.T) {
	views := int64(1234567)
	info := &domain.VideoInfo{
		Title:      "Test Video",
		Channel:    "Test Channel",
		Duration:   3725,
		ViewCount:  &views,
		UploadDate: "20240102",
		Formats: []domain.Format{
			{VCodec: "avc1", Height: 720},
			{VCodec: "avc1", Height: 1080},
			{VCodec: "none", ACodec: "mp4a"},
		},
	}

	var out bytes.Buffer
	PrintVideoInfo(&out, info)

	s := out.String()
	assert.Contains(t, s, "Test Video")
	assert.Contains(t, s, "Test Channel")
	assert.Contains(t, s, "1:02:05")
	assert.Contains(t, s, "1,234,567")
	assert.Contains(t, s, "2024-01-02")
	assert.Contains(t, s, "1080p, 720p")
}

func TestPrintVideoInfo_Playlist(t *testing.T) {
	info := &domain.VideoInfo{
		Title:         "First",
		IsPlaylist:    true,
		PlaylistTitle: "My Mix",
		PlaylistCount: 12,
	}

	var out bytes.Buffer
	PrintVideoInfo(&out, info)

	assert.Contains(t, out.String(), "My Mix")
	assert.Contains(t, out.String(), "12")
	assert.NotContains(t, out.String(), "Duration")
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, &domain.VideoInfo{Title: "T", Channel: "C", Duration: 61})
	assert.Contains(t, out.String(), "Title: T")
	assert.Contains(t, out.String(), "Channel: C")
	assert.Contains(t, out.String(), "Duration: 1:01")

	out.Reset()
	PrintSummary(&out, &domain.VideoInfo{IsPlaylist: true, PlaylistTitle: "P", PlaylistCount: 3})
	assert.Contains(t, out.String(), "Playlist: P")
	assert.Contains(t, out.String(), "(3 videos)")
}

func TestPrintCompletion(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(file, make([]byte, 2048), 0644))

	var out bytes.Buffer
	PrintCompletion(&out, dir, []string{file, file, filepath.Join(dir, "merged-away.f137.mp4")})

	assert.Contains(t, out.String(), "Download complete!")
	assert.Contains(t, out.String(), "Saved to: "+dir)
	assert.Contains(t, out.String(), "Files: 1 (2.0 KiB)")
}

func TestFormatUploadDate(t *testing.T) {
	assert.Equal(t, "2023-12-31", formatUploadDate("20231231"))
	assert.Equal(t, "", formatUploadDate(""))
	assert.Equal(t, "soon", formatUploadDate("soon"))
}
