package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ydownloader/internal/domain"
)

func TestNormalizeInfo_SingleVideo(t *testing.T) {
	payload := map[string]interface{}{
		"title":       "Test Video",
		"uploader":    "Test Channel",
		"duration":    float64(212.4),
		"view_count":  float64(1234567),
		"thumbnail":   "https://i.ytimg.com/vi/abc/hq.jpg",
		"description": "desc",
		"upload_date": "20240102",
		"formats": []interface{}{
			map[string]interface{}{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a", "height": nil},
			map[string]interface{}{"format_id": "137", "ext": "mp4", "vcodec": "avc1", "acodec": "none", "height": float64(1080), "width": float64(1920), "filesize": float64(1048576)},
		},
		"unrelated": map[string]interface{}{"ignored": true},
	}

	info, err := NormalizeInfo("https://youtu.be/abc", payload)
	require.NoError(t, err)

	assert.Equal(t, "https://youtu.be/abc", info.URL)
	assert.Equal(t, "Test Video", info.Title)
	assert.Equal(t, "Test Channel", info.Channel)
	assert.Equal(t, 212, info.Duration)
	require.NotNil(t, info.ViewCount)
	assert.Equal(t, int64(1234567), *info.ViewCount)
	assert.Equal(t, "20240102", info.UploadDate)
	assert.False(t, info.IsPlaylist)

	require.Len(t, info.Formats, 2)
	assert.False(t, info.Formats[0].IsVideo())
	assert.Equal(t, 1080, info.Formats[1].Height)
	assert.Equal(t, int64(1048576), info.Formats[1].Filesize)
	assert.Equal(t, []string{"1080p"}, info.AvailableQualities())
}

func TestNormalizeInfo_Fallbacks(t *testing.T) {
	info, err := NormalizeInfo("u", map[string]interface{}{"channel": "Chan", "view_count": nil})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", info.Title)
	assert.Equal(t, "Chan", info.Channel)
	assert.Nil(t, info.ViewCount)
	assert.Equal(t, "N/A", info.ViewsFormatted())

	info, err = NormalizeInfo("u", map[string]interface{}{"title": "T"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", info.Channel)
}

func TestNormalizeInfo_Playlist(t *testing.T) {
	payload := map[string]interface{}{
		"_type":       "playlist",
		"title":       "My Mix",
		"description": "playlist description",
		"entries": []interface{}{
			map[string]interface{}{"title": "First", "uploader": "Entry Channel", "duration": float64(90), "thumbnail": "thumb-1"},
			map[string]interface{}{"title": "Second"},
			map[string]interface{}{"title": "Third"},
		},
	}

	info, err := NormalizeInfo("https://www.youtube.com/playlist?list=PL1", payload)
	require.NoError(t, err)

	assert.True(t, info.IsPlaylist)
	assert.Equal(t, 3, info.PlaylistCount)
	assert.Equal(t, "My Mix", info.PlaylistTitle)
	assert.Equal(t, "First", info.Title)
	assert.Equal(t, "Entry Channel", info.Channel)
	assert.Equal(t, 90, info.Duration)
	assert.Equal(t, "thumb-1", info.Thumbnail)
	assert.Equal(t, "playlist description", info.Description)
}

func TestNormalizeInfo_PlaylistContainerWins(t *testing.T) {
	payload := map[string]interface{}{
		"_type":     "playlist",
		"uploader":  "Container Channel",
		"thumbnail": "container-thumb",
		"entries": []interface{}{
			map[string]interface{}{"uploader": "Entry Channel", "thumbnail": "entry-thumb"},
		},
	}

	info, err := NormalizeInfo("u", payload)
	require.NoError(t, err)
	assert.Equal(t, "Container Channel", info.Channel)
	assert.Equal(t, "container-thumb", info.Thumbnail)
	assert.Equal(t, "Unknown Playlist", info.PlaylistTitle)
	assert.Equal(t, "Unknown", info.Title)
}

func TestNormalizeInfo_EmptyPlaylist(t *testing.T) {
	info, err := NormalizeInfo("u", map[string]interface{}{"_type": "playlist", "title": "Empty"})
	require.NoError(t, err)
	assert.True(t, info.IsPlaylist)
	assert.Equal(t, 0, info.PlaylistCount)
	assert.Equal(t, "Unknown", info.Title)
	assert.Equal(t, "Unknown", info.Channel)
}

func TestNormalizeInfo_Empty(t *testing.T) {
	_, err := NormalizeInfo("u", nil)
	assert.ErrorIs(t, err, domain.ErrNoInfo)

	_, err = NormalizeInfo("u", map[string]interface{}{})
	assert.ErrorIs(t, err, domain.ErrNoInfo)
}
