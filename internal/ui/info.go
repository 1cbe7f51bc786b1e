package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yourusername/ydownloader/internal/domain"
)

// PrintVideoInfo writes the metadata table shown before a download
func PrintVideoInfo(w io.Writer, info *domain.VideoInfo) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Video Info"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if info.IsPlaylist {
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("Playlist"), info.PlaylistTitle)
		fmt.Fprintf(tw, "  %s\t%d\n", cyan("Videos"), info.PlaylistCount)
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("First"), info.Title)
	} else {
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("Title"), info.Title)
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("Channel"), info.Channel)
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("Duration"), info.DurationFormatted())
		fmt.Fprintf(tw, "  %s\t%s\n", cyan("Views"), info.ViewsFormatted())
		if date := formatUploadDate(info.UploadDate); date != "" {
			fmt.Fprintf(tw, "  %s\t%s\n", cyan("Uploaded"), date)
		}
		if qualities := info.AvailableQualities(); len(qualities) > 0 {
			if len(qualities) > 5 {
				qualities = qualities[:5]
			}
			fmt.Fprintf(tw, "  %s\t%s\n", cyan("Quality"), strings.Join(qualities, ", "))
		}
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// PrintSummary writes the short header used by the non-interactive CLI
func PrintSummary(w io.Writer, info *domain.VideoInfo) {
	if info.IsPlaylist {
		fmt.Fprintf(w, "%s %s %s\n", bold("Playlist:"), info.PlaylistTitle, faint(fmt.Sprintf("(%d videos)", info.PlaylistCount)))
	} else {
		fmt.Fprintf(w, "%s %s\n", bold("Title:"), info.Title)
		fmt.Fprintf(w, "%s %s\n", bold("Channel:"), info.Channel)
		fmt.Fprintf(w, "%s %s\n", bold("Duration:"), info.DurationFormatted())
	}
	fmt.Fprintln(w)
}

// PrintCompletion writes the panel shown after a successful download
func PrintCompletion(w io.Writer, outputDir string, files []string) {
	count, size := summarizeFiles(files)

	fmt.Fprintln(w)
	fmt.Fprintln(w, green("Download complete!"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", faint("Saved to:"), outputDir)
	if count > 0 {
		fmt.Fprintf(w, "%s %d (%s)\n", faint("Files:"), count, humanize.IBytes(uint64(size)))
	}
}

// summarizeFiles counts the reported files still on disk. Intermediate
// streams removed after merging are skipped.
func summarizeFiles(files []string) (int, int64) {
	seen := make(map[string]bool, len(files))
	var count int
	var size int64
	for _, path := range files {
		if seen[path] {
			continue
		}
		seen[path] = true
		stat, err := os.Stat(path)
		if err != nil || stat.IsDir() {
			continue
		}
		count++
		size += stat.Size()
	}
	return count, size
}

func formatUploadDate(date string) string {
	t, err := time.Parse("20060102", date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}
