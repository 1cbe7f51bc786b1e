package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/yourusername/ydownloader/internal/domain"
)

const maxDescriptionLen = 50

// ProgressRenderer draws one progress bar per downloaded file
type ProgressRenderer struct {
	out   io.Writer
	title string
	bar   *progressbar.ProgressBar

	// bytes is true when the current bar counts bytes rather than percent
	bytes bool
	value int64
	bars  int
}

// NewProgressRenderer creates a renderer labelled with title
func NewProgressRenderer(out io.Writer, title string) *ProgressRenderer {
	return &ProgressRenderer{
		out:   out,
		title: title,
	}
}

// OnProgress implements app.ProgressObserver
func (r *ProgressRenderer) OnProgress(event domain.ProgressEvent) {
	switch event.Phase {
	case domain.PhaseDownloading:
		if r.bar == nil {
			r.start(event)
		}
		r.update(event)

	case domain.PhaseProcessing:
		if r.bar != nil {
			r.bar.Describe(yellow("Processing..."))
			_ = r.bar.Finish()
			r.bar = nil
		}

	case domain.PhaseError:
		if r.bar != nil {
			_ = r.bar.Clear()
			r.bar = nil
		}
	}
}

func (r *ProgressRenderer) start(event domain.ProgressEvent) {
	max := int64(100)
	r.bytes = event.TotalBytes > 0
	if r.bytes {
		max = event.TotalBytes
	}

	r.bar = progressbar.NewOptions64(max,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(cyan(truncateTitle(r.title))),
		progressbar.OptionShowBytes(r.bytes),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
	r.value = 0
	r.bars++
}

func (r *ProgressRenderer) update(event domain.ProgressEvent) {
	value := int64(event.Percent)
	if r.bytes {
		if event.TotalBytes <= 0 {
			return
		}
		if event.TotalBytes != r.bar.GetMax64() {
			r.bar.ChangeMax64(event.TotalBytes)
		}
		value = event.DownloadedBytes
	}
	r.value = value
	_ = r.bar.Set64(value)
}

// Close finishes a bar left open by an interrupted download
func (r *ProgressRenderer) Close() {
	if r.bar != nil {
		_ = r.bar.Clear()
		r.bar = nil
		fmt.Fprintln(r.out)
	}
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen]) + "..."
	}
	return title
}
