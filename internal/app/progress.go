package app

import (
	"github.com/yourusername/ydownloader/internal/domain"
)

// ProgressObserver receives normalized progress events
type ProgressObserver interface {
	OnProgress(event domain.ProgressEvent)
}

// ObserverFunc adapts a plain function to ProgressObserver
type ObserverFunc func(event domain.ProgressEvent)

// OnProgress calls f(event)
func (f ObserverFunc) OnProgress(event domain.ProgressEvent) {
	f(event)
}

// TranslateProgress maps a raw engine report to a ProgressEvent. Statuses
// other than downloading, finished and error are dropped.
func TranslateProgress(raw domain.EngineProgress) (domain.ProgressEvent, bool) {
	switch raw.Status {
	case domain.EngineStatusDownloading:
		total := raw.TotalBytes
		if total == 0 {
			total = raw.TotalBytesEstimate
		}
		var percent float64
		if total > 0 {
			percent = float64(raw.DownloadedBytes) / float64(total) * 100
		}
		return domain.ProgressEvent{
			Phase:           domain.PhaseDownloading,
			Filename:        raw.Filename,
			DownloadedBytes: raw.DownloadedBytes,
			TotalBytes:      total,
			Speed:           raw.Speed,
			ETA:             raw.ETA,
			Percent:         percent,
		}, true

	case domain.EngineStatusFinished:
		return domain.ProgressEvent{
			Phase:    domain.PhaseProcessing,
			Filename: raw.Filename,
			Percent:  100,
		}, true

	case domain.EngineStatusError:
		msg := raw.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return domain.ProgressEvent{
			Phase: domain.PhaseError,
			Error: msg,
		}, true
	}

	return domain.ProgressEvent{}, false
}

// NewProgressHook returns an engine hook that forwards translated events to
// every observer, in registration order.
func NewProgressHook(observers ...ProgressObserver) domain.EngineHook {
	return func(raw domain.EngineProgress) {
		event, ok := TranslateProgress(raw)
		if !ok {
			return
		}
		for _, o := range observers {
			o.OnProgress(event)
		}
	}
}
