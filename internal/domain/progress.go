package domain

// Phase is the stage a progress event belongs to
type Phase string

const (
	PhaseDownloading Phase = "downloading"
	PhaseProcessing  Phase = "processing" // transfer done, engine is muxing/embedding
	PhaseError       Phase = "error"
)

// ProgressEvent is a normalized progress tick consumed by presentation layers
type ProgressEvent struct {
	Phase           Phase
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64 // 0 when the engine has no estimate
	Speed           float64
	ETA             int64 // seconds
	Percent         float64
	Error           string
}
