package ports

import (
	"context"
)

// QualityTier selects an encoder speed/quality trade-off.
type QualityTier string

const (
	// TierDraft favors speed over quality. Intended for preview exports.
	TierDraft QualityTier = "draft"
	// TierStandard is the default balance.
	TierStandard QualityTier = "standard"
	// TierHigh favors quality over speed.
	TierHigh QualityTier = "high"
	// TierUltra is the slowest, highest quality tier.
	TierUltra QualityTier = "ultra"
)

// ParseQualityTier parses a string into a QualityTier, defaulting to standard.
func ParseQualityTier(s string) QualityTier {
	switch QualityTier(s) {
	case TierDraft, TierStandard, TierHigh, TierUltra:
		return QualityTier(s)
	default:
		return TierStandard
	}
}

// ProgressRecord is a snapshot of the external encoder's live status output.
// It is parsed from the status stream and forwarded immediately, never stored.
type ProgressRecord struct {
	Frame        int     // Current frame index reported by the encoder
	FPS          float64 // Measured encoding frames per second
	Bitrate      string  // Raw bitrate string (e.g. "1234.5kbits/s")
	OutSizeBytes int64   // Cumulative output size
	OutTimeMs    int64   // Elapsed output timestamp in milliseconds
	DupFrames    int     // Duplicated frames
	DropFrames   int     // Dropped frames
	Speed        float64 // Encoding speed multiplier (1.0 = realtime)
	Ratio        float64 // Coarse completion ratio in [0,1], heuristic only
}

// ProgressFunc receives encoder progress snapshots as they are parsed.
type ProgressFunc func(ProgressRecord)

// BatchJob describes one "encode a frame range into a segment" invocation.
type BatchJob struct {
	FramesDir    string  // Directory holding the frame image files
	FramePattern string  // printf-style frame filename pattern (e.g. "frame_%06d.png")
	StartFrame   int     // First frame index, inclusive
	EndFrame     int     // Last frame index, exclusive
	FPS          float64 // Input and output frame rate
	Width        int     // Output width; 0 keeps the source dimension
	Height       int     // Output height; 0 keeps the source dimension
	Tier         QualityTier
	OutputPath   string // Segment file to produce
}

// FrameCount returns the number of frames the job covers.
func (j BatchJob) FrameCount() int {
	return j.EndFrame - j.StartFrame
}

// ComposeJob describes the final concatenation of batch segments.
type ComposeJob struct {
	Segments    []string // Segment paths in playback order
	AudioPath   string   // Optional audio track; empty means video only
	ManifestDir string   // Directory for the transient concat manifest
	OutputPath  string   // Final deliverable path
}

// SegmentEncoder abstracts the external video-encoding process.
// Implementations own at most one child process at a time.
type SegmentEncoder interface {
	// Available verifies the external encoder can be invoked.
	Available() error

	// EncodeBatch encodes the frame range [StartFrame, EndFrame) into a
	// single segment file and returns its path.
	EncodeBatch(ctx context.Context, job BatchJob, onProgress ProgressFunc) (string, error)

	// ComposeFinal concatenates segments (and optionally an audio track)
	// into the final output file and returns its path.
	ComposeFinal(ctx context.Context, job ComposeJob, onProgress ProgressFunc) (string, error)

	// Cancel terminates the active child process, if any.
	Cancel()

	// IsBusy reports whether a child process is currently running.
	IsBusy() bool
}
