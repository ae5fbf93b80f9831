package ports

// SegmentInfo summarizes the video track of an encoded segment.
type SegmentInfo struct {
	DurationMs  int64
	Width       int
	Height      int
	SampleCount int
}

// SegmentProber inspects an encoded segment file. It backs the post-encode
// sanity check; probe failures are advisory, not fatal.
type SegmentProber interface {
	Probe(path string) (SegmentInfo, error)
}
