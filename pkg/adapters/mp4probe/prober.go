package mp4probe

import (
	"github.com/user/lyrexport/pkg/ports"
)

// Prober adapts this package to ports.SegmentProber.
type Prober struct{}

// NewProber creates a Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe probes the MP4 file at path.
func (p *Prober) Probe(path string) (ports.SegmentInfo, error) {
	info, err := File(path)
	if err != nil {
		return ports.SegmentInfo{}, err
	}
	return ports.SegmentInfo{
		DurationMs:  info.DurationMs,
		Width:       info.Width,
		Height:      info.Height,
		SampleCount: info.SampleCount,
	}, nil
}

// Ensure Prober implements ports.SegmentProber
var _ ports.SegmentProber = (*Prober)(nil)
