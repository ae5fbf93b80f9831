// Package mp4probe inspects MP4 segment files produced by the batch encoder.
// It is used as a post-encode structural check: a segment that stats fine but
// carries no video track or an unexpected geometry is caught here instead of
// at final composition.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned when the file parses but holds no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track")

// Info summarizes a segment's video track.
type Info struct {
	DurationMs  int64 // Track duration in milliseconds
	Width       int   // Track header width in pixels
	Height      int   // Track header height in pixels
	SampleCount int   // Number of video samples (frames)
}

// File probes the MP4 file at path.
func File(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open segment: %w", err)
	}
	defer f.Close()

	return Reader(f)
}

// Reader probes an MP4 stream.
func Reader(r io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return Info{}, fmt.Errorf("mp4probe: no moov box")
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}

		info := Info{
			Width:  int(uint32(trak.Tkhd.Width) >> 16),
			Height: int(uint32(trak.Tkhd.Height) >> 16),
		}

		if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
			info.DurationMs = int64(mdhd.Duration) * 1000 / int64(mdhd.Timescale)
		}
		if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
			info.SampleCount = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
		}

		return info, nil
	}

	return Info{}, ErrNoVideoTrack
}
