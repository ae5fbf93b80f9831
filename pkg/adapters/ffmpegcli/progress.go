package ffmpegcli

import (
	"regexp"
	"strconv"

	"github.com/user/lyrexport/pkg/ports"
)

// ffmpeg reports status on stderr as carriage-return separated lines of
// key=value tokens, e.g.
//
//	frame=  120 fps= 48 q=28.0 size=     512KiB time=00:00:04.00 bitrate=1048.6kbits/s dup=0 drop=2 speed=1.6x
//
// Any subset of the tokens may be present in a chunk; each extractor updates
// the running snapshot independently.
var (
	frameRe   = regexp.MustCompile(`frame=\s*(\d+)`)
	fpsRe     = regexp.MustCompile(`fps=\s*([\d.]+)`)
	bitrateRe = regexp.MustCompile(`bitrate=\s*([\d.]+\s*[kKmMgG]?bits/s|N/A)`)
	sizeRe    = regexp.MustCompile(`L?size=\s*(\d+)\s*([kKmMgG]?i?B)`)
	timeRe    = regexp.MustCompile(`time=\s*(\d+):(\d{2}):(\d{2})\.(\d+)`)
	speedRe   = regexp.MustCompile(`speed=\s*([\d.]+)x`)
	dupRe     = regexp.MustCompile(`dup=\s*(\d+)`)
	dropRe    = regexp.MustCompile(`drop=\s*(\d+)`)
)

// progressParser accumulates encoder status into a running snapshot.
type progressParser struct {
	expectedFrames int
	rec            ports.ProgressRecord
}

// parseLine scans one status line and reports whether any field was found.
func (p *progressParser) parseLine(line string) bool {
	found := false

	if m := frameRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			p.rec.Frame = v
			found = true
		}
	}
	if m := fpsRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.rec.FPS = v
			found = true
		}
	}
	if m := bitrateRe.FindStringSubmatch(line); m != nil {
		p.rec.Bitrate = m[1]
		found = true
	}
	if m := sizeRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			p.rec.OutSizeBytes = v * sizeUnitBytes(m[2])
			found = true
		}
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		p.rec.OutTimeMs = parseTimestampMs(m[1], m[2], m[3], m[4])
		found = true
	}
	if m := speedRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.rec.Speed = v
			found = true
		}
	}
	if m := dupRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			p.rec.DupFrames = v
			found = true
		}
	}
	if m := dropRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			p.rec.DropFrames = v
			found = true
		}
	}

	if found {
		p.updateRatio()
	}
	return found
}

// updateRatio derives a coarse completion ratio from the frame count. The
// orchestrator tracks true completion at the batch level; this value only
// smooths the per-batch progress display.
func (p *progressParser) updateRatio() {
	if p.expectedFrames <= 0 || p.rec.Frame <= 0 {
		return
	}
	ratio := float64(p.rec.Frame) / float64(p.expectedFrames)
	if ratio > 1 {
		ratio = 1
	}
	p.rec.Ratio = ratio
}

// sizeUnitBytes maps ffmpeg size suffixes to a byte multiplier.
func sizeUnitBytes(unit string) int64 {
	switch unit {
	case "kB", "KB", "KiB", "kiB":
		return 1024
	case "mB", "MB", "MiB":
		return 1024 * 1024
	case "gB", "GB", "GiB":
		return 1024 * 1024 * 1024
	default:
		return 1
	}
}

// parseTimestampMs converts an HH:MM:SS.ff timestamp to milliseconds.
// The fractional part is centiseconds when two digits are reported.
func parseTimestampMs(hh, mm, ss, frac string) int64 {
	h, _ := strconv.ParseInt(hh, 10, 64)
	m, _ := strconv.ParseInt(mm, 10, 64)
	s, _ := strconv.ParseInt(ss, 10, 64)

	// Normalize the fraction to milliseconds.
	for len(frac) < 3 {
		frac += "0"
	}
	frac = frac[:3]
	ms, _ := strconv.ParseInt(frac, 10, 64)

	return ((h*60+m)*60+s)*1000 + ms
}
