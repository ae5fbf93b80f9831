package ffmpegcli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/user/lyrexport/pkg/ports"
)

// buildBatchArgs constructs the argument vector for encoding one frame range
// into a segment. The input rate is pinned, the frame count is fixed, and the
// output is forced to constant frame rate with a web-safe 8-bit pixel format
// and a streaming-friendly (moov-first) layout.
func buildBatchArgs(job ports.BatchJob) []string {
	params := tierFor(job.Tier)

	args := []string{
		"-framerate", formatFPS(job.FPS),
		"-start_number", strconv.Itoa(job.StartFrame),
		"-i", filepath.Join(job.FramesDir, job.FramePattern),
		"-frames:v", strconv.Itoa(job.FrameCount()),
		"-vsync", "cfr",
		"-r", formatFPS(job.FPS),
		"-c:v", "libx264",
		"-preset", params.preset,
		"-crf", strconv.Itoa(params.crf),
	}

	if job.Width > 0 && job.Height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", job.Width, job.Height))
	}

	args = append(args,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y", job.OutputPath,
	)

	return args
}

// buildComposeArgs constructs the argument vector for concatenating segments.
// With an audio track the video stream is copied unmodified, the audio is
// re-encoded to 128k AAC, and the output is truncated to the shorter stream.
// Without audio all streams are copied.
func buildComposeArgs(manifestPath string, job ports.ComposeJob) []string {
	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
	}

	if job.AudioPath != "" {
		args = append(args,
			"-i", job.AudioPath,
			"-c:v", "copy",
			"-c:a", "aac",
			"-b:a", "128k",
			"-shortest",
		)
	} else {
		args = append(args, "-c", "copy")
	}

	args = append(args,
		"-movflags", "+faststart",
		"-y", job.OutputPath,
	)

	return args
}

// writeManifest writes the newline-delimited concat list, one quoted and
// escaped path per line, to a uniquely named file in dir.
func writeManifest(fsWrite func(path string, data []byte) error, dir string, segments []string) (string, error) {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "file '%s'\n", escapeManifestPath(seg))
	}

	path := filepath.Join(dir, fmt.Sprintf("concat_%s.txt", uuid.NewString()))
	if err := fsWrite(path, []byte(b.String())); err != nil {
		return "", fmt.Errorf("write concat manifest: %w", err)
	}
	return path, nil
}

// escapeManifestPath escapes single quotes for ffmpeg's concat demuxer.
func escapeManifestPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}

// formatFPS renders a frame rate without a trailing ".00" for integral rates.
func formatFPS(fps float64) string {
	if fps == float64(int(fps)) {
		return strconv.Itoa(int(fps))
	}
	return strconv.FormatFloat(fps, 'f', 3, 64)
}
