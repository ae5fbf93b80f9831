// Package ffmpegcli drives an external ffmpeg process for two job shapes:
// encoding a frame range into a batch segment, and concatenating segments
// (optionally with an audio track) into the final output.
//
// No timeout is enforced on the child process; a hung encoder blocks its job
// until Cancel is called.
package ffmpegcli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/user/lyrexport/pkg/ports"
)

// minBytesPerFrame is a rough floor for the post-encode size sanity check.
// Even heavily compressed x264 output rarely drops below this.
const minBytesPerFrame = 64

// Encoder implements ports.SegmentEncoder using an external ffmpeg binary.
// It owns at most one child process at a time.
type Encoder struct {
	log        ports.Logger
	customPath string

	mu   sync.Mutex
	proc *process
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithPath overrides ffmpeg discovery with an explicit binary path.
func WithPath(path string) Option {
	return func(e *Encoder) { e.customPath = path }
}

// New creates an Encoder.
func New(log ports.Logger, opts ...Option) *Encoder {
	e := &Encoder{log: log.WithComponent("ffmpeg")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available verifies an ffmpeg binary can be located.
func (e *Encoder) Available() error {
	path, err := Find(e.customPath)
	if err != nil {
		return err
	}
	e.log.Debug(l10n.F("ffmpeg found at %s", path))
	return nil
}

// EncodeBatch encodes the frame range [StartFrame, EndFrame) into a segment.
func (e *Encoder) EncodeBatch(ctx context.Context, job ports.BatchJob, onProgress ports.ProgressFunc) (string, error) {
	path, err := Find(e.customPath)
	if err != nil {
		return "", err
	}

	// Missing frames are a warning, not an abort; the encoder runs short.
	for i := job.StartFrame; i < job.EndFrame; i++ {
		framePath := filepath.Join(job.FramesDir, fmt.Sprintf(job.FramePattern, i))
		if _, err := os.Stat(framePath); err != nil {
			e.log.Warn(l10n.F("Frame file missing: %s", framePath))
		}
	}

	parser := &progressParser{expectedFrames: job.FrameCount()}
	if err := e.run(ctx, path, buildBatchArgs(job), parser, onProgress); err != nil {
		return "", err
	}

	info, err := os.Stat(job.OutputPath)
	if err != nil {
		return "", fmt.Errorf("%w: segment missing after encode: %s", ErrEncodeFailed, err)
	}
	if info.Size() < int64(job.FrameCount())*minBytesPerFrame {
		e.log.Warn(l10n.F("Segment smaller than expected: %d bytes", info.Size()))
	}
	e.log.Debug(l10n.F("Batch segment written: %s (%d bytes)", job.OutputPath, info.Size()))

	return job.OutputPath, nil
}

// ComposeFinal concatenates batch segments into the final output file.
// The concat manifest is left in ManifestDir for the caller to clean up.
func (e *Encoder) ComposeFinal(ctx context.Context, job ports.ComposeJob, onProgress ports.ProgressFunc) (string, error) {
	path, err := Find(e.customPath)
	if err != nil {
		return "", err
	}

	manifest, err := writeManifest(func(p string, data []byte) error {
		return os.WriteFile(p, data, 0644)
	}, job.ManifestDir, job.Segments)
	if err != nil {
		return "", err
	}

	parser := &progressParser{}
	if err := e.run(ctx, path, buildComposeArgs(manifest, job), parser, onProgress); err != nil {
		return "", err
	}

	if _, err := os.Stat(job.OutputPath); err != nil {
		return "", fmt.Errorf("%w: output missing after compose: %s", ErrEncodeFailed, err)
	}

	return job.OutputPath, nil
}

// Cancel sends a termination signal to the active child process, if any.
func (e *Encoder) Cancel() {
	e.mu.Lock()
	proc := e.proc
	e.mu.Unlock()
	if proc != nil {
		proc.kill()
	}
}

// IsBusy reports whether a child process handle is currently held.
func (e *Encoder) IsBusy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.proc != nil && e.proc.running()
}

// run spawns one ffmpeg invocation and blocks until it exits, forwarding
// parsed progress as status lines arrive.
func (e *Encoder) run(ctx context.Context, path string, args []string, parser *progressParser, onProgress ports.ProgressFunc) error {
	e.mu.Lock()
	if e.proc != nil && e.proc.running() {
		e.mu.Unlock()
		return ErrBusy
	}
	proc := newProcess(path, args)
	e.proc = proc
	e.mu.Unlock()

	onLine := func(line string) {
		if parser.parseLine(line) && onProgress != nil {
			onProgress(parser.rec)
		}
	}

	if err := proc.start(onLine); err != nil {
		e.clearProc()
		return err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			proc.kill()
		case <-done:
		}
	}()

	err := proc.wait()
	close(done)
	e.clearProc()
	return err
}

func (e *Encoder) clearProc() {
	e.mu.Lock()
	e.proc = nil
	e.mu.Unlock()
}

// Ensure Encoder implements ports.SegmentEncoder
var _ ports.SegmentEncoder = (*Encoder)(nil)
