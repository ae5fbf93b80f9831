package exporter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/user/lyrexport/pkg/framestore"
	"github.com/user/lyrexport/pkg/ports"
)

// phaseError tags a failure with the pipeline phase it occurred in.
type phaseError struct {
	phase ports.Phase
	err   error
}

func (e *phaseError) Error() string { return fmt.Sprintf("%s: %s", e.phase, e.err) }
func (e *phaseError) Unwrap() error { return e.err }

// drain processes queued jobs one at a time until the queue is empty. The
// running flag and the queue are guarded by the same mutex, so clearing the
// flag and observing an empty queue is atomic against QueueExport.
func (s *Service) drain() {
	defer s.drained.Done()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		job := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.runJob(job)
	}
}

// runJob executes one job and settles its outcome: completion has already been
// notified by executeJob, failure cleans the session and notifies an error,
// cancellation cleans the session silently.
func (s *Service) runJob(job Job) {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.currentID = job.SessionID
	s.cancelRun = cancel
	s.cancelled = false
	s.mu.Unlock()
	defer cancel()

	err := s.executeJob(ctx, job)

	s.mu.Lock()
	cancelled := s.cancelled
	s.currentID = ""
	s.cancelRun = nil
	s.mu.Unlock()

	if err == nil {
		return
	}

	if cerr := s.store.CleanupSession(job.SessionID); cerr != nil {
		s.log.Warn(l10n.F("Session cleanup failed for %s: %s", job.SessionID, cerr))
	}

	if cancelled || errors.Is(err, context.Canceled) {
		return
	}

	s.log.Error(l10n.F("Export failed for session %s: %s", job.SessionID, err))
	s.notifyError(job.SessionID, errorCode(err), err.Error())
}

func (s *Service) executeJob(ctx context.Context, job Job) error {
	sess, err := s.store.Session(job.SessionID)
	if err != nil {
		return err
	}

	s.notifyProgress(ports.ProgressEvent{
		SessionID: job.SessionID,
		Phase:     ports.PhasePreparing,
		Percent:   percentPreparing,
	})

	batches := Plan(job.TotalFrames, s.batchSize)
	if err := CheckContinuity(batches); err != nil {
		if s.policy == PolicyAbort {
			return err
		}
		s.log.Warn(err.Error())
	}

	// Frames are staged by the caller before queueing; the capturing phase
	// is a handoff checkpoint here.
	s.notifyProgress(ports.ProgressEvent{
		SessionID: job.SessionID,
		Phase:     ports.PhaseCapturing,
		Percent:   percentCapturing,
	})

	// The first frame backs the poster thumbnail and is deleted with its
	// batch, so grab it before encoding starts.
	posterSrc := s.readPosterSource(sess)

	total := len(batches)
	segments := make([]string, 0, total)
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.log.Info(l10n.F("Encoding batch %d: frames %d-%d", b.Index, b.StartFrame, b.EndFrame-1))
		s.notifyProgress(ports.ProgressEvent{
			SessionID:    job.SessionID,
			Phase:        ports.PhaseBatchCreation,
			Percent:      batchPercent(b.Index, 0, total),
			CurrentBatch: b.Index + 1,
			TotalBatches: total,
		})

		batchJob := ports.BatchJob{
			FramesDir:    sess.FramesDir,
			FramePattern: framestore.FramePattern,
			StartFrame:   b.StartFrame,
			EndFrame:     b.EndFrame,
			FPS:          job.FPS,
			Width:        job.Width,
			Height:       job.Height,
			Tier:         job.Tier,
			OutputPath:   filepath.Join(sess.BatchesDir, framestore.BatchFileName(b.Index)),
		}
		segment, err := s.encodeBatch(ctx, batchJob, func(rec ports.ProgressRecord) {
			r := rec
			s.notifyProgress(ports.ProgressEvent{
				SessionID:    job.SessionID,
				Phase:        ports.PhaseBatchCreation,
				Percent:      batchPercent(b.Index, rec.Ratio, total),
				CurrentBatch: b.Index + 1,
				TotalBatches: total,
				Encoder:      &r,
			})
		})
		if err != nil {
			return &phaseError{ports.PhaseBatchCreation, err}
		}

		// Consumed frames are released only after the segment exists and
		// passed verification.
		names := make([]string, 0, b.FrameCount())
		for f := b.StartFrame; f < b.EndFrame; f++ {
			names = append(names, framestore.FrameFileName(f))
		}
		if err := s.store.CleanupFrames(job.SessionID, names); err != nil {
			s.log.Warn(l10n.F("Session cleanup failed for %s: %s", job.SessionID, err))
		}

		segments = append(segments, segment)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.notifyProgress(ports.ProgressEvent{
		SessionID: job.SessionID,
		Phase:     ports.PhaseComposition,
		Percent:   percentComposeBase,
	})

	outputName := job.OutputName
	if outputName == "" {
		outputName = DefaultOutputName
	}
	composeJob := ports.ComposeJob{
		Segments:    segments,
		AudioPath:   job.AudioPath,
		ManifestDir: sess.Root,
		OutputPath:  filepath.Join(sess.OutputDir, outputName),
	}
	finalPath, err := s.enc.ComposeFinal(ctx, composeJob, func(rec ports.ProgressRecord) {
		r := rec
		s.notifyProgress(ports.ProgressEvent{
			SessionID: job.SessionID,
			Phase:     ports.PhaseComposition,
			Percent:   composePercent(rec.Ratio),
			Encoder:   &r,
		})
	})
	if err != nil {
		return &phaseError{ports.PhaseComposition, err}
	}

	s.notifyProgress(ports.ProgressEvent{
		SessionID: job.SessionID,
		Phase:     ports.PhaseFinalizing,
		Percent:   percentFinalizing,
	})

	if err := s.writePoster(posterSrc, finalPath); err != nil {
		s.log.Warn(l10n.F("Poster thumbnail failed: %s", err))
	}
	s.removeManifests(sess.Root)

	s.notifyProgress(ports.ProgressEvent{
		SessionID: job.SessionID,
		Phase:     ports.PhaseFinalizing,
		Percent:   percentDone,
	})
	s.log.Info(l10n.F("Export completed: %s", finalPath))
	s.notifyCompleted(job.SessionID, finalPath)
	return nil
}

// encodeBatch runs the encoder for one batch and applies the post-encode
// structural check.
func (s *Service) encodeBatch(ctx context.Context, job ports.BatchJob, onProgress ports.ProgressFunc) (string, error) {
	segment, err := s.enc.EncodeBatch(ctx, job, onProgress)
	if err != nil {
		return "", err
	}
	s.verifySegment(segment, job)
	return segment, nil
}

// verifySegment probes an encoded segment and logs mismatches. Advisory only:
// a probe failure never fails the batch.
func (s *Service) verifySegment(path string, job ports.BatchJob) {
	if s.probe == nil {
		return
	}
	info, err := s.probe.Probe(path)
	if err != nil {
		s.log.Warn(l10n.F("Segment verification failed for %s: %s", path, err))
		return
	}
	if info.SampleCount > 0 && info.SampleCount != job.FrameCount() {
		s.log.Warn(l10n.F("Segment %s has %d samples, expected %d", path, info.SampleCount, job.FrameCount()))
	}
	if job.Width > 0 && job.Height > 0 && (info.Width != job.Width || info.Height != job.Height) {
		s.log.Warn(l10n.F("Segment %s is %dx%d, expected %dx%d", path, info.Width, info.Height, job.Width, job.Height))
	}
}

// removeManifests clears transient concat manifests from the session root.
func (s *Service) removeManifests(sessionRoot string) {
	entries, err := s.fs.ReadDir(sessionRoot)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "concat_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if err := s.fs.Remove(filepath.Join(sessionRoot, name)); err != nil {
			s.log.Warn(l10n.F("Session cleanup failed for %s: %s", name, err))
		}
	}
}

// errorCode maps a job failure to a stable notifier code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, framestore.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrDiscontinuity):
		return "discontinuity"
	}

	var pe *phaseError
	if errors.As(err, &pe) {
		switch pe.phase {
		case ports.PhaseBatchCreation:
			return "batch_encode_failed"
		case ports.PhaseComposition:
			return "compose_failed"
		case ports.PhaseFinalizing:
			return "finalize_failed"
		}
	}
	return "export_failed"
}
