// Package exporter drives the export pipeline: it stages frames through the
// frame store, splits them into contiguous batches, runs the segment encoder
// over each batch, composes the final deliverable, and fans progress out to
// registered notifiers. Jobs run strictly one at a time in FIFO order.
package exporter

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"golang.org/x/sync/errgroup"

	"github.com/user/lyrexport/pkg/framestore"
	"github.com/user/lyrexport/pkg/ports"
)

// DefaultBatchSize is the number of frames per segment when not configured.
const DefaultBatchSize = 30

// DefaultOutputName is the final file name when a job does not set one.
const DefaultOutputName = "export.mp4"

// Job describes one queued export. Frames must already be staged in the
// session before the job is queued.
type Job struct {
	SessionID   string
	TotalFrames int
	FPS         float64
	Width       int // Output width; 0 keeps the frame dimension
	Height      int // Output height; 0 keeps the frame dimension
	Tier        ports.QualityTier
	AudioPath   string // Optional audio track
	OutputName  string // File name inside the session output dir
}

// Service is the export pipeline facade. All methods are safe for concurrent
// use; at most one job is processed at a time.
type Service struct {
	store *framestore.Store
	enc   ports.SegmentEncoder
	fs    ports.FileSystem
	log   ports.Logger
	probe ports.SegmentProber

	batchSize int
	policy    ContinuityPolicy

	mu          sync.Mutex
	notifiers   []ports.ExportNotifier
	queue       []Job
	running     bool
	currentID   string
	cancelRun   context.CancelFunc
	cancelled   bool
	initialized bool
	disposed    bool

	drained sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithBatchSize overrides the frames-per-batch count.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithContinuityPolicy selects how batch plan gaps are handled.
func WithContinuityPolicy(p ContinuityPolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithProber enables the post-encode segment check.
func WithProber(p ports.SegmentProber) Option {
	return func(s *Service) { s.probe = p }
}

// New creates a Service over a frame store and a segment encoder.
func New(store *framestore.Store, enc ports.SegmentEncoder, fs ports.FileSystem, log ports.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		enc:       enc,
		fs:        fs,
		log:       log.WithComponent("exporter"),
		batchSize: DefaultBatchSize,
		policy:    PolicyWarn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize verifies the encoder is invocable and starts the orphan sweep.
// It must succeed before exports can be queued.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.enc.Available(); err != nil {
		return fmt.Errorf("encoder unavailable: %w", err)
	}
	go s.store.Start(ctx)

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	s.log.Info(l10n.T("Export service initialized"))
	return nil
}

// AddNotifier registers a notifier for all subsequent events.
func (s *Service) AddNotifier(n ports.ExportNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// CreateSession creates a staging session. An empty id generates one.
func (s *Service) CreateSession(id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := s.store.CreateSession(id); err != nil {
		return "", err
	}
	return id, nil
}

// SaveFrameImage stages one raw RGBA frame under its canonical name and
// returns the written path.
func (s *Service) SaveFrameImage(sessionID string, frameIndex int, pixels []byte, width, height int) (string, error) {
	if frameIndex < 0 {
		return "", fmt.Errorf("%w: frame index %d", ErrValidation, frameIndex)
	}
	return s.store.SaveFrame(sessionID, framestore.FrameFileName(frameIndex), pixels, width, height)
}

// CreateBatchVideo encodes one batch of staged frames into a segment file and
// returns its path. Used directly for fine-grained control; QueueExport runs
// the same step per planned batch.
func (s *Service) CreateBatchVideo(ctx context.Context, sessionID string, batch Batch, fps float64, width, height int, tier ports.QualityTier) (string, error) {
	sess, err := s.store.Session(sessionID)
	if err != nil {
		return "", err
	}
	job := ports.BatchJob{
		FramesDir:    sess.FramesDir,
		FramePattern: framestore.FramePattern,
		StartFrame:   batch.StartFrame,
		EndFrame:     batch.EndFrame,
		FPS:          fps,
		Width:        width,
		Height:       height,
		Tier:         tier,
		OutputPath:   filepath.Join(sess.BatchesDir, framestore.BatchFileName(batch.Index)),
	}
	return s.encodeBatch(ctx, job, nil)
}

// ComposeFinalVideo concatenates segment files (with an optional audio track)
// into the session's output directory and returns the final path.
func (s *Service) ComposeFinalVideo(ctx context.Context, sessionID string, segments []string, audioPath, outputName string) (string, error) {
	sess, err := s.store.Session(sessionID)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no segments to compose", ErrValidation)
	}
	if outputName == "" {
		outputName = DefaultOutputName
	}
	job := ports.ComposeJob{
		Segments:    segments,
		AudioPath:   audioPath,
		ManifestDir: sess.Root,
		OutputPath:  filepath.Join(sess.OutputDir, outputName),
	}
	return s.enc.ComposeFinal(ctx, job, nil)
}

// CleanupTempSession removes a session and everything staged under it.
func (s *Service) CleanupTempSession(sessionID string) error {
	return s.store.CleanupSession(sessionID)
}

// StorageStats reports usage for one session, or the whole temp root when
// sessionID is empty.
func (s *Service) StorageStats(sessionID string) (framestore.Stats, error) {
	return s.store.Stats(sessionID)
}

// QueueExport appends a job to the FIFO queue and starts the drain loop if
// idle. Frames for the job must already be staged.
func (s *Service) QueueExport(job Job) error {
	if job.TotalFrames <= 0 {
		return fmt.Errorf("%w: total frames %d", ErrValidation, job.TotalFrames)
	}
	if _, err := s.store.Session(job.SessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	if !s.initialized {
		return ErrNotInitialized
	}

	s.queue = append(s.queue, job)
	s.log.Info(l10n.F("Export queued for session %s", job.SessionID))

	if !s.running {
		s.running = true
		s.drained.Add(1)
		go s.drain()
	}
	return nil
}

// CancelCurrent aborts the in-flight job, drops every queued job, and cleans
// their sessions. Cleanup failures are logged and never block each other. The
// in-flight job's session is cleaned by its own run loop.
func (s *Service) CancelCurrent() {
	s.mu.Lock()
	queued := s.queue
	s.queue = nil
	hadCurrent := s.cancelRun != nil
	if hadCurrent {
		s.cancelled = true
		s.cancelRun()
	}
	s.mu.Unlock()

	if !hadCurrent && len(queued) == 0 {
		return
	}

	s.enc.Cancel()

	var g errgroup.Group
	for _, job := range queued {
		job := job
		g.Go(func() error {
			if err := s.store.CleanupSession(job.SessionID); err != nil {
				s.log.Warn(l10n.F("Session cleanup failed for %s: %s", job.SessionID, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info(l10n.T("Export cancelled"))
}

// Dispose cancels any in-flight work, waits for the drain loop to settle, and
// rejects all further use.
func (s *Service) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.mu.Unlock()

	s.log.Info(l10n.T("Shutting down, cleaning up..."))
	s.CancelCurrent()
	s.drained.Wait()
}

// IsProcessing reports whether the drain loop is active.
func (s *Service) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CurrentSession returns the session id of the in-flight job, or empty.
func (s *Service) CurrentSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// QueueSize returns the number of jobs waiting behind the current one.
func (s *Service) QueueSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Service) notifyProgress(ev ports.ProgressEvent) {
	for _, n := range s.snapshotNotifiers() {
		n.OnProgress(ev)
	}
}

func (s *Service) notifyCompleted(sessionID, outputPath string) {
	for _, n := range s.snapshotNotifiers() {
		n.OnCompleted(sessionID, outputPath)
	}
}

func (s *Service) notifyError(sessionID, code, message string) {
	for _, n := range s.snapshotNotifiers() {
		n.OnError(sessionID, code, message)
	}
}

func (s *Service) snapshotNotifiers() []ports.ExportNotifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ExportNotifier, len(s.notifiers))
	copy(out, s.notifiers)
	return out
}
