package ports

// Phase identifies a stage of the export pipeline.
type Phase string

const (
	PhasePreparing     Phase = "preparing"
	PhaseCapturing     Phase = "capturing"
	PhaseBatchCreation Phase = "batch_creation"
	PhaseComposition   Phase = "composition"
	PhaseFinalizing    Phase = "finalizing"
)

// ProgressEvent describes the pipeline's position within an export job.
type ProgressEvent struct {
	SessionID    string
	Phase        Phase
	Percent      int // Overall 0-100 estimate with fixed per-phase checkpoints
	CurrentBatch int // 1-based batch being encoded; 0 outside batch creation
	TotalBatches int
	Encoder      *ProgressRecord // Latest raw encoder snapshot, if any
}

// ExportNotifier receives pipeline events. Any number of notifiers may be
// registered; the pipeline does not depend on a particular transport, so an
// implementation may log, push to a channel, or forward over RPC.
type ExportNotifier interface {
	// OnProgress is called on every phase transition and encoder update.
	OnProgress(ev ProgressEvent)

	// OnCompleted is called once with the final output path.
	OnCompleted(sessionID, outputPath string)

	// OnError is called when a job fails. Cancellation is not an error.
	OnError(sessionID, code, message string)
}
