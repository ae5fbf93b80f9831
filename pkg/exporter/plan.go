package exporter

import "fmt"

// Batch is one contiguous half-open frame range [StartFrame, EndFrame)
// destined for a single segment file.
type Batch struct {
	Index      int
	StartFrame int
	EndFrame   int
}

// FrameCount returns the number of frames in the batch.
func (b Batch) FrameCount() int {
	return b.EndFrame - b.StartFrame
}

// ContinuityPolicy selects how a gap in the batch plan is handled.
type ContinuityPolicy string

const (
	// PolicyWarn logs the discontinuity and continues.
	PolicyWarn ContinuityPolicy = "warn"
	// PolicyAbort fails the job on the first discontinuity.
	PolicyAbort ContinuityPolicy = "abort"
)

// ParseContinuityPolicy parses a policy string, defaulting to warn.
func ParseContinuityPolicy(s string) ContinuityPolicy {
	if ContinuityPolicy(s) == PolicyAbort {
		return PolicyAbort
	}
	return PolicyWarn
}

// Plan splits totalFrames into contiguous batches of batchSize frames each.
// The last batch holds the remainder. batchSize below 1 yields a single batch.
func Plan(totalFrames, batchSize int) []Batch {
	if totalFrames <= 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = totalFrames
	}

	count := (totalFrames + batchSize - 1) / batchSize
	batches := make([]Batch, 0, count)
	for start := 0; start < totalFrames; start += batchSize {
		end := start + batchSize
		if end > totalFrames {
			end = totalFrames
		}
		batches = append(batches, Batch{
			Index:      len(batches),
			StartFrame: start,
			EndFrame:   end,
		})
	}
	return batches
}

// CheckContinuity verifies batches cover a frame range without gaps or
// overlaps. The first violation is reported.
func CheckContinuity(batches []Batch) error {
	expected := 0
	if len(batches) > 0 {
		expected = batches[0].StartFrame
	}
	for _, b := range batches {
		if b.StartFrame != expected {
			return fmt.Errorf("%w: batch %d starts at %d, expected %d",
				ErrDiscontinuity, b.Index, b.StartFrame, expected)
		}
		if b.EndFrame <= b.StartFrame {
			return fmt.Errorf("%w: batch %d is empty (%d-%d)",
				ErrDiscontinuity, b.Index, b.StartFrame, b.EndFrame)
		}
		expected = b.EndFrame
	}
	return nil
}
