package mocks

import (
	"context"
	"sync"

	"github.com/user/lyrexport/pkg/ports"
)

// SegmentEncoder is a mock implementation of ports.SegmentEncoder.
type SegmentEncoder struct {
	AvailableFunc    func() error
	EncodeBatchFunc  func(ctx context.Context, job ports.BatchJob, onProgress ports.ProgressFunc) (string, error)
	ComposeFinalFunc func(ctx context.Context, job ports.ComposeJob, onProgress ports.ProgressFunc) (string, error)

	mu sync.Mutex

	// Recorded calls for verification
	EncodeBatchCalls  []ports.BatchJob
	ComposeFinalCalls []ports.ComposeJob
	CancelCalled      bool
}

func (m *SegmentEncoder) Available() error {
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return nil
}

func (m *SegmentEncoder) EncodeBatch(ctx context.Context, job ports.BatchJob, onProgress ports.ProgressFunc) (string, error) {
	m.mu.Lock()
	m.EncodeBatchCalls = append(m.EncodeBatchCalls, job)
	m.mu.Unlock()
	if m.EncodeBatchFunc != nil {
		return m.EncodeBatchFunc(ctx, job, onProgress)
	}
	return job.OutputPath, nil
}

func (m *SegmentEncoder) ComposeFinal(ctx context.Context, job ports.ComposeJob, onProgress ports.ProgressFunc) (string, error) {
	m.mu.Lock()
	m.ComposeFinalCalls = append(m.ComposeFinalCalls, job)
	m.mu.Unlock()
	if m.ComposeFinalFunc != nil {
		return m.ComposeFinalFunc(ctx, job, onProgress)
	}
	return job.OutputPath, nil
}

func (m *SegmentEncoder) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalled = true
}

func (m *SegmentEncoder) IsBusy() bool {
	return false
}

// WasCancelled reports whether Cancel has been called.
func (m *SegmentEncoder) WasCancelled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CancelCalled
}

// BatchCalls returns a snapshot of recorded EncodeBatch calls.
func (m *SegmentEncoder) BatchCalls() []ports.BatchJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]ports.BatchJob, len(m.EncodeBatchCalls))
	copy(calls, m.EncodeBatchCalls)
	return calls
}

// Ensure SegmentEncoder implements ports.SegmentEncoder
var _ ports.SegmentEncoder = (*SegmentEncoder)(nil)
