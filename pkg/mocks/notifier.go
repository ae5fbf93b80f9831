package mocks

import (
	"sync"

	"github.com/user/lyrexport/pkg/ports"
)

// Notifier is a mock implementation of ports.ExportNotifier that records
// every event it receives.
type Notifier struct {
	mu sync.Mutex

	ProgressEvents []ports.ProgressEvent
	Completions    []CompletionEvent
	Errors         []ErrorEvent
}

// CompletionEvent records an OnCompleted call.
type CompletionEvent struct {
	SessionID  string
	OutputPath string
}

// ErrorEvent records an OnError call.
type ErrorEvent struct {
	SessionID string
	Code      string
	Message   string
}

func (m *Notifier) OnProgress(ev ports.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgressEvents = append(m.ProgressEvents, ev)
}

func (m *Notifier) OnCompleted(sessionID, outputPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completions = append(m.Completions, CompletionEvent{SessionID: sessionID, OutputPath: outputPath})
}

func (m *Notifier) OnError(sessionID, code, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, ErrorEvent{SessionID: sessionID, Code: code, Message: message})
}

// Phases returns the sequence of phases seen in progress events.
func (m *Notifier) Phases() []ports.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	phases := make([]ports.Phase, 0, len(m.ProgressEvents))
	for _, ev := range m.ProgressEvents {
		phases = append(phases, ev.Phase)
	}
	return phases
}

// CompletionCount returns the number of completion events.
func (m *Notifier) CompletionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Completions)
}

// ErrorCount returns the number of error events.
func (m *Notifier) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Errors)
}

// Ensure Notifier implements ports.ExportNotifier
var _ ports.ExportNotifier = (*Notifier)(nil)
