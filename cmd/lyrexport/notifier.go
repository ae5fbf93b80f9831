package main

import (
	"fmt"
	"sync"

	"github.com/ideamans/go-l10n"

	"github.com/user/lyrexport/pkg/ports"
)

type exportResult struct {
	outputPath string
	err        error
}

// consoleNotifier logs pipeline progress and resolves a channel when the job
// settles. Phase transitions log at info, per-status encoder updates at debug.
type consoleNotifier struct {
	log  ports.Logger
	done chan exportResult

	mu        sync.Mutex
	lastPhase ports.Phase
}

func newConsoleNotifier(log ports.Logger) *consoleNotifier {
	return &consoleNotifier{
		log:  log.WithComponent("export"),
		done: make(chan exportResult, 1),
	}
}

func (n *consoleNotifier) Done() <-chan exportResult {
	return n.done
}

func (n *consoleNotifier) OnProgress(ev ports.ProgressEvent) {
	n.mu.Lock()
	changed := ev.Phase != n.lastPhase
	n.lastPhase = ev.Phase
	n.mu.Unlock()

	if changed {
		n.log.Info(l10n.F("Phase %s (%d%%)", string(ev.Phase), ev.Percent))
		return
	}
	if ev.Encoder != nil {
		n.log.Debug(l10n.F("Encoder frame %d at %.1f fps (%d%%)", ev.Encoder.Frame, ev.Encoder.FPS, ev.Percent))
	}
}

func (n *consoleNotifier) OnCompleted(sessionID, outputPath string) {
	select {
	case n.done <- exportResult{outputPath: outputPath}:
	default:
	}
}

func (n *consoleNotifier) OnError(sessionID, code, message string) {
	select {
	case n.done <- exportResult{err: fmt.Errorf("%s: %s", code, message)}:
	default:
	}
}

// Ensure consoleNotifier implements ports.ExportNotifier
var _ ports.ExportNotifier = (*consoleNotifier)(nil)
