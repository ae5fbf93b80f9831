package ffmpegcli

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// processState tracks the lifecycle of one child process.
type processState int

const (
	stateNotStarted processState = iota
	stateRunning
	stateExited
	stateKilled
)

// maxTailLines bounds the retained diagnostic output.
const maxTailLines = 100

// process owns a single ffmpeg invocation from spawn to exit. It holds the
// full lifecycle explicitly so a caller can kill it mid-flight without racing
// the exit path.
type process struct {
	mu    sync.Mutex
	cmd   *exec.Cmd
	state processState
	tail  []string

	scanDone chan struct{}
}

func newProcess(path string, args []string) *process {
	return &process{
		cmd:      exec.Command(path, args...),
		state:    stateNotStarted,
		scanDone: make(chan struct{}),
	}
}

// start spawns the child and begins consuming its status stream. Every status
// line is recorded for diagnostics and forwarded to onLine.
func (p *process) start(onLine func(string)) error {
	stderr, err := p.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, err)
	}

	p.mu.Lock()
	p.state = stateRunning
	p.mu.Unlock()

	go func() {
		defer close(p.scanDone)
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanStatusLines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			p.appendTail(line)
			if onLine != nil {
				onLine(line)
			}
		}
	}()

	return nil
}

// wait blocks until the child exits. A zero exit resolves cleanly; a kill
// resolves as ErrCancelled; any other non-zero exit resolves as
// ErrEncodeFailed carrying the captured status output.
//
// The status stream must be fully drained before calling cmd.Wait: Wait
// closes the stderr pipe on child exit, and a read still in flight would lose
// the final lines of diagnostic output.
func (p *process) wait() error {
	<-p.scanDone
	err := p.cmd.Wait()

	p.mu.Lock()
	killed := p.state == stateKilled
	if !killed {
		p.state = stateExited
	}
	tail := strings.Join(p.tail, "\n")
	p.mu.Unlock()

	if killed {
		return ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("%w: %s\n%s", ErrEncodeFailed, err, tail)
	}
	return nil
}

// kill terminates a running child. Safe to call from any goroutine.
func (p *process) kill() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != stateRunning {
		return
	}
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	p.state = stateKilled
}

// running reports whether the child is still alive.
func (p *process) running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == stateRunning
}

func (p *process) appendTail(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tail = append(p.tail, line)
	if len(p.tail) > maxTailLines {
		p.tail = p.tail[len(p.tail)-maxTailLines:]
	}
}

// scanStatusLines splits on \r as well as \n; ffmpeg rewrites its status line
// with carriage returns while encoding.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
