package ffmpegcli

import (
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test uses /bin/sh")
	}
}

func TestProcess_WaitCarriesFullStatusTail(t *testing.T) {
	requireShell(t)

	// The final status lines must survive into the exit error even when the
	// child dies immediately after writing them. Run repeatedly: losing the
	// tail is a race between the exit path and the stream drain.
	for i := 0; i < 200; i++ {
		proc := newProcess("/bin/sh", []string{"-c", "echo LAST_STATUS_LINE >&2; exit 1"})
		if err := proc.start(nil); err != nil {
			t.Fatalf("start failed: %v", err)
		}
		err := proc.wait()
		if !errors.Is(err, ErrEncodeFailed) {
			t.Fatalf("expected ErrEncodeFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "LAST_STATUS_LINE") {
			t.Fatalf("run %d: exit error lost the status tail: %v", i, err)
		}
	}
}

func TestProcess_WaitForwardsLinesBeforeExit(t *testing.T) {
	requireShell(t)

	var mu sync.Mutex
	var lines []string
	proc := newProcess("/bin/sh", []string{"-c", "echo one >&2; echo two >&2; exit 0"})
	err := proc.start(func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := proc.wait(); err != nil {
		t.Fatalf("wait failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("unexpected lines %v", lines)
	}
}

func TestProcess_KillResolvesCancelled(t *testing.T) {
	requireShell(t)

	proc := newProcess("/bin/sh", []string{"-c", "sleep 30"})
	if err := proc.start(nil); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	proc.kill()

	if err := proc.wait(); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
	if proc.running() {
		t.Error("process still reported running after kill")
	}
}
