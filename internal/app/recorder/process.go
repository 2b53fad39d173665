package recorder

import (
	"os"
	"sync"
	"syscall"
)

// ActiveProcess holds the one child process a recording runs at a time.
// Terminate may be called from a signal or timer goroutine.
type ActiveProcess struct {
	mu         sync.Mutex
	process    *os.Process
	terminated bool
}

// Set stores p as the active child.
func (a *ActiveProcess) Set(p *os.Process) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.process = p
	a.terminated = false
}

// Clear empties the slot once the child has been reaped.
func (a *ActiveProcess) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.process = nil
}

// Terminate asks the active child to stop with SIGTERM, falling back to SIGKILL.
// It reports false when the slot is empty.
func (a *ActiveProcess) Terminate() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.process == nil {
		return false
	}
	if err := a.process.Signal(syscall.SIGTERM); err != nil {
		_ = a.process.Kill()
	}
	a.terminated = true
	return true
}

// Terminated reports whether Terminate reached the current child.
func (a *ActiveProcess) Terminated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.terminated
}
