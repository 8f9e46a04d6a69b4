// Package keepalive holds a WSL distribution active by periodically
// issuing a no-op command through an execution backend. Each target has
// at most one supervisor task; stopping uses cooperative cancellation
// observed between ticks, never mid-command.
package keepalive

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/backend"
	"github.com/ssantosv/wslkit/pkg/logging"
)

// DefaultInterval is used when Start is given a non-positive interval.
const DefaultInterval = 30 * time.Second

// tickCommand is the trivial command a tick issues. Running it against a
// distribution with no active session implicitly starts one.
const tickCommand = "true"

// Handle is the ownership token for one running supervisor task.
// It is invalidated by Stop; a stale handle is inert.
type Handle struct {
	// ID uniquely identifies this supervisor run.
	ID string
	// Target is the distribution the task keeps alive.
	Target string

	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Uint64
}

// Ticks reports how many ticks have completed (including failed ones).
func (h *Handle) Ticks() uint64 {
	return h.ticks.Load()
}

// Supervisor manages keep-alive tasks, one per target. Multiple targets
// run independent tasks concurrently.
type Supervisor struct {
	backend backend.Backend
	emitter *logging.Emitter

	mu      sync.Mutex
	handles map[string]*Handle
}

// NewSupervisor creates a supervisor issuing ticks through the given
// backend. emitter may be nil; tick failures are then silently dropped.
func NewSupervisor(b backend.Backend, emitter *logging.Emitter) *Supervisor {
	return &Supervisor{
		backend: b,
		emitter: emitter,
		handles: make(map[string]*Handle),
	}
}

// Start launches a keep-alive task for the target. When a task already
// runs for it, the existing handle is returned: Start is idempotent, not
// an error.
func (s *Supervisor) Start(target string, interval time.Duration) (*Handle, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.handles[target]; ok {
		return h, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		ID:     uuid.New().String(),
		Target: target,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.handles[target] = h

	go s.run(ctx, h, interval)
	return h, nil
}

// Stop cancels the target's task and waits for it to observe the
// cancellation at its next wake-up. Stopping a target with no task is a
// no-op, not an error.
func (s *Supervisor) Stop(target string) {
	s.mu.Lock()
	h, ok := s.handles[target]
	if ok {
		delete(s.handles, target)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	h.cancel()
	<-h.done
}

// Running reports whether a task is live for the target.
func (s *Supervisor) Running(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handles[target]
	return ok
}

// StopAll stops every running task.
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.handles))
	for target, h := range s.handles {
		handles = append(handles, h)
		delete(s.handles, target)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.cancel()
		<-h.done
	}
}

func (s *Supervisor) run(ctx context.Context, h *Handle, interval time.Duration) {
	defer close(h.done)

	// First tick fires immediately so an idle distribution is brought up
	// without waiting a full interval.
	s.tick(h)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(h)
		}
	}
}

// tick issues the no-op command. The command itself runs under a
// background context: cancellation is observed between ticks, not
// mid-command. A failed tick is reported and the loop keeps going.
func (s *Supervisor) tick(h *Handle) {
	_, err := s.backend.Execute(context.Background(), &api.ExecRequest{
		Distro:  h.Target,
		Command: tickCommand,
	})
	n := h.ticks.Add(1)

	if err != nil {
		_ = s.emitter.Emit(logging.EventKeepAliveTick, "keep-alive tick failed", nil,
			&logging.KeepAliveTickData{Tick: n, Error: err.Error()})
		return
	}
	_ = s.emitter.Emit(logging.EventKeepAliveTick, "keep-alive tick", nil,
		&logging.KeepAliveTickData{Tick: n})
}
