package keepalive

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssantosv/wslkit/pkg/api"
)

// countingBackend records executed commands and optionally blocks each
// call for a fixed duration.
type countingBackend struct {
	mu       sync.Mutex
	commands []string
	delay    time.Duration
	err      error
}

func (b *countingBackend) Execute(ctx context.Context, req *api.ExecRequest) (*api.ExecResult, error) {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	b.commands = append(b.commands, req.Command)
	err := b.err
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &api.ExecResult{}, nil
}

func (b *countingBackend) Kind() api.BackendKind {
	return api.BackendProcess
}

func (b *countingBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commands)
}

func (b *countingBackend) first() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.commands) == 0 {
		return ""
	}
	return b.commands[0]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestStartIssuesTicks(t *testing.T) {
	b := &countingBackend{}
	s := NewSupervisor(b, nil)

	h, err := s.Start("Ubuntu", 10*time.Millisecond)
	require.NoError(t, err)
	defer s.Stop("Ubuntu")

	waitFor(t, func() bool { return b.count() >= 3 })
	assert.Equal(t, "true", b.first())
	assert.True(t, h.Ticks() >= 3)
}

func TestStartIdempotent(t *testing.T) {
	b := &countingBackend{}
	s := NewSupervisor(b, nil)
	defer s.StopAll()

	h1, err := s.Start("Ubuntu", time.Hour)
	require.NoError(t, err)
	h2, err := s.Start("Ubuntu", time.Hour)
	require.NoError(t, err)

	assert.Same(t, h1, h2)
	assert.Equal(t, h1.ID, h2.ID)
}

func TestStopIsCooperativeAndIdempotent(t *testing.T) {
	b := &countingBackend{}
	s := NewSupervisor(b, nil)

	_, err := s.Start("Ubuntu", 5*time.Millisecond)
	require.NoError(t, err)
	waitFor(t, func() bool { return b.count() >= 1 })

	s.Stop("Ubuntu")
	assert.False(t, s.Running("Ubuntu"))

	// no new ticks after stop
	n := b.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, b.count())

	// stopping again, or stopping an unknown target, is a no-op
	s.Stop("Ubuntu")
	s.Stop("never-started")
}

func TestFailedTickKeepsGoing(t *testing.T) {
	b := &countingBackend{err: api.ErrProcessSpawn}
	s := NewSupervisor(b, nil)

	_, err := s.Start("Ubuntu", 5*time.Millisecond)
	require.NoError(t, err)
	defer s.Stop("Ubuntu")

	waitFor(t, func() bool { return b.count() >= 3 })
}

func TestIndependentTargets(t *testing.T) {
	b := &countingBackend{}
	s := NewSupervisor(b, nil)
	defer s.StopAll()

	_, err := s.Start("Ubuntu", 5*time.Millisecond)
	require.NoError(t, err)
	_, err = s.Start("Debian", 5*time.Millisecond)
	require.NoError(t, err)

	assert.True(t, s.Running("Ubuntu"))
	assert.True(t, s.Running("Debian"))

	s.Stop("Ubuntu")
	assert.False(t, s.Running("Ubuntu"))
	assert.True(t, s.Running("Debian"))
}

func TestCommandConcurrentWithTick(t *testing.T) {
	// A tick held mid-flight must not block a caller-issued command
	// against the same target, and both must complete.
	b := &countingBackend{delay: 20 * time.Millisecond}
	s := NewSupervisor(b, nil)

	_, err := s.Start("Ubuntu", time.Millisecond)
	require.NoError(t, err)
	defer s.Stop("Ubuntu")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := b.Execute(context.Background(), &api.ExecRequest{Distro: "Ubuntu", Command: "echo hi"})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("caller command deadlocked against keep-alive tick")
	}
}
