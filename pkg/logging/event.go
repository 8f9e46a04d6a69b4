package logging

import (
	"encoding/json"
	"time"
)

// Event is the canonical structured event emitted by wslkit operations.
// Required fields: Timestamp, Distro, EventType, Summary. Optional fields
// use omitempty tags.
type Event struct {
	Timestamp time.Time       `json:"ts"`
	Distro    string          `json:"distro"`
	EventType string          `json:"event_type"`
	Summary   string          `json:"summary"`
	Tags      []string        `json:"tags,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Event type constants.
const (
	EventCommand       = "command"
	EventNativeCall    = "native_call"
	EventKeepAliveTick = "keepalive_tick"
	EventLifecycle     = "lifecycle"
	EventBackup        = "backup"
)

// CommandData is the data payload for command events.
type CommandData struct {
	Command    string `json:"command"`
	Backend    string `json:"backend"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
}

// NativeCallData is the data payload for native_call events.
type NativeCallData struct {
	Operation string `json:"operation"`
	Status    string `json:"status"`
}

// KeepAliveTickData is the data payload for keepalive_tick events.
type KeepAliveTickData struct {
	Tick  uint64 `json:"tick"`
	Error string `json:"error,omitempty"`
}

// BackupData is the data payload for backup events.
type BackupData struct {
	Destination string `json:"destination"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// LifecycleData is the data payload for lifecycle events
// (register, unregister, configure).
type LifecycleData struct {
	Operation string `json:"operation"`
	Error     string `json:"error,omitempty"`
}
