package logging

import (
	"encoding/json"
	"time"

	"github.com/ssantosv/wslkit/internal/errx"
)

// Emitter provides convenience methods for emitting typed events.
// It stamps the configured distribution name onto every event and
// dispatches to one or more sinks.
//
// A nil *Emitter is safe: every method is a no-op on it, so callers may
// hold one unconditionally.
type Emitter struct {
	distro string
	sinks  []Sink
}

// NewEmitter creates an emitter bound to a distribution name.
func NewEmitter(distro string, sinks ...Sink) *Emitter {
	return &Emitter{distro: distro, sinks: sinks}
}

// Emit constructs an event and writes it to all registered sinks.
// data is the typed payload struct (e.g. *CommandData); nil means no
// payload. Emission is best-effort; the first sink error is returned
// and callers usually discard it.
func (e *Emitter) Emit(eventType, summary string, tags []string, data interface{}) error {
	if e == nil {
		return nil
	}

	var rawData json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return errx.Wrap(ErrMarshalData, err)
		}
		rawData = b
	}

	event := &Event{
		Timestamp: time.Now().UTC(),
		Distro:    e.distro,
		EventType: eventType,
		Summary:   summary,
		Tags:      tags,
		Data:      rawData,
	}

	var firstErr error
	for _, sink := range e.sinks {
		if err := sink.Write(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all sinks, returning the first error.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	var firstErr error
	for _, sink := range e.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
