package logging

// Sink is the destination an Emitter hands finished events to.
// Implementations must tolerate concurrent Write calls and must not
// retain or mutate the event.
type Sink interface {
	Write(event *Event) error
	// Close flushes buffered data and releases resources.
	Close() error
}
