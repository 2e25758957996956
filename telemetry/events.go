// Package telemetry provides emitter health tracking, bookmarking, and snapshots.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventThrottle   EventType = iota // an update emitted fewer particles than were due
	EventFlushError                  // a sink rejected an upload
	EventIdle                        // output dropped below the idle threshold
	EventResume                      // output rose back above the idle threshold
)

func (t EventType) String() string {
	switch t {
	case EventThrottle:
		return "throttle"
	case EventFlushError:
		return "flush_error"
	case EventIdle:
		return "idle"
	case EventResume:
		return "resume"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	Emitter int // index of the emitter in tick samples

	// Optional fields depending on event type
	Backlog int   // throttle: particles due but not allocated
	Err     error // flush_error: the sink's error
}

// NewThrottleEvent creates a throttle event.
func NewThrottleEvent(tick int32, emitter, backlog int) Event {
	return Event{
		Type:    EventThrottle,
		Tick:    tick,
		Emitter: emitter,
		Backlog: backlog,
	}
}

// NewFlushErrorEvent creates a flush failure event.
func NewFlushErrorEvent(tick int32, emitter int, err error) Event {
	return Event{
		Type:    EventFlushError,
		Tick:    tick,
		Emitter: emitter,
		Err:     err,
	}
}

// NewIdleEvent creates an event for an emitter going idle.
func NewIdleEvent(tick int32, emitter int) Event {
	return Event{
		Type:    EventIdle,
		Tick:    tick,
		Emitter: emitter,
	}
}

// NewResumeEvent creates an event for an emitter leaving idle.
func NewResumeEvent(tick int32, emitter int) Event {
	return Event{
		Type:    EventResume,
		Tick:    tick,
		Emitter: emitter,
	}
}
