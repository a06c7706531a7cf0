package wsclient

// EventType names a lifecycle event.
type EventType string

const (
	EventOpen  EventType = "open"
	EventError EventType = "error"
	EventClose EventType = "close"
)

// Event is fired to the connection's listeners.
type Event struct {
	Type       EventType
	Target     *Conn
	Bubbles    bool
	Cancelable bool

	defaultPrevented bool
}

// PreventDefault marks a cancelable event as canceled. It has no effect on
// events that are not cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener canceled the event.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// CloseEvent is fired once the connection has reached StateClosed.
type CloseEvent struct {
	Event
	WasClean bool
	Code     uint16
	Reason   string
}
