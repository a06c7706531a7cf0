package wsclient

// Dispatcher routes lifecycle events to registered callbacks.
type Dispatcher struct {
	onOpen  func(*Event)
	onError func(*Event)
	onClose func(*CloseEvent)
}

func (d *Dispatcher) SetOnOpen(fn func(*Event))       { d.onOpen = fn }
func (d *Dispatcher) SetOnError(fn func(*Event))      { d.onError = fn }
func (d *Dispatcher) SetOnClose(fn func(*CloseEvent)) { d.onClose = fn }

// Fire delivers an open or error event. Close events go through FireClose.
func (d *Dispatcher) Fire(ev *Event) {
	switch ev.Type {
	case EventOpen:
		if d.onOpen != nil {
			d.onOpen(ev)
		}
	case EventError:
		if d.onError != nil {
			d.onError(ev)
		}
	}
}

func (d *Dispatcher) FireClose(ev *CloseEvent) {
	if d.onClose != nil {
		d.onClose(ev)
	}
}
