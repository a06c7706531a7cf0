package wsclient

import (
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	var opened, failed int
	var closed *CloseEvent
	var d Dispatcher
	d.SetOnOpen(func(*Event) { opened++ })
	d.SetOnError(func(*Event) { failed++ })
	d.SetOnClose(func(ev *CloseEvent) { closed = ev })

	d.Fire(&Event{Type: EventOpen})
	d.Fire(&Event{Type: EventError})
	d.FireClose(&CloseEvent{Event: Event{Type: EventClose}, WasClean: true, Code: 1000})

	if opened != 1 || failed != 1 {
		t.Fatalf("unexpected counts: open=%d error=%d", opened, failed)
	}
	if closed == nil || !closed.WasClean || closed.Code != 1000 {
		t.Fatalf("unexpected close event: %+v", closed)
	}
}

func TestDispatcherWithoutListeners(t *testing.T) {
	var d Dispatcher
	d.Fire(&Event{Type: EventOpen})
	d.Fire(&Event{Type: EventError})
	d.FireClose(&CloseEvent{})
}

func TestPreventDefaultNeedsCancelable(t *testing.T) {
	ev := &Event{Type: EventOpen}
	ev.PreventDefault()
	if ev.DefaultPrevented() {
		t.Fatalf("non-cancelable event should not be prevented")
	}
	ev = &Event{Type: EventError, Cancelable: true}
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Fatalf("cancelable event should be prevented")
	}
}

func TestErrorMatchesByCode(t *testing.T) {
	err := WrapError(ErrorSyntax, "bad url", errors.New("parse"))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax match")
	}
	if errors.Is(err, ErrInvalidState) {
		t.Fatalf("unexpected ErrInvalidState match")
	}
	if CodeOf(err) != ErrorSyntax || CodeOf(errors.New("plain")) != ErrorUnknown {
		t.Fatalf("unexpected codes")
	}
	if got := ErrorInvalidAccess.String(); got != "invalid_access" {
		t.Fatalf("unexpected code string %q", got)
	}
}
