package wsclient

// Task is a unit of work run by an Executor on its goroutine.
type Task interface {
	Run()
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func()

func (f TaskFunc) Run() { f() }

// Executor runs tasks one at a time, in the order they were enqueued, on a
// single goroutine. Conn mutates its state only from tasks run here.
type Executor interface {
	Enqueue(t Task) error
}

// Spawner starts fire-and-forget workers.
type Spawner interface {
	Spawn(name string, fn func())
}

// SpawnerFunc adapts a plain function to Spawner.
type SpawnerFunc func(name string, fn func())

func (f SpawnerFunc) Spawn(name string, fn func()) { f(name, fn) }

type goSpawner struct{}

func (goSpawner) Spawn(_ string, fn func()) { go fn() }

// establishedTask is queued when the opening handshake succeeded.
type establishedTask struct {
	conn    *Conn
	channel Channel
}

func (t *establishedTask) Run() {
	c := t.conn
	if c.state != StateConnecting {
		// Close ran while connecting: never open, tear the channel down and
		// let the closed task report the failure.
		c.logger.Debug("handshake finished after close", map[string]any{"url": c.URL()})
		c.closeChannel(t.channel.Sender, 0, "")
		return
	}

	c.outbound = t.channel.Sender
	c.protocol = t.channel.Protocol
	// TODO: start a receive loop on t.channel.Receiver to deliver messages
	// and detect server-initiated closes.
	c.state = StateOpen

	c.dispatcher.Fire(&Event{Type: EventOpen, Target: c})
}

// closedTask is queued when the connection is gone: the handshake failed,
// or the closing handshake finished.
type closedTask struct {
	conn *Conn
	err  error
}

func (t *closedTask) Run() {
	c := t.conn
	if c.state == StateClosed {
		c.logger.Warn("connection already closed", map[string]any{"url": c.URL()})
		return
	}
	if t.err != nil {
		c.failed = true
	}
	c.state = StateClosed

	if c.failed || c.queueFull {
		c.failed = false
		c.queueFull = false
		c.cleanClose = false
		c.dispatcher.Fire(&Event{Type: EventError, Target: c, Cancelable: true})
	}

	c.dispatcher.FireClose(&CloseEvent{
		Event:    Event{Type: EventClose, Target: c},
		WasClean: c.cleanClose,
		Code:     c.closeCode,
		Reason:   c.closeReason,
	})
}
