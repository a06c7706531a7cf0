package wsclient

import (
	"context"
	"slices"
)

// Conn is a client WebSocket connection.
//
// A Conn belongs to the goroutine running its Executor. New, every method
// and every listener must run there; Conn holds no locks. Workers started
// for the handshake and the closing handshake report back only through
// tasks enqueued on that Executor.
type Conn struct {
	target     Target
	cfg        Config
	logger     Logger
	executor   Executor
	spawner    Spawner
	transport  Transport
	dispatcher Dispatcher

	state    ReadyState
	outbound Sender
	protocol string

	failed      bool
	queueFull   bool // reserved for send backpressure; never set yet
	cleanClose  bool
	closeCode   uint16
	closeReason string
}

// New validates the URL and subprotocols, then starts the opening handshake
// on a worker. Errors are returned before any network activity.
func New(ex Executor, rawURL string, protocols []string, opts ...Option) (*Conn, error) {
	if ex == nil {
		return nil, NewError(ErrorInvalidConfig, "nil executor")
	}
	o := newOptions(opts...)
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	target, err := ParseTarget(rawURL)
	if err != nil {
		return nil, err
	}
	if err := ValidateSubprotocols(protocols); err != nil {
		return nil, err
	}

	c := &Conn{
		target:     target,
		cfg:        o.cfg,
		logger:     o.logger,
		executor:   ex,
		spawner:    o.spawner,
		transport:  o.transport,
		state:      StateConnecting,
		cleanClose: true,
	}

	origin := o.cfg.Origin
	if origin == "" {
		origin = target.Origin()
	}
	c.startHandshake(PendingHandshake{
		Target:    target,
		Origin:    origin,
		Protocols: slices.Clone(protocols),
	})
	return c, nil
}

// URL returns the normalized target URL.
func (c *Conn) URL() string { return c.target.String() }

func (c *Conn) ReadyState() ReadyState { return c.state }

// Protocol returns the subprotocol selected by the server, or "".
func (c *Conn) Protocol() string { return c.protocol }

// OnOpen registers the open listener.
func (c *Conn) OnOpen(fn func(*Event)) { c.dispatcher.SetOnOpen(fn) }

// OnError registers the error listener. It fires right before close when
// the connection failed.
func (c *Conn) OnError(fn func(*Event)) { c.dispatcher.SetOnError(fn) }

// OnClose registers the close listener.
func (c *Conn) OnClose(fn func(*CloseEvent)) { c.dispatcher.SetOnClose(fn) }

// Send transmits data as a text message. It fails with ErrInvalidState while
// connecting and is a no-op once closing. Transmission errors are logged,
// not returned.
func (c *Conn) Send(data string) error {
	switch c.state {
	case StateConnecting:
		return NewError(ErrorInvalidState, "connection is still connecting")
	case StateClosing, StateClosed:
		return nil
	}

	if err := c.outbound.SendText(context.Background(), data); err != nil {
		c.logger.Warn("send failed", map[string]any{"url": c.URL(), "error": err.Error()})
	}
	return nil
}

// Close starts the closing handshake. Invalid arguments are rejected before
// any state changes. The close event fires later, from the executor.
func (c *Conn) Close(opts ...CloseOption) error {
	var args closeArgs
	for _, opt := range opts {
		opt(&args)
	}
	if args.hasCode {
		if err := ValidateCloseCode(args.code); err != nil {
			return err
		}
	}
	if args.hasReason {
		if err := ValidateCloseReason(args.reason); err != nil {
			return err
		}
	}

	switch c.state {
	case StateClosing, StateClosed:
	case StateConnecting:
		c.failed = true
		c.startClosing(0, "")
	case StateOpen:
		if args.hasCode {
			c.closeCode = args.code
		}
		if args.hasReason {
			c.closeReason = args.reason
		}
		code := c.closeCode
		if code == 0 && c.closeReason != "" {
			code = CloseNormal
		}
		c.startClosing(code, c.closeReason)
	}
	return nil
}

func (c *Conn) startClosing(code uint16, reason string) {
	c.state = StateClosing
	if c.outbound != nil {
		c.closeChannel(c.outbound, code, reason)
	}
}
