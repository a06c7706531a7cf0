package wsclient

import (
	"context"
	"time"

	"github.com/vovakirdan/wsclient-go/wsclient/internal"
)

// Sender is the outbound half of an established connection.
type Sender interface {
	SendText(ctx context.Context, data string) error
	// SendClose sends a close frame and waits for the peer's reply. A zero
	// code sends the frame without a status.
	SendClose(code uint16, reason string) error
}

// Receiver is the inbound half of an established connection.
type Receiver interface {
	Read(ctx context.Context) (data []byte, text bool, err error)
}

// Channel is the result of a successful opening handshake.
type Channel struct {
	Sender   Sender
	Receiver Receiver
	Protocol string
}

// PendingHandshake describes one connection attempt.
type PendingHandshake struct {
	Target    Target
	Origin    string
	Protocols []string
}

// Transport performs the RFC 6455 opening handshake. Handshake blocks and is
// only ever called from a spawned worker.
type Transport interface {
	Handshake(ctx context.Context, p PendingHandshake) (Channel, error)
}

// NewTransport returns the transport named by cfg.Transport.
func NewTransport(cfg Config) Transport {
	if cfg.Transport == TransportGorilla {
		return gorillaTransport{writeTimeout: cfg.WriteTimeout}
	}
	return coderTransport{writeTimeout: cfg.WriteTimeout}
}

type coderTransport struct {
	writeTimeout time.Duration
}

func (t coderTransport) Handshake(ctx context.Context, p PendingHandshake) (Channel, error) {
	c, err := internal.Dial(ctx, p.internal(), t.writeTimeout)
	if err != nil {
		return Channel{}, err
	}
	return Channel{Sender: c, Receiver: c, Protocol: c.Subprotocol()}, nil
}

type gorillaTransport struct {
	writeTimeout time.Duration
}

func (t gorillaTransport) Handshake(ctx context.Context, p PendingHandshake) (Channel, error) {
	c, err := internal.DialGorilla(ctx, p.internal(), t.writeTimeout)
	if err != nil {
		return Channel{}, err
	}
	return Channel{Sender: c, Receiver: c, Protocol: c.Subprotocol()}, nil
}

func (p PendingHandshake) internal() internal.Handshake {
	return internal.Handshake{
		URL:       p.Target.String(),
		Origin:    p.Origin,
		Protocols: p.Protocols,
	}
}

// startHandshake runs the attempt on a worker. The worker only reads fields
// fixed at construction and hands its result to the executor; it never
// touches connection state.
func (c *Conn) startHandshake(p PendingHandshake) {
	transport, timeout, log := c.transport, c.cfg.HandshakeTimeout, c.logger
	log.Debug("connecting", map[string]any{"url": p.Target.String(), "origin": p.Origin})
	c.spawner.Spawn("WebSocket connection to "+c.URL(), func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		ch, err := transport.Handshake(ctx, p)
		if err != nil {
			log.Debug("failed to establish a WebSocket connection", map[string]any{
				"url":   p.Target.String(),
				"error": err.Error(),
			})
			c.enqueue(&closedTask{conn: c, err: err})
			return
		}
		if !c.enqueue(&establishedTask{conn: c, channel: ch}) {
			_ = ch.Sender.SendClose(0, "")
		}
	})
}

// closeChannel runs the closing handshake on a worker and reports the
// connection closed once it finishes. A failed close frame is ignored.
func (c *Conn) closeChannel(s Sender, code uint16, reason string) {
	log := c.logger
	c.spawner.Spawn("WebSocket close of "+c.URL(), func() {
		if err := s.SendClose(code, reason); err != nil {
			log.Debug("close handshake failed", map[string]any{
				"url":   c.target.String(),
				"error": err.Error(),
			})
		}
		c.enqueue(&closedTask{conn: c})
	})
}

// enqueue posts a completion task and reports whether the executor took it.
func (c *Conn) enqueue(t Task) bool {
	if err := c.executor.Enqueue(t); err != nil {
		c.logger.Error("dropping completion task", map[string]any{
			"url":   c.target.String(),
			"error": err.Error(),
		})
		return false
	}
	return true
}
