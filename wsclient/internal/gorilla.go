package internal

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// closeWait bounds the close frame write and the wait for the peer's reply.
const closeWait = 5 * time.Second

// GorillaConn wraps a gorilla websocket.Conn with the same surface as Conn.
type GorillaConn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
}

func DialGorilla(ctx context.Context, h Handshake, writeTimeout time.Duration) (*GorillaConn, error) {
	d := websocket.Dialer{Subprotocols: h.Protocols}
	ws, resp, err := d.DialContext(ctx, h.URL, h.header())
	if err != nil {
		if resp != nil {
			return nil, errors.Wrapf(err, "handshake with %s rejected (status %d)", h.URL, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "dial %s", h.URL)
	}
	// The peer's close frame ends SendClose's drain; it must not be echoed.
	ws.SetCloseHandler(func(int, string) error { return nil })
	return &GorillaConn{ws: ws, writeTimeout: writeTimeout}, nil
}

func (c *GorillaConn) Subprotocol() string {
	return c.ws.Subprotocol()
}

func (c *GorillaConn) SendText(ctx context.Context, data string) error {
	if err := c.ws.SetWriteDeadline(c.deadline(ctx, c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(data))
}

func (c *GorillaConn) SendClose(code uint16, reason string) error {
	status := int(code)
	if code == 0 {
		status = websocket.CloseNoStatusReceived
	}
	msg := websocket.FormatCloseMessage(status, reason)
	werr := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWait))
	if werr == nil {
		werr = c.drain()
	}
	cerr := c.ws.Close()
	if werr != nil {
		return errors.Wrap(werr, "close handshake")
	}
	return cerr
}

// drain discards messages until the peer's close frame arrives.
func (c *GorillaConn) drain() error {
	if err := c.ws.SetReadDeadline(time.Now().Add(closeWait)); err != nil {
		return err
	}
	for {
		if _, _, err := c.ws.NextReader(); err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				return nil
			}
			return err
		}
	}
}

func (c *GorillaConn) Read(ctx context.Context) ([]byte, bool, error) {
	if err := c.ws.SetReadDeadline(c.deadline(ctx, 0)); err != nil {
		return nil, false, err
	}
	typ, p, err := c.ws.ReadMessage()
	if err != nil {
		return nil, false, err
	}
	return p, typ == websocket.TextMessage, nil
}

// deadline picks the earlier of ctx's deadline and now+timeout. The zero
// time means no deadline.
func (c *GorillaConn) deadline(ctx context.Context, timeout time.Duration) time.Time {
	var d time.Time
	if timeout > 0 {
		d = time.Now().Add(timeout)
	}
	if cd, ok := ctx.Deadline(); ok && (d.IsZero() || cd.Before(d)) {
		d = cd
	}
	return d
}
