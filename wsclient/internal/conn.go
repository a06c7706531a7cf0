// Package internal holds the transport adapters behind wsclient.Transport.
// Each adapter performs the opening handshake with a WebSocket library and
// exposes the result as a send half and a receive half.
package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/pkg/errors"
)

// Handshake is what the adapters need to open a connection.
type Handshake struct {
	URL       string
	Origin    string
	Protocols []string
}

func (h Handshake) header() http.Header {
	header := http.Header{}
	if h.Origin != "" {
		header.Set("Origin", h.Origin)
	}
	return header
}

// Conn wraps websocket.Conn with a write timeout.
type Conn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
}

// Dial performs the opening handshake. The library validates the 101
// response, the Upgrade/Connection headers, Sec-WebSocket-Accept and the
// selected subprotocol.
func Dial(ctx context.Context, h Handshake, writeTimeout time.Duration) (*Conn, error) {
	ws, resp, err := websocket.Dial(ctx, h.URL, &websocket.DialOptions{
		HTTPHeader:   h.header(),
		Subprotocols: h.Protocols,
	})
	if err != nil {
		if resp != nil {
			return nil, errors.Wrapf(err, "handshake with %s rejected (status %d)", h.URL, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "dial %s", h.URL)
	}
	return &Conn{ws: ws, writeTimeout: writeTimeout}, nil
}

// Subprotocol returns the subprotocol selected by the server.
func (c *Conn) Subprotocol() string {
	return c.ws.Subprotocol()
}

// SendText writes one text message.
func (c *Conn) SendText(ctx context.Context, data string) error {
	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}
	return c.ws.Write(ctx, websocket.MessageText, []byte(data))
}

// SendClose runs the closing handshake. A zero code sends a close frame
// without a status.
func (c *Conn) SendClose(code uint16, reason string) error {
	status := websocket.StatusCode(code)
	if code == 0 {
		status = websocket.StatusNoStatusRcvd
	}
	if err := c.ws.Close(status, reason); err != nil {
		return errors.Wrap(err, "close handshake")
	}
	return nil
}

// Read returns the next data message.
func (c *Conn) Read(ctx context.Context) ([]byte, bool, error) {
	typ, p, err := c.ws.Read(ctx)
	if err != nil {
		return nil, false, err
	}
	return p, typ == websocket.MessageText, nil
}
