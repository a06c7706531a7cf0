package wsclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wsclient-go/wsclient"
	"github.com/vovakirdan/wsclient-go/wsclient/eventloop"
)

type testServer struct {
	*httptest.Server
	origins chan string
	msgs    chan string
	closes  chan websocket.CloseError
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{
		origins: make(chan string, 1),
		msgs:    make(chan string, 8),
		closes:  make(chan websocket.CloseError, 1),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.origins <- r.Header.Get("Origin")
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:       []string{"chat"},
			InsecureSkipVerify: true,
		})
		if err != nil {
			return
		}
		defer c.CloseNow()
		for {
			_, p, err := c.Read(context.Background())
			if err != nil {
				var ce websocket.CloseError
				if !errors.As(err, &ce) {
					ce.Code = -1
				}
				s.closes <- ce
				return
			}
			s.msgs <- string(p)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func startLoop(t *testing.T) *eventloop.Loop {
	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

func recv[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting on channel")
	}
	var zero T
	return zero
}

func TestClientLifecycle(t *testing.T) {
	for _, transport := range []string{wsclient.TransportCoder, wsclient.TransportGorilla} {
		t.Run(transport, func(t *testing.T) {
			srv := newTestServer(t)
			loop := startLoop(t)

			cfg := wsclient.DefaultConfig()
			cfg.Transport = transport
			events := make(chan string, 8)
			closed := make(chan wsclient.CloseEvent, 1)

			require.NoError(t, loop.Post(func() {
				c, err := wsclient.New(loop, srv.wsURL(), []string{"chat"}, wsclient.WithConfig(cfg))
				if err != nil {
					events <- "new: " + err.Error()
					return
				}
				c.OnOpen(func(*wsclient.Event) {
					events <- "open " + c.Protocol() + " " + c.ReadyState().String()
					_ = c.Send("hello")
					_ = c.Close(wsclient.WithCode(1000), wsclient.WithReason("bye"))
					events <- "after close " + c.ReadyState().String()
				})
				c.OnError(func(*wsclient.Event) { events <- "error" })
				c.OnClose(func(ev *wsclient.CloseEvent) {
					events <- "close " + c.ReadyState().String()
					closed <- *ev
				})
			}))

			assert.Equal(t, srv.URL, recv(t, srv.origins))
			assert.Equal(t, "open chat open", recv(t, events))
			assert.Equal(t, "after close closing", recv(t, events))
			assert.Equal(t, "hello", recv(t, srv.msgs))

			ce := recv(t, srv.closes)
			assert.Equal(t, websocket.StatusNormalClosure, ce.Code)
			assert.Equal(t, "bye", ce.Reason)

			assert.Equal(t, "close closed", recv(t, events))
			ev := recv(t, closed)
			assert.True(t, ev.WasClean)
			assert.Equal(t, uint16(1000), ev.Code)
			assert.Equal(t, "bye", ev.Reason)
			assert.Empty(t, events)
		})
	}
}

func TestClientHandshakeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	loop := startLoop(t)

	events := make(chan string, 8)
	closed := make(chan wsclient.CloseEvent, 1)
	require.NoError(t, loop.Post(func() {
		c, err := wsclient.New(loop, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		if err != nil {
			events <- "new: " + err.Error()
			return
		}
		c.OnOpen(func(*wsclient.Event) { events <- "open" })
		c.OnError(func(*wsclient.Event) { events <- "error" })
		c.OnClose(func(ev *wsclient.CloseEvent) {
			events <- "close"
			closed <- *ev
		})
	}))

	assert.Equal(t, "error", recv(t, events))
	assert.Equal(t, "close", recv(t, events))
	ev := recv(t, closed)
	assert.False(t, ev.WasClean)
	assert.Empty(t, events)
}

func TestClientCloseWhileConnecting(t *testing.T) {
	srv := newTestServer(t)
	loop := startLoop(t)

	events := make(chan string, 8)
	require.NoError(t, loop.Post(func() {
		c, err := wsclient.New(loop, srv.wsURL(), nil)
		if err != nil {
			events <- "new: " + err.Error()
			return
		}
		c.OnOpen(func(*wsclient.Event) { events <- "open" })
		c.OnError(func(*wsclient.Event) { events <- "error" })
		c.OnClose(func(ev *wsclient.CloseEvent) {
			if ev.WasClean {
				events <- "clean close"
				return
			}
			events <- "close"
		})
		_ = c.Close()
	}))

	assert.Equal(t, "error", recv(t, events))
	assert.Equal(t, "close", recv(t, events))
	assert.Empty(t, events)
}
