package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pinchat/domain"
	"pinchat/domain/event"
	"pinchat/errors"
)

var upgrader = websocket.Upgrader{}

// newServer runs handler for every websocket connection and returns the
// ws:// URL to reach it.
func newServer(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// sendFrame runs on the server handler goroutine, so it cannot use
// require; a failed write surfaces as a missing event on the client side.
func sendFrame(conn *websocket.Conn, frame string) {
	_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func nextEvent(t *testing.T, a *Adapter) event.Inbound {
	t.Helper()
	select {
	case evt, ok := <-a.Events():
		require.True(t, ok, "event stream closed early")
		return evt
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func waitClosed(t *testing.T, a *Adapter) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-a.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event stream never closed")
		}
	}
}

func TestAdapter_DeliversEventsInOrder(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		sendFrame(conn, `{"event":"host_info","payload":{"host":"srv1","ip":"1.2.3.4"}}`)
		sendFrame(conn, `{"event":"receive_message","payload":{"author":"Alice","message":"uno"}}`)
		sendFrame(conn, `{"event":"receive_message","payload":{"author":"Alice","message":"dos"}}`)
		time.Sleep(time.Second)
	})

	a := Open(url, Options{Logger: zerolog.Nop()})
	defer a.Close()

	require.Equal(t,
		event.HostInfoReceived{Host: domain.HostInfo{Host: "srv1", IP: "1.2.3.4"}},
		nextEvent(t, a))
	require.Equal(t, event.MessageReceived{Author: "Alice", Body: "uno"}, nextEvent(t, a))
	require.Equal(t, event.MessageReceived{Author: "Alice", Body: "dos"}, nextEvent(t, a))
}

func TestAdapter_DialFailure_SurfacesConnectionFailed(t *testing.T) {
	a := Open("ws://127.0.0.1:1/socket", Options{
		DialTimeout: 500 * time.Millisecond,
		Logger:      zerolog.Nop(),
	})
	defer a.Close()

	evt := nextEvent(t, a)
	failed, ok := evt.(event.ConnectionFailed)
	require.True(t, ok, "expected ConnectionFailed, got %T", evt)
	require.NotEmpty(t, failed.Message)
	waitClosed(t, a)
}

func TestAdapter_MalformedPayload_IsConnectionFatal(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		sendFrame(conn, `{"event":"room_created","payload":"not an object"}`)
		time.Sleep(time.Second)
	})

	a := Open(url, Options{Logger: zerolog.Nop()})
	defer a.Close()

	_, ok := nextEvent(t, a).(event.ConnectionFailed)
	require.True(t, ok)
	waitClosed(t, a)
}

func TestAdapter_UnknownEvent_IsSkipped(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		sendFrame(conn, `{"event":"mystery","payload":{}}`)
		sendFrame(conn, `{"event":"join_success"}`)
		time.Sleep(time.Second)
	})

	a := Open(url, Options{Logger: zerolog.Nop()})
	defer a.Close()

	require.Equal(t, event.JoinSucceeded{}, nextEvent(t, a))
}

func TestAdapter_Emit_WritesEnvelope(t *testing.T) {
	frames := make(chan []byte, 1)
	url := newServer(t, func(conn *websocket.Conn) {
		sendFrame(conn, `{"event":"host_info","payload":{"host":"srv1","ip":"1.2.3.4"}}`)
		_, data, err := conn.ReadMessage()
		if err == nil {
			frames <- data
		}
	})

	a := Open(url, Options{Logger: zerolog.Nop()})
	defer a.Close()

	// host_info proves the dial completed; only then is Emit legal.
	nextEvent(t, a)
	require.NoError(t, a.Emit(event.NameCreateRoom, "5"))

	select {
	case data := <-frames:
		require.JSONEq(t, `{"event":"create_room","payload":"5"}`, string(data))
	case <-time.After(3 * time.Second):
		t.Fatal("server never received the frame")
	}
}

func TestAdapter_Close_IsIdempotent(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		sendFrame(conn, `{"event":"host_info","payload":{"host":"srv1","ip":"1.2.3.4"}}`)
		time.Sleep(time.Second)
	})

	a := Open(url, Options{Logger: zerolog.Nop()})
	nextEvent(t, a)

	a.Close()
	a.Close()

	require.ErrorIs(t, a.Emit(event.NameJoinRoom, "1234"), errors.ErrClosed)
	waitClosed(t, a)
}

func TestAdapter_CloseBeforeDialCompletes(t *testing.T) {
	a := Open("ws://127.0.0.1:1/socket", Options{
		DialTimeout: 5 * time.Second,
		Logger:      zerolog.Nop(),
	})
	a.Close()
	a.Close()
	waitClosed(t, a)
}
