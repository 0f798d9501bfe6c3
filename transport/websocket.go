// Package transport implements the websocket transport adapter. It owns
// the single connection handle to the remote coordination service and
// turns the wire into an ordered stream of decoded protocol events.
//
// Failures never cross this layer as errors: a failed dial, a dropped
// connection, or a malformed frame all surface as a ConnectionFailed
// event on the same channel as regular traffic.
package transport

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pinchat/domain/event"
	"pinchat/errors"
)

const defaultDialTimeout = 5 * time.Second

// eventBuffer bounds how far the read pump can run ahead of the UI loop.
const eventBuffer = 32

type Options struct {
	DialTimeout time.Duration
	Logger      zerolog.Logger
}

// Adapter is a contract.Transport backed by one websocket connection.
type Adapter struct {
	url    string
	log    zerolog.Logger
	events chan event.Inbound
	cancel context.CancelFunc

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	closeOnce sync.Once
}

// Open starts connecting to serverURL and returns immediately. The dial
// runs in the background; its outcome is observed on Events, either as
// the server's host_info acknowledgment or as a ConnectionFailed event.
func Open(serverURL string, opts Options) *Adapter {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Adapter{
		url:    serverURL,
		log:    opts.Logger,
		events: make(chan event.Inbound, eventBuffer),
		cancel: cancel,
	}
	go a.run(ctx, opts.DialTimeout)
	return a
}

func (a *Adapter) run(ctx context.Context, dialTimeout time.Duration) {
	defer close(a.events)

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, a.url, nil)
	cancel()
	if err != nil {
		if ctx.Err() == nil {
			a.log.Error().Err(err).Str("url", a.url).Msg("websocket dial failed")
			a.deliver(ctx, event.ConnectionFailed{Message: err.Error()})
		}
		return
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		_ = conn.Close()
		return
	}
	a.conn = conn
	a.mu.Unlock()

	a.log.Debug().Str("url", a.url).Msg("websocket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				a.log.Error().Err(err).Msg("websocket read failed")
				a.deliver(ctx, event.ConnectionFailed{Message: err.Error()})
			}
			return
		}

		evt, err := event.Decode(data)
		if err != nil {
			if stderrors.Is(err, errors.ErrUnknownEvent) {
				a.log.Warn().Err(err).Msg("skipping unknown event")
				continue
			}
			// Malformed payload for a known event: connection-fatal.
			a.log.Error().Err(err).Msg("malformed event payload")
			a.deliver(ctx, event.ConnectionFailed{Message: err.Error()})
			return
		}
		a.deliver(ctx, evt)
	}
}

func (a *Adapter) deliver(ctx context.Context, e event.Inbound) {
	select {
	case a.events <- e:
	case <-ctx.Done():
	}
}

// Emit sends one named event. Encoding or write failures mean the
// connection is unusable; the caller decides whether that is fatal.
func (a *Adapter) Emit(name string, payload any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return errors.ErrClosed
	}
	if a.conn == nil {
		return errors.ErrNotConnected
	}

	data, err := event.Encode(name, payload)
	if err != nil {
		return err
	}
	return a.conn.WriteMessage(websocket.TextMessage, data)
}

// Events returns the ordered inbound stream. Closed when the adapter
// stops, whether by Close or by a fatal connection event.
func (a *Adapter) Events() <-chan event.Inbound {
	return a.events
}

// Close tears the connection down. Idempotent; safe to call when the
// dial never completed.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		a.cancel()

		a.mu.Lock()
		a.closed = true
		conn := a.conn
		a.mu.Unlock()

		if conn != nil {
			_ = conn.Close()
		}
		a.log.Debug().Str("url", a.url).Msg("websocket closed")
	})
}
