//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import "pinchat/domain/event"

// Transport is the single connection handle mediating all protocol
// events for one session. Exactly one live transport exists per
// committed nickname; the session that opened it closes it.
type Transport interface {
	// Emit sends a named event, fire and forget. A returned error means
	// the underlying connection is unusable.
	Emit(name string, payload any) error

	// Events delivers decoded inbound events in per-connection FIFO
	// order. The channel is closed when the transport stops.
	Events() <-chan event.Inbound

	// Close is idempotent and safe to call at any point.
	Close()
}

// Dialer opens a transport to the given server address. Dial failures
// are not returned here; they surface as a ConnectionFailed event on
// the transport's own channel.
type Dialer func(serverURL string) Transport
