// Package session drives the client's connection and room lifecycle:
// anonymous -> connecting -> roomless -> creating/joining -> in-room,
// with a terminal connection-error state reachable once connecting has
// begun. It owns the transport handle and the message timeline for its
// lifetime and contains no rendering logic.
//
// The machine is not safe for concurrent use. User actions and inbound
// events are expected to arrive interleaved on a single goroutine (the
// UI loop serializes them).
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pinchat/contract"
	"pinchat/domain"
	"pinchat/domain/event"
	"pinchat/projection"
)

// ErrCapacityInvalid is the inline validation message shown when the
// room capacity is not a strictly positive integer. It never reaches
// the transport.
const ErrCapacityInvalid = "La capacidad debe ser un número mayor a 0"

type Machine struct {
	serverURL string
	dial      contract.Dialer
	log       zerolog.Logger

	session   domain.Session
	timeline  *projection.Timeline
	transport contract.Transport
}

func New(serverURL string, dial contract.Dialer, log zerolog.Logger) *Machine {
	return &Machine{
		serverURL: serverURL,
		dial:      dial,
		log:       log,
	}
}

// Session returns a copy of the current session state.
func (m *Machine) Session() domain.Session {
	return m.session
}

// View derives the current view mode and its data. Pure read.
func (m *Machine) View() projection.View {
	return projection.Select(m.session, m.timeline)
}

// Events exposes the inbound stream of the active transport, or nil
// when no transport is open.
func (m *Machine) Events() <-chan event.Inbound {
	if m.transport == nil {
		return nil
	}
	return m.transport.Events()
}

// SubmitNickname commits a nickname and opens the transport. Reports
// whether a connection attempt started. Submitting a new nickname while
// a transport is live closes the old handle first: one handle per
// nickname, never two.
func (m *Machine) SubmitNickname(raw string) bool {
	nick := strings.TrimSpace(raw)
	if nick == "" {
		return false
	}

	if m.transport != nil {
		m.transport.Close()
	}

	m.session = domain.Session{
		Nickname:   nick,
		Connection: domain.StatusConnecting,
	}
	m.timeline = projection.NewTimeline(nick)
	m.transport = m.dial(m.serverURL)

	m.log.Info().Str("nickname", nick).Str("server", m.serverURL).Msg("connecting")
	return true
}

// SubmitCreateRoom validates the capacity locally and requests a new
// room. An invalid capacity surfaces inline and nothing is emitted.
func (m *Machine) SubmitCreateRoom(capacity string) {
	if !m.roomless() {
		return
	}

	capacity = strings.TrimSpace(capacity)
	n, err := strconv.Atoi(capacity)
	if err != nil || n <= 0 {
		m.session.CreateError = ErrCapacityInvalid
		return
	}

	m.session.CreateError = ""
	m.session.Notice = ""
	m.session.Membership = domain.MembershipCreating

	// The service accepts the capacity as the raw string the user typed.
	if err := m.transport.Emit(event.NameCreateRoom, capacity); err != nil {
		m.fail(err)
	}
}

// SubmitJoinRoom requests membership in an existing room. The PIN is
// opaque; only non-emptiness is checked client-side.
func (m *Machine) SubmitJoinRoom(pin string) {
	if !m.roomless() {
		return
	}

	pin = strings.TrimSpace(pin)
	if pin == "" {
		return
	}

	m.session.JoinError = ""
	m.session.Notice = ""
	m.session.PendingJoinPIN = pin
	m.session.Membership = domain.MembershipJoining

	if err := m.transport.Emit(event.NameJoinRoom, pin); err != nil {
		m.fail(err)
	}
}

// SendMessage emits a chat message and appends it to the local timeline
// immediately (optimistic echo); the server does not relay a sender's
// message back to its own connection. Reports whether a send happened.
func (m *Machine) SendMessage(body string) bool {
	body = strings.TrimSpace(body)
	if body == "" || !m.session.InRoom() || m.session.Connection != domain.StatusConnected {
		return false
	}

	payload := event.ChatPayload{Author: m.session.Nickname, Body: body}
	if err := m.transport.Emit(event.NameSendMessage, payload); err != nil {
		m.fail(err)
		return false
	}

	m.timeline.Append(domain.NewMessage(m.session.Nickname, body))
	return true
}

// Retry abandons a terminated session and starts over from anonymous.
func (m *Machine) Retry() {
	if m.transport != nil {
		m.transport.Close()
		m.transport = nil
	}
	m.session = domain.Session{}
	m.timeline = nil
	m.log.Info().Msg("session reset")
}

// Close tears down the transport without resetting state. Used on
// program exit.
func (m *Machine) Close() {
	if m.transport != nil {
		m.transport.Close()
	}
}

// Apply feeds one inbound event through the transition table. Events
// that do not match the current state are logged and dropped.
func (m *Machine) Apply(e event.Inbound) {
	switch e := e.(type) {
	case event.HostInfoReceived:
		if m.session.Connection != domain.StatusConnecting {
			m.drop(e)
			return
		}
		m.session.Host = e.Host
		m.session.Connection = domain.StatusConnected
		m.session.LastError = nil
		m.log.Info().Str("host", e.Host.Host).Str("ip", e.Host.IP).Msg("connected")

	case event.ConnectionFailed:
		if m.session.Connection == domain.StatusDisconnected {
			m.drop(e)
			return
		}
		if m.transport != nil {
			m.transport.Close()
		}
		m.session.Connection = domain.StatusDisconnected
		m.session.LastError = &domain.SessionError{
			Scope:   domain.ScopeConnection,
			Message: e.Message,
		}
		m.log.Error().Str("reason", e.Message).Msg("connection lost")

	case event.RoomCreated:
		if m.session.Membership != domain.MembershipCreating {
			m.drop(e)
			return
		}
		m.session.CurrentRoomPIN = e.PIN
		m.session.CreatedPIN = e.PIN
		m.session.Membership = domain.MembershipMember
		m.session.CreateError = ""
		m.session.JoinError = ""
		m.session.Notice = fmt.Sprintf("Sala creada con PIN: %s", e.PIN)
		m.log.Info().Str("pin", e.PIN).Msg("room created")

	case event.CreateFailed:
		if m.session.Membership != domain.MembershipCreating {
			m.drop(e)
			return
		}
		m.session.Membership = domain.MembershipNone
		m.session.CreateError = e.Message
		m.session.Notice = fmt.Sprintf("Error al crear la sala: %s", e.Message)
		m.log.Warn().Str("reason", e.Message).Msg("room creation failed")

	case event.JoinSucceeded:
		if m.session.Membership != domain.MembershipJoining {
			m.drop(e)
			return
		}
		m.session.CurrentRoomPIN = m.session.PendingJoinPIN
		m.session.Membership = domain.MembershipMember
		m.session.JoinError = ""
		m.session.Notice = fmt.Sprintf("Te has unido a la sala %s", m.session.CurrentRoomPIN)
		m.log.Info().Str("pin", m.session.CurrentRoomPIN).Msg("joined room")

	case event.JoinFailed:
		if m.session.Membership != domain.MembershipJoining {
			m.drop(e)
			return
		}
		m.session.Membership = domain.MembershipNone
		m.session.CurrentRoomPIN = ""
		m.session.PendingJoinPIN = ""
		m.session.JoinError = e.Message
		m.session.Notice = fmt.Sprintf("Error al unirse: %s", e.Message)
		m.log.Warn().Str("reason", e.Message).Msg("join failed")

	case event.MessageReceived:
		if !m.session.InRoom() {
			m.drop(e)
			return
		}
		m.timeline.Append(domain.NewMessage(e.Author, e.Body))

	case event.UserJoined:
		// Presence is informational only; no UI change.
		m.log.Info().Str("userId", e.UserID).Str("pin", m.session.CurrentRoomPIN).
			Msg("user joined room")

	case event.UserLeft:
		m.log.Info().Str("userId", e.UserID).Str("pin", m.session.CurrentRoomPIN).
			Msg("user left room")

	default:
		m.drop(e)
	}
}

// roomless reports whether the session is connected with no room and no
// pending operation, the only state where create/join may be submitted.
func (m *Machine) roomless() bool {
	return m.session.Connection == domain.StatusConnected &&
		m.session.Membership == domain.MembershipNone
}

// fail converts a local transport failure into the same terminal path a
// server-reported connection_error takes.
func (m *Machine) fail(err error) {
	m.Apply(event.ConnectionFailed{Message: err.Error()})
}

func (m *Machine) drop(e event.Inbound) {
	m.log.Warn().Str("event", e.EventName()).Msg("event does not match session state, dropped")
}
