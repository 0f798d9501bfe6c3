// Package domain contains core concepts of the chat client.
// This file defines the Session and its invariants.
// No transport, UI, or runtime logic should be added here.
package domain

// ConnectionStatus tracks the lifecycle of the single transport handle
// a session owns.
type ConnectionStatus int

const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
)

// MembershipStatus tracks where the session stands relative to a room.
// Creating and Joining are mutually exclusive pending states.
type MembershipStatus int

const (
	MembershipNone MembershipStatus = iota
	MembershipCreating
	MembershipJoining
	MembershipMember
)

// ErrorScope distinguishes connection-fatal errors from request-scoped
// ones. Only connection-scoped errors are terminal for the session.
type ErrorScope int

const (
	ScopeConnection ErrorScope = iota
	ScopeCreate
	ScopeJoin
)

type SessionError struct {
	Scope   ErrorScope
	Message string
}

// Session is one user's client-side state from nickname entry through
// room membership or termination. The zero value is the anonymous state.
//
// Invariants:
//   - Membership == MembershipMember implies CurrentRoomPIN != "" and
//     Connection == StatusConnected.
//   - At most one of MembershipCreating / MembershipJoining holds.
type Session struct {
	Nickname   string
	Connection ConnectionStatus
	Host       HostInfo

	CurrentRoomPIN string
	Membership     MembershipStatus

	// CreatedPIN echoes the PIN of a room this session created, so the
	// room prompt can keep displaying it.
	CreatedPIN string

	// PendingJoinPIN is the last-submitted join target. join_success
	// carries no payload, so it is adopted from here.
	PendingJoinPIN string

	// Inline, non-fatal errors rendered next to their controls.
	CreateError string
	JoinError   string

	// LastError is set for connection-scoped failures and makes the
	// whole session terminal until an explicit retry.
	LastError *SessionError

	// Notice is a transient banner describing the last acknowledged
	// room operation.
	Notice string
}

// Anonymous reports whether no nickname has been committed yet.
func (s Session) Anonymous() bool {
	return s.Nickname == ""
}

// Busy reports whether a room operation is pending acknowledgment.
func (s Session) Busy() bool {
	return s.Membership == MembershipCreating || s.Membership == MembershipJoining
}

// InRoom reports whether the session is an established room member.
func (s Session) InRoom() bool {
	return s.Membership == MembershipMember
}

// ConnectionLost reports whether a connection-scoped error terminated
// the session.
func (s Session) ConnectionLost() bool {
	return s.LastError != nil && s.LastError.Scope == ScopeConnection
}
