package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_ZeroValueIsAnonymous(t *testing.T) {
	var s Session
	require.True(t, s.Anonymous())
	require.False(t, s.Busy())
	require.False(t, s.InRoom())
	require.False(t, s.ConnectionLost())
}

func TestSession_Busy_CoversBothPendingStates(t *testing.T) {
	require.True(t, Session{Membership: MembershipCreating}.Busy())
	require.True(t, Session{Membership: MembershipJoining}.Busy())
	require.False(t, Session{Membership: MembershipMember}.Busy())
	require.False(t, Session{Membership: MembershipNone}.Busy())
}

func TestSession_ConnectionLost_IgnoresRequestScopedErrors(t *testing.T) {
	s := Session{LastError: &SessionError{Scope: ScopeJoin, Message: "Room full"}}
	require.False(t, s.ConnectionLost())

	s.LastError = &SessionError{Scope: ScopeConnection, Message: "lost"}
	require.True(t, s.ConnectionLost())
}

func TestNewMessage_AssignsLocalMetadata(t *testing.T) {
	msg := NewMessage("Alice", "hola")
	require.Equal(t, "Alice", msg.Author)
	require.Equal(t, "hola", msg.Body)
	require.NotZero(t, msg.ID)
	require.False(t, msg.ReceivedAt.IsZero())
}
