// Package event defines the named-event protocol spoken with the remote
// coordination service: one tagged variant per event name, with a fixed
// payload shape per tag.
package event

import "pinchat/domain"

// Wire-level event names.
const (
	NameHostInfo        = "host_info"
	NameConnectionError = "connection_error"
	NameCreateRoom      = "create_room"
	NameRoomCreated     = "room_created"
	NameCreateError     = "create_error"
	NameJoinRoom        = "join_room"
	NameJoinSuccess     = "join_success"
	NameJoinError       = "join_error"
	NameUserJoined      = "user_joined"
	NameUserLeft        = "user_left"
	NameSendMessage     = "send_message"
	NameReceiveMessage  = "receive_message"
)

// Inbound is a decoded server-to-client event.
type Inbound interface {
	EventName() string
}

// HostInfoReceived acknowledges the connection and carries informational
// host data.
type HostInfoReceived struct {
	Host domain.HostInfo
}

func (HostInfoReceived) EventName() string { return NameHostInfo }

// ConnectionFailed reports a rejected or dropped connection. It is
// terminal: the transport must be torn down on receipt.
type ConnectionFailed struct {
	Message string
}

func (ConnectionFailed) EventName() string { return NameConnectionError }

type RoomCreated struct {
	PIN string
}

func (RoomCreated) EventName() string { return NameRoomCreated }

type CreateFailed struct {
	Message string
}

func (CreateFailed) EventName() string { return NameCreateError }

// JoinSucceeded carries no payload; the client correlates it to the
// last-submitted join PIN.
type JoinSucceeded struct{}

func (JoinSucceeded) EventName() string { return NameJoinSuccess }

type JoinFailed struct {
	Message string
}

func (JoinFailed) EventName() string { return NameJoinError }

type UserJoined struct {
	UserID string
}

func (UserJoined) EventName() string { return NameUserJoined }

type UserLeft struct {
	UserID string
}

func (UserLeft) EventName() string { return NameUserLeft }

type MessageReceived struct {
	Author string
	Body   string
}

func (MessageReceived) EventName() string { return NameReceiveMessage }

// ChatPayload is the wire shape of send_message and receive_message.
type ChatPayload struct {
	Author string `json:"author"`
	Body   string `json:"message"`
}
