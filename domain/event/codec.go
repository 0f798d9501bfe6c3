package event

import (
	"encoding/json"
	"fmt"

	"pinchat/domain"
	"pinchat/errors"
)

// Envelope is the JSON frame exchanged over the websocket.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode builds a wire frame for an outbound event.
func Encode(name string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", name, err)
		}
		raw = data
	}
	return json.Marshal(Envelope{Event: name, Payload: raw})
}

type errorPayload struct {
	Message string `json:"message"`
}

type pinPayload struct {
	PIN string `json:"pin"`
}

type presencePayload struct {
	UserID string `json:"userId"`
}

// Decode parses one inbound frame into its tagged variant.
//
// A frame naming an event this client does not know yields
// errors.ErrUnknownEvent; the caller may skip it. A known event whose
// payload does not match its fixed shape yields errors.ErrMalformedEvent,
// which the session treats as connection-fatal.
func Decode(data []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
	}

	switch env.Event {
	case NameHostInfo:
		var p domain.HostInfo
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return HostInfoReceived{Host: p}, nil

	case NameConnectionError:
		var p errorPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return ConnectionFailed{Message: p.Message}, nil

	case NameRoomCreated:
		var p pinPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return RoomCreated{PIN: p.PIN}, nil

	case NameCreateError:
		var p errorPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return CreateFailed{Message: p.Message}, nil

	case NameJoinSuccess:
		return JoinSucceeded{}, nil

	case NameJoinError:
		var p errorPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return JoinFailed{Message: p.Message}, nil

	case NameUserJoined:
		var p presencePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return UserJoined{UserID: p.UserID}, nil

	case NameUserLeft:
		var p presencePayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return UserLeft{UserID: p.UserID}, nil

	case NameReceiveMessage:
		var p ChatPayload
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return MessageReceived{Author: p.Author, Body: p.Body}, nil
	}

	return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, env.Event)
}

func unmarshalPayload(env Envelope, dst any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: %s without payload", errors.ErrMalformedEvent, env.Event)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrMalformedEvent, env.Event, err)
	}
	return nil
}
