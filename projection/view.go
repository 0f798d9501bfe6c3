package projection

import "pinchat/domain"

// Mode is one of the five mutually-exclusive view modes.
type Mode int

const (
	// ModeConnectionError replaces the whole UI until the user retries.
	ModeConnectionError Mode = iota
	// ModeNicknamePrompt asks for a nickname before anything else.
	ModeNicknamePrompt
	// ModeRoomPrompt offers the create/join controls.
	ModeRoomPrompt
	// ModeRoomPending is the room prompt while a create or join awaits
	// server acknowledgment.
	ModeRoomPending
	// ModeChat is the in-room conversation.
	ModeChat
)

// View is everything a renderer needs for one frame.
type View struct {
	Mode Mode

	// ModeConnectionError
	ErrorMessage string

	// ModeRoomPrompt / ModeRoomPending
	Creating    bool
	Joining     bool
	CreateError string
	JoinError   string
	CreatedPIN  string

	// ModeChat
	Nickname string
	RoomPIN  string
	Host     domain.HostInfo
	Messages []domain.Message

	// Transient banner from the last acknowledged room operation.
	Notice string
}

// Select derives the view from the session, first match wins. Pure:
// safe to call on every render.
func Select(s domain.Session, tl *Timeline) View {
	switch {
	case s.ConnectionLost():
		return View{
			Mode:         ModeConnectionError,
			ErrorMessage: s.LastError.Message,
		}

	case s.Anonymous():
		return View{Mode: ModeNicknamePrompt}

	case !s.InRoom():
		mode := ModeRoomPrompt
		if s.Busy() {
			mode = ModeRoomPending
		}
		return View{
			Mode:        mode,
			Creating:    s.Membership == domain.MembershipCreating,
			Joining:     s.Membership == domain.MembershipJoining,
			CreateError: s.CreateError,
			JoinError:   s.JoinError,
			CreatedPIN:  s.CreatedPIN,
			Nickname:    s.Nickname,
			Notice:      s.Notice,
		}

	default:
		v := View{
			Mode:     ModeChat,
			Nickname: s.Nickname,
			RoomPIN:  s.CurrentRoomPIN,
			Host:     s.Host,
			Notice:   s.Notice,
		}
		if tl != nil {
			v.Messages = tl.Messages
		}
		return v
	}
}
