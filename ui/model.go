// Package ui renders the chat client as a terminal program. It follows
// the Elm architecture: the bubbletea loop serializes key presses and
// inbound transport events into the session machine, and each frame is
// derived from the machine's state through the projection package.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pinchat/domain/event"
	"pinchat/session"
)

// roomField marks which room-prompt input has focus.
type roomField int

const (
	fieldCapacity roomField = iota
	fieldJoinPIN
)

type Model struct {
	machine *session.Machine
	log     zerolog.Logger

	nickInput     textinput.Model
	capacityInput textinput.Model
	pinInput      textinput.Model
	messageInput  textinput.Model
	chatViewport  viewport.Model

	roomFocus roomField
	width     int
	height    int
	ready     bool
	listening bool
}

func New(machine *session.Machine, defaultCapacity string, log zerolog.Logger) Model {
	nick := textinput.New()
	nick.Placeholder = "Nick"
	nick.CharLimit = 32
	nick.Focus()

	capacity := textinput.New()
	capacity.Placeholder = "Ej: 5"
	capacity.CharLimit = 6
	capacity.SetValue(defaultCapacity)
	capacity.Focus()

	pin := textinput.New()
	pin.Placeholder = "Ingresar PIN"
	pin.CharLimit = 12

	message := textinput.New()
	message.Placeholder = "Escribe un mensaje..."
	message.CharLimit = 512

	return Model{
		machine:       machine,
		log:           log,
		nickInput:     nick,
		capacityInput: capacity,
		pinInput:      pin,
		messageInput:  message,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// inboundMsg wraps one decoded transport event for the update loop.
type inboundMsg struct {
	evt event.Inbound
}

// streamClosedMsg signals that the transport's event channel closed.
type streamClosedMsg struct{}

// listen waits for the next inbound event. It re-arms itself after
// every delivery, preserving the transport's FIFO order inside the
// single update loop.
func listen(ch <-chan event.Inbound) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return inboundMsg{evt: evt}
	}
}
