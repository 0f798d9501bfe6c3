package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pinchat/projection"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.chatViewport = newChatViewport(msg.Width, msg.Height)
			m.ready = true
		} else {
			resizeChatViewport(&m.chatViewport, msg.Width, msg.Height)
		}
		m.refreshChat()
		return m, nil

	case inboundMsg:
		m.machine.Apply(msg.evt)
		m.refreshChat()
		if m.listening {
			return m, listen(m.machine.Events())
		}
		return m, nil

	case streamClosedMsg:
		m.listening = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.machine.Close()
		return m, tea.Quit
	}

	view := m.machine.View()
	switch view.Mode {
	case projection.ModeConnectionError:
		if msg.String() == "enter" || msg.String() == "r" {
			m.machine.Retry()
			m.listening = false
			m.resetInputs()
		}
		return m, nil

	case projection.ModeNicknamePrompt:
		if msg.String() == "enter" {
			if m.machine.SubmitNickname(m.nickInput.Value()) {
				m.listening = true
				return m, listen(m.machine.Events())
			}
			return m, nil
		}

	case projection.ModeRoomPrompt, projection.ModeRoomPending:
		switch msg.String() {
		case "tab", "shift+tab":
			m.toggleRoomFocus()
			return m, nil
		case "enter":
			if m.roomFocus == fieldCapacity {
				m.machine.SubmitCreateRoom(m.capacityInput.Value())
			} else {
				m.machine.SubmitJoinRoom(m.pinInput.Value())
			}
			return m, nil
		}

	case projection.ModeChat:
		if msg.String() == "enter" {
			if m.machine.SendMessage(m.messageInput.Value()) {
				m.messageInput.Reset()
				m.refreshChat()
			}
			return m, nil
		}
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.machine.View().Mode {
	case projection.ModeNicknamePrompt:
		m.nickInput, cmd = m.nickInput.Update(msg)
	case projection.ModeRoomPrompt, projection.ModeRoomPending:
		if m.roomFocus == fieldCapacity {
			m.capacityInput, cmd = m.capacityInput.Update(msg)
		} else {
			m.pinInput, cmd = m.pinInput.Update(msg)
		}
	case projection.ModeChat:
		m.messageInput, cmd = m.messageInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleRoomFocus() {
	if m.roomFocus == fieldCapacity {
		m.roomFocus = fieldJoinPIN
		m.capacityInput.Blur()
		m.pinInput.Focus()
	} else {
		m.roomFocus = fieldCapacity
		m.pinInput.Blur()
		m.capacityInput.Focus()
	}
}

func (m *Model) resetInputs() {
	m.nickInput.Reset()
	m.nickInput.Focus()
	m.pinInput.Reset()
	m.pinInput.Blur()
	m.messageInput.Reset()
	m.roomFocus = fieldCapacity
	m.capacityInput.Focus()
}

// refreshChat keeps the viewport in sync with the timeline. The message
// input grabs focus the first time the chat view appears.
func (m *Model) refreshChat() {
	if !m.ready {
		return
	}
	view := m.machine.View()
	if view.Mode != projection.ModeChat {
		return
	}
	if !m.messageInput.Focused() {
		m.messageInput.Focus()
	}
	m.chatViewport.SetContent(renderMessages(view))
	m.chatViewport.GotoBottom()
}
