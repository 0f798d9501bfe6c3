package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pinchat/contract"
	"pinchat/domain"
	"pinchat/domain/event"
	"pinchat/mocks"
	"pinchat/session"
)

func newTestModel(t *testing.T) (Model, *session.Machine, *mocks.MockTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)

	events := make(chan event.Inbound)
	tr.EXPECT().Events().Return((<-chan event.Inbound)(events)).AnyTimes()
	tr.EXPECT().Close().AnyTimes()

	machine := session.New("ws://test", func(string) contract.Transport { return tr }, zerolog.Nop())
	m := New(machine, "5", zerolog.Nop())

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return sized.(Model), machine, tr
}

func press(m Model, key tea.KeyMsg) Model {
	next, _ := m.Update(key)
	return next.(Model)
}

func typeText(m Model, text string) Model {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestView_NicknamePrompt(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	require.Contains(t, out, "Bienvenido al chat")
	require.Contains(t, out, "Ingrese su nick")
}

func TestUpdate_EnterSubmitsNickname(t *testing.T) {
	m, machine, _ := newTestModel(t)

	m = typeText(m, "Alice")
	m = press(m, enter)

	require.Equal(t, "Alice", machine.Session().Nickname)
	require.True(t, m.listening)
}

func TestView_RoomPromptCarriesInlineError(t *testing.T) {
	m, machine, _ := newTestModel(t)
	m = typeText(m, "Alice")
	m = press(m, enter)
	machine.Apply(event.HostInfoReceived{Host: domain.HostInfo{Host: "srv1", IP: "1.2.3.4"}})

	// Capacity input is prefilled with "5"; overwrite it with junk.
	m.capacityInput.SetValue("-1")
	m = press(m, enter)

	out := m.View()
	require.Contains(t, out, "Crear Nueva Sala")
	require.Contains(t, out, session.ErrCapacityInvalid)
	require.Contains(t, out, "Unirse a Sala Existente")
}

func TestView_ChatShowsRoomAndHost(t *testing.T) {
	m, machine, tr := newTestModel(t)
	tr.EXPECT().Emit(event.NameCreateRoom, "5").Return(nil)

	m = typeText(m, "Alice")
	m = press(m, enter)
	machine.Apply(event.HostInfoReceived{Host: domain.HostInfo{Host: "srv1", IP: "1.2.3.4"}})

	m = press(m, enter) // capacity field focused, prefilled "5"
	machine.Apply(event.RoomCreated{PIN: "4821"})
	m.refreshChat()

	out := m.View()
	require.Contains(t, out, "Chat en la sala 4821 con Alice")
	require.Contains(t, out, "Conectado desde: srv1 (1.2.3.4)")
}

func TestUpdate_RetryResetsToNicknamePrompt(t *testing.T) {
	m, machine, _ := newTestModel(t)
	m = typeText(m, "Alice")
	m = press(m, enter)
	machine.Apply(event.ConnectionFailed{Message: "lost connection"})

	require.Contains(t, m.View(), "Error de Conexión")

	m = press(m, enter)
	require.True(t, machine.Session().Anonymous())
	require.Contains(t, m.View(), "Bienvenido al chat")
}
