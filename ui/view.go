package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"pinchat/domain"
	"pinchat/projection"
)

const chatChromeHeight = 8

func newChatViewport(width, height int) viewport.Model {
	vp := viewport.New(max(20, width-6), max(5, height-chatChromeHeight))
	return vp
}

func resizeChatViewport(vp *viewport.Model, width, height int) {
	vp.Width = max(20, width-6)
	vp.Height = max(5, height-chatChromeHeight)
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}

	view := m.machine.View()
	switch view.Mode {
	case projection.ModeConnectionError:
		return m.center(m.errorView(view))
	case projection.ModeNicknamePrompt:
		return m.center(m.nicknameView())
	case projection.ModeRoomPrompt, projection.ModeRoomPending:
		return m.center(m.roomView(view))
	default:
		return m.center(m.chatView(view))
	}
}

func (m Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) errorView(view projection.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Error de Conexión"))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render(view.ErrorMessage))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Por favor, intenta de nuevo más tarde o desde otro dispositivo."))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[Enter] Reintentar · [Ctrl+C] Salir"))
	return boxStyle.Render(b.String())
}

func (m Model) nicknameView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bienvenido al chat"))
	b.WriteString("\n\n")
	b.WriteString("Ingrese su nick\n")
	b.WriteString(m.nickInput.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[Enter] Conectarse · [Ctrl+C] Salir"))
	return boxStyle.Render(b.String())
}

func (m Model) roomView(view projection.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Crear o Unirse a una Sala"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Crear Nueva Sala"))
	b.WriteString("\n")
	b.WriteString("Capacidad: " + m.capacityInput.View())
	b.WriteString("\n")
	if view.CreateError != "" {
		b.WriteString(errorStyle.Render(view.CreateError))
		b.WriteString("\n")
	}
	b.WriteString(actionLabel(view.Creating, "Creando...", "Crear Sala"))
	b.WriteString("\n")
	if view.CreatedPIN != "" {
		b.WriteString(fmt.Sprintf("PIN de la sala creada: %s\n", sectionStyle.Render(view.CreatedPIN)))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Unirse a Sala Existente"))
	b.WriteString("\n")
	b.WriteString("PIN: " + m.pinInput.View())
	b.WriteString("\n")
	b.WriteString(actionLabel(view.Joining, "Uniéndose...", "Unirse a Sala"))
	b.WriteString("\n")
	if view.JoinError != "" {
		b.WriteString(errorStyle.Render(view.JoinError))
		b.WriteString("\n")
	}

	if view.Notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(view.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Tab] Cambiar campo · [Enter] Enviar · [Ctrl+C] Salir"))
	return boxStyle.Render(b.String())
}

func (m Model) chatView(view projection.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(
		fmt.Sprintf("Chat en la sala %s con %s", view.RoomPIN, view.Nickname)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(
		fmt.Sprintf("Conectado desde: %s (%s)", view.Host.Host, view.Host.IP)))
	b.WriteString("\n\n")
	b.WriteString(m.chatViewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.messageInput.View())
	if view.Notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(view.Notice))
	}
	return boxStyle.Render(b.String())
}

func renderMessages(view projection.View) string {
	if len(view.Messages) == 0 {
		return mutedStyle.Render("Sin mensajes todavía.")
	}
	lines := lo.Map(view.Messages, func(msg domain.Message, _ int) string {
		style := otherAuthorStyle
		if msg.Author == view.Nickname {
			style = ownAuthorStyle
		}
		return style.Render(msg.Author+": ") + msg.Body
	})
	return strings.Join(lines, "\n")
}

func actionLabel(busy bool, busyLabel, idleLabel string) string {
	if busy {
		return hintStyle.Render(busyLabel)
	}
	return sectionStyle.Render("[ " + idleLabel + " ]")
}
