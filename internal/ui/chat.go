package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"milestone/internal/config"
	"milestone/internal/validation"
)

// ChatPath is the route of the mentor chat.
const ChatPath = "/chat"

const (
	alertEmptyMessage = "Please enter a message"
	alertChatFailed   = "Failed to process message"
)

// chatView is a free-form conversation with the mentor. It lives only
// while the chat route is shown.
type chatView struct {
	session int
	turns   []validation.Turn
	sending bool
	pane    transcriptPane
}

type chatRepliedMsg struct {
	session int
	reply   string
	err     error
}

func newChatView(session, width int) *chatView {
	c := &chatView{session: session, pane: newTranscriptPane(width, "Ask your mentor...")}
	c.pane.input.Focus()
	return c
}

func (c *chatView) add(speaker validation.Speaker, text string) {
	c.turns = append(c.turns, validation.Turn{Speaker: speaker, Text: text})
	c.pane.show(c.turns)
}

func (c *chatView) transcript() string {
	return validation.FormatTurns(c.turns)
}

func (c *chatView) view(keys config.Keymap, spin string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mentor Chat"))
	b.WriteString("\n\n")
	if len(c.turns) == 0 {
		b.WriteString(mutedStyle.Render("Ask about anything you are learning."))
		b.WriteString("\n\n")
	}
	b.WriteString(c.pane.view())
	b.WriteString("\n")
	if c.sending {
		b.WriteString(spin + " thinking...")
	} else {
		b.WriteString(helpStyle.Render(fmt.Sprintf(":send: %s send • %s copy • %s back", keys.Send, keys.Copy, keys.Close)))
	}
	return dialogStyle.Width(c.pane.width).Render(b.String())
}

func (m *Model) openChat() {
	m.chatSession++
	m.chat = newChatView(m.chatSession, m.width)
}

// sendChat posts the chat input unless it is blank or a reply is pending.
func (m *Model) sendChat() tea.Cmd {
	if m.chat == nil || m.chat.sending {
		return nil
	}
	text, err := validation.PrepareResponse(m.chat.pane.input.Value())
	if err != nil {
		m.deps.Alerter.Alert(alertEmptyMessage)
		return nil
	}
	m.chat.add(validation.User, text)
	m.chat.pane.input.Reset()
	m.chat.sending = true
	m.logger.Debug("sending chat message", "chars", len(text))

	ctx, svc, session := m.ctx, m.deps.Service, m.chat.session
	return func() tea.Msg {
		reply, err := svc.Chat(ctx, text)
		return chatRepliedMsg{session: session, reply: reply, err: err}
	}
}

// handleChatReply drops replies addressed to a chat that is gone.
func (m *Model) handleChatReply(msg chatRepliedMsg) {
	if m.chat == nil || m.chat.session != msg.session {
		return
	}
	m.chat.sending = false
	if msg.err != nil {
		m.logger.Error("error processing chat message", "err", msg.err)
		m.deps.Alerter.Alert(alertChatFailed)
		return
	}
	m.chat.add(validation.System, msg.reply)
}

func (m *Model) updateChat(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Close:
		return m, m.deps.Navigator.Navigate("/")
	case m.keys.Send:
		return m, m.sendChat()
	case m.keys.Copy:
		return m, copyCmd(m.chat.transcript())
	}
	return m, m.chat.pane.update(msg)
}
