package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"milestone/internal/api"
	"milestone/internal/config"
	"milestone/internal/validation"
)

const (
	dialogWidth      = 64
	transcriptHeight = 10
	inputHeight      = 4
)

// transcriptPane is a scrolling transcript above a text input.
type transcriptPane struct {
	input      textarea.Model
	transcript viewport.Model
	width      int
}

func newTranscriptPane(width int, placeholder string) transcriptPane {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(inputHeight)
	// blink ticks are not routed back to the input
	ta.Cursor.SetMode(cursor.CursorStatic)

	p := transcriptPane{
		input:      ta,
		transcript: viewport.New(dialogWidth-4, transcriptHeight),
	}
	p.setWidth(width)
	return p
}

// setWidth resizes the pane, capped at dialogWidth.
func (p *transcriptPane) setWidth(width int) {
	if width <= 0 || width > dialogWidth {
		width = dialogWidth
	}
	p.width = width
	p.input.SetWidth(width - 4)
	p.transcript.Width = width - 4
}

func (p *transcriptPane) show(turns []validation.Turn) {
	inner := p.width - 4
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		style := systemTurnStyle
		if t.Speaker == validation.User {
			style = userTurnStyle
		}
		b.WriteString(style.Width(inner).Render(t.Speaker.String() + ": " + t.Text))
	}
	p.transcript.SetContent(b.String())
	p.transcript.GotoBottom()
}

func (p *transcriptPane) clear() {
	p.input.Reset()
	p.transcript.SetContent("")
}

func (p *transcriptPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *transcriptPane) view() string {
	return p.transcript.View() + "\n\n" + p.input.View()
}

var _ Dialog = (*transcriptDialog)(nil)

// transcriptDialog is the default validation dialog. Each Open starts a
// new transcript.
type transcriptDialog struct {
	open     bool
	exchange *validation.Exchange
	pane     transcriptPane
}

func newTranscriptDialog(width int) *transcriptDialog {
	return &transcriptDialog{pane: newTranscriptPane(width, "Type your explanation here...")}
}

func (d *transcriptDialog) Open(taskID int, description string) {
	d.exchange = validation.NewExchange(taskID, description)
	d.open = true
	d.pane.input.Reset()
	d.pane.input.Focus()
	d.pane.show(d.exchange.Turns)
}

func (d *transcriptDialog) Submit() (string, error) {
	return validation.PrepareResponse(d.pane.input.Value())
}

func (d *transcriptDialog) Show(response string, res api.ValidationResult) {
	if d.exchange == nil {
		return
	}
	d.exchange.Record(response, res)
	d.pane.input.Reset()
	d.pane.show(d.exchange.Turns)
}

func (d *transcriptDialog) Close() {
	d.open = false
	d.exchange = nil
	d.pane.clear()
	d.pane.input.Blur()
}

func (d *transcriptDialog) Active() (int, bool) {
	if !d.open || d.exchange == nil {
		return 0, false
	}
	return d.exchange.TaskID, true
}

func (d *transcriptDialog) Transcript() string {
	if d.exchange == nil {
		return ""
	}
	return d.exchange.String()
}

func (d *transcriptDialog) SetWidth(width int) { d.pane.setWidth(width) }

func (d *transcriptDialog) Update(msg tea.Msg) tea.Cmd {
	return d.pane.update(msg)
}

func (d *transcriptDialog) View(keys config.Keymap, spin string, sending bool) string {
	if !d.open || d.exchange == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Validate Your Learning"))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Today's Task:"))
	b.WriteString("\n")
	b.WriteString(d.exchange.Description)
	b.WriteString("\n\n")
	b.WriteString(d.pane.view())
	b.WriteString("\n")
	if sending {
		b.WriteString(spin + " sending...")
	} else {
		b.WriteString(helpStyle.Render(fmt.Sprintf(":send: %s send • %s copy • %s close", keys.Send, keys.Copy, keys.Close)))
	}
	return dialogStyle.Width(d.pane.width).Render(b.String())
}

type copiedMsg struct {
	err error
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}
