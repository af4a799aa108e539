package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"milestone/internal/api"
	"milestone/internal/caldate"
	"milestone/internal/config"
	"milestone/internal/validation"
)

// Container receives rendered output. SetContent replaces whatever the
// container held before; *viewport.Model satisfies it.
type Container interface {
	SetContent(s string)
}

// Navigator moves the program to a route such as "/" or
// "/tasks/date/2024-02-10".
type Navigator interface {
	Navigate(path string) tea.Cmd
}

// Reloader re-reads server state and drops everything transient.
type Reloader interface {
	Reload() tea.Cmd
}

// Scheduler delivers msg after d.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// Alerter shows a short message to the user.
type Alerter interface {
	Alert(text string)
}

// Icons swaps icon shortcodes such as ":chevron-left:" for glyphs.
type Icons interface {
	Replace(s string) string
}

// Dialog is the modal that collects validation responses.
type Dialog interface {
	validation.Dialog
	// Update forwards key input the model does not handle itself.
	Update(msg tea.Msg) tea.Cmd
	// View renders the open dialog; sending marks a submission in flight.
	View(keys config.Keymap, spin string, sending bool) string
	Transcript() string
	SetWidth(width int)
}

// Deps are the collaborators the model needs. Zero fields get defaults in
// New, except Icons, which may stay nil.
type Deps struct {
	Service   api.Service
	Clock     caldate.Clock
	Navigator Navigator
	Reloader  Reloader
	Scheduler Scheduler
	Alerter   Alerter
	Icons     Icons
	Dialog    Dialog
	Logger    *log.Logger
}

// NavigateMsg asks the model to show the route at Path.
type NavigateMsg struct{ Path string }

// ReloadMsg asks the model to drop transient state and refetch.
type ReloadMsg struct{}

// RefreshMsg asks the model to refetch while keeping what is on screen.
type RefreshMsg struct{}

type routeNavigator struct{}

func (routeNavigator) Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

type pageReloader struct{}

func (pageReloader) Reload() tea.Cmd {
	return func() tea.Msg { return ReloadMsg{} }
}

type tickScheduler struct{}

func (tickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// banner is the default Alerter: the last alert is shown under the view.
type banner struct {
	text string
}

func (b *banner) Alert(text string) { b.text = text }

func (b *banner) clear() { b.text = "" }

type iconSet map[string]string

func (s iconSet) Replace(text string) string {
	for code, glyph := range s {
		text = strings.ReplaceAll(text, code, glyph)
	}
	return text
}

var (
	unicodeIcons = iconSet{
		":chevron-left:":  "‹",
		":chevron-right:": "›",
		":calendar:":      "▦",
		":check:":         "✓",
		":send:":          "➤",
	}
	asciiIcons = iconSet{
		":chevron-left:":  "<",
		":chevron-right:": ">",
		":calendar:":      "#",
		":check:":         "x",
		":send:":          ">",
	}
	noIcons = iconSet{
		":chevron-left:":  "",
		":chevron-right:": "",
		":calendar:":      "",
		":check:":         "",
		":send:":          "",
	}
)

// IconsFor maps the icons config value to an icon set.
func IconsFor(name string) Icons {
	switch name {
	case "ascii":
		return asciiIcons
	case "none":
		return noIcons
	default:
		return unicodeIcons
	}
}

// replaceIcons tolerates a missing icon set.
func replaceIcons(icons Icons, s string) string {
	if icons == nil {
		return s
	}
	return icons.Replace(s)
}
