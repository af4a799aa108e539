package ui

import (
	"github.com/charmbracelet/lipgloss"

	"milestone/internal/calendar"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	weekdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dayStyle     = lipgloss.NewStyle()
	todayStyle   = lipgloss.NewStyle().Underline(true).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	userTurnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	systemTurnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dialogStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	statusStyles = map[calendar.Status]lipgloss.Style{
		calendar.StatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		calendar.StatusMissed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		calendar.StatusPartial:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
)

// cellStyle combines the status colour with today and cursor emphasis.
func cellStyle(c calendar.Cell, selected bool) lipgloss.Style {
	style := dayStyle
	if s, ok := statusStyles[c.Status]; ok {
		style = s
	}
	if c.Today {
		style = style.Inherit(todayStyle)
	}
	if selected {
		style = style.Inherit(cursorStyle)
	}
	return style
}
