package ui

import (
	"fmt"
	"strings"
	"time"

	"milestone/internal/api"
	"milestone/internal/caldate"
	"milestone/internal/calendar"
)

const cellWidth = 4

type calendarView struct {
	year   int
	month  time.Month
	cursor int
	grid   calendar.Month
	stats  calendar.Stats
	clock  caldate.Clock
	icons  Icons
}

func newCalendarView(clock caldate.Clock, icons Icons) calendarView {
	y, m, d := caldate.Today(clock).Parts()
	return calendarView{year: y, month: m, cursor: d, clock: clock, icons: icons}
}

// render replaces the contents of c with the grid for year/month.
func (v *calendarView) render(c Container, year int, month time.Month, tasks []api.Task) {
	v.year, v.month = year, month
	today := caldate.Today(v.clock)
	v.grid = calendar.Build(year, month, tasks, today)
	v.stats = calendar.ComputeStats(tasks, today)
	v.cursor = clampDay(v.cursor, v.grid.Days)
	c.SetContent(replaceIcons(v.icons, v.view()))
}

func (v *calendarView) prev(c Container, tasks []api.Task) {
	y, m := caldate.PrevMonth(v.year, v.month)
	v.render(c, y, m, tasks)
}

func (v *calendarView) next(c Container, tasks []api.Task) {
	y, m := caldate.NextMonth(v.year, v.month)
	v.render(c, y, m, tasks)
}

// move shifts the cursor by delta days, staying inside the month.
func (v *calendarView) move(c Container, tasks []api.Task, delta int) {
	v.cursor = clampDay(v.cursor+delta, v.grid.Days)
	v.render(c, v.year, v.month, tasks)
}

func (v calendarView) selected() caldate.Date {
	return caldate.New(v.year, v.month, v.cursor)
}

func (v calendarView) view() string {
	var b strings.Builder
	b.WriteString(":chevron-left: ")
	b.WriteString(titleStyle.Render(v.grid.Title()))
	b.WriteString(" :chevron-right:   :calendar: Today")
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d day streak • %d active • %d missing",
		v.stats.Streak, v.stats.ActiveDays, v.stats.MissingDays)))
	b.WriteString("\n\n")

	for _, wd := range calendar.Weekdays {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%*s", cellWidth-1, wd)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for i, cell := range v.grid.Cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		if cell.Empty {
			b.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}
		marker := " "
		if cell.HasTasks {
			marker = "•"
		}
		label := fmt.Sprintf("%2d%s", cell.Day, marker)
		b.WriteString(cellStyle(cell, cell.Day == v.cursor).Render(label))
		b.WriteString(" ")
	}
	b.WriteString("\n")
	return b.String()
}

func clampDay(d, days int) int {
	if d < 1 {
		return 1
	}
	if d > days {
		return days
	}
	return d
}
