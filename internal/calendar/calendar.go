// Package calendar computes the month grid and per-day completion status.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"milestone/internal/api"
	"milestone/internal/caldate"
)

// Status summarizes the tasks of one day.
type Status string

const (
	StatusNone      Status = ""
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusPartial   Status = "partial"
)

// Weekdays labels the grid columns, Sunday first.
var Weekdays = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Cell is one slot of the month grid: a blank filler or a day.
type Cell struct {
	Date     caldate.Date
	Day      int
	Empty    bool
	Today    bool
	HasTasks bool
	Status   Status
}

type Month struct {
	Year   int
	Month  time.Month
	Offset int
	Days   int
	Cells  []Cell
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Day returns the cell for day-of-month d.
func (m Month) Day(d int) (Cell, bool) {
	i := m.Offset + d - 1
	if d < 1 || i >= len(m.Cells) {
		return Cell{}, false
	}
	return m.Cells[i], true
}

// DayStatus derives the status of date from that day's tasks.
func DayStatus(date, today caldate.Date, tasks []api.Task) Status {
	if len(tasks) == 0 {
		return StatusNone
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	switch {
	case done == len(tasks):
		return StatusCompleted
	case date.Before(today):
		return StatusMissed
	case done > 0:
		return StatusPartial
	default:
		return StatusNone
	}
}

// Build lays out year/month with leading blanks for the first weekday.
func Build(year int, month time.Month, tasks []api.Task, today caldate.Date) Month {
	offset := int(caldate.FirstWeekday(year, month))
	days := caldate.DaysIn(year, month)

	byDate := make(map[caldate.Date][]api.Task)
	for _, t := range tasks {
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for d := 1; d <= days; d++ {
		date := caldate.New(year, month, d)
		dayTasks := byDate[date]
		cells = append(cells, Cell{
			Date:     date,
			Day:      d,
			Today:    date == today,
			HasTasks: len(dayTasks) > 0,
			Status:   DayStatus(date, today, dayTasks),
		})
	}
	return Month{Year: year, Month: month, Offset: offset, Days: days, Cells: cells}
}

// Stats is the progress summary shown above the grid.
type Stats struct {
	Streak      int
	ActiveDays  int
	MissingDays int
}

// ComputeStats summarizes the snapshot. ActiveDays counts completed tasks
// and MissingDays the rest; Streak counts consecutive days, ending today,
// on which at least one task was completed.
func ComputeStats(tasks []api.Task, today caldate.Date) Stats {
	var s Stats
	done := make(map[caldate.Date]bool)
	for _, t := range tasks {
		if t.Completed {
			s.ActiveDays++
			done[t.Date] = true
		} else {
			s.MissingDays++
		}
	}
	y, m, d := today.Parts()
	for done[caldate.New(y, m, d-s.Streak)] {
		s.Streak++
	}
	return s
}

// DayPath is the route of the per-day task view.
func DayPath(d caldate.Date) string {
	return "/tasks/date/" + string(d)
}

// TaskSource is the part of api.Service the calendar reads.
type TaskSource interface {
	Tasks(ctx context.Context) ([]api.Task, error)
}

// FetchTasks loads the snapshot for rendering. Failures are logged and
// produce an empty snapshot.
func FetchTasks(ctx context.Context, src TaskSource, logger *log.Logger) []api.Task {
	tasks, err := src.Tasks(ctx)
	if err != nil {
		if logger != nil {
			logger.Error("error fetching tasks", "err", err)
		}
		return []api.Task{}
	}
	if tasks == nil {
		return []api.Task{}
	}
	return tasks
}
