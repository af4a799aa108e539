package ui

import (
	"fmt"
	"strings"
	"time"

	"milestone/internal/api"
	"milestone/internal/caldate"
	"milestone/internal/validation"
)

// dayView lists the tasks of one date with a completion checkbox each.
type dayView struct {
	date   caldate.Date
	tasks  []api.Task
	boxes  []validation.Checkbox
	cursor int
}

func newDayView(date caldate.Date, all []api.Task) dayView {
	v := dayView{date: date}
	v.sync(all, false)
	return v
}

// sync rebuilds the list from a snapshot. With keepPending, boxes waiting
// on the server keep their state.
func (v *dayView) sync(all []api.Task, keepPending bool) {
	old := make(map[int]validation.Checkbox, len(v.boxes))
	if keepPending {
		for _, b := range v.boxes {
			if b.State == validation.Pending {
				old[b.TaskID] = b
			}
		}
	}
	v.tasks = api.TasksOn(all, v.date)
	v.boxes = make([]validation.Checkbox, len(v.tasks))
	for i, t := range v.tasks {
		if b, ok := old[t.ID]; ok {
			v.boxes[i] = b
			continue
		}
		v.boxes[i] = validation.NewCheckbox(t)
	}
	v.cursor = clampCursor(v.cursor, len(v.tasks))
}

// box returns the checkbox of taskID, or nil if the task is not listed.
func (v *dayView) box(taskID int) *validation.Checkbox {
	for i := range v.boxes {
		if v.boxes[i].TaskID == taskID {
			return &v.boxes[i]
		}
	}
	return nil
}

func (v *dayView) hasPending() bool {
	for _, b := range v.boxes {
		if b.State == validation.Pending {
			return true
		}
	}
	return false
}

func (v *dayView) current() *validation.Checkbox {
	if len(v.boxes) == 0 {
		return nil
	}
	return &v.boxes[v.cursor]
}

func (v dayView) view(spin string) string {
	var b strings.Builder
	y, m, d := v.date.Parts()
	heading := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("Monday, January 2, 2006")
	b.WriteString(titleStyle.Render("Tasks for " + heading))
	b.WriteString("\n\n")

	if len(v.tasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks for this day."))
		b.WriteString("\n")
		return b.String()
	}
	for i, t := range v.tasks {
		box := v.boxes[i]
		cursor := " "
		if i == v.cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if box.Checked {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, mark, t.Description)
		switch {
		case box.State == validation.Pending:
			line += " " + spin + " validating"
		case box.Disabled:
			line = mutedStyle.Render(line + " :check:")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
