// Package export writes a task snapshot as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"milestone/internal/api"
)

const ProductID = "-//milestone//task calendar//EN"

// UID is the stable iCalendar identifier of a task.
func UID(taskID int) string {
	return fmt.Sprintf("milestone-task-%d", taskID)
}

// Calendar builds one all-day VEVENT per task. Tasks with an unparsable
// date are skipped.
func Calendar(tasks []api.Task, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("Milestone tasks")

	for _, t := range tasks {
		if !t.Date.Valid() {
			continue
		}
		y, m, d := t.Date.Parts()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

		ev := cal.AddEvent(UID(t.ID))
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ev.SetSummary(Summary(t))
		ev.SetDescription(t.Description)
		if t.Completed {
			ev.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ev.SetStatus(ical.ObjectStatusTentative)
		}
	}
	return cal
}

// Summary is the event title for t.
func Summary(t api.Task) string {
	if t.Completed {
		return "[done] " + t.Description
	}
	return t.Description
}

// WriteICS serializes tasks to w.
func WriteICS(w io.Writer, tasks []api.Task, now time.Time) error {
	if err := Calendar(tasks, now).SerializeTo(w); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}
