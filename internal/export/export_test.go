package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"milestone/internal/api"
)

func TestWriteICSRoundTrip(t *testing.T) {
	tasks := []api.Task{
		{ID: 1, Date: "2024-02-10", Completed: true, Description: "Basic syntax"},
		{ID: 2, Date: "2024-02-29", Completed: false, Description: "Control flow"},
		{ID: 3, Date: "not-a-date", Description: "skipped"},
	}
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteICS(&buf, tasks, now); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	if !strings.Contains(buf.String(), "PRODID:"+ProductID) {
		t.Errorf("missing product id:\n%s", buf.String())
	}

	cal, err := ical.ParseCalendar(&buf)
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	tests := []struct {
		uid     string
		start   time.Time
		summary string
		status  string
	}{
		{"milestone-task-1", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "[done] Basic syntax", "CONFIRMED"},
		{"milestone-task-2", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "Control flow", "TENTATIVE"},
	}
	for i, tt := range tests {
		ev := events[i]
		if ev.Id() != tt.uid {
			t.Errorf("event %d uid: got %q, want %q", i, ev.Id(), tt.uid)
		}
		start, err := ev.GetAllDayStartAt()
		if err != nil {
			t.Fatalf("event %d start: %v", i, err)
		}
		if start.Year() != tt.start.Year() || start.Month() != tt.start.Month() || start.Day() != tt.start.Day() {
			t.Errorf("event %d start: got %v, want %v", i, start, tt.start)
		}
		if p := ev.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != tt.summary {
			t.Errorf("event %d summary: got %+v, want %q", i, p, tt.summary)
		}
		if p := ev.GetProperty(ical.ComponentPropertyStatus); p == nil || p.Value != tt.status {
			t.Errorf("event %d status: got %+v, want %q", i, p, tt.status)
		}
	}
}

func TestWriteICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, nil, time.Now()); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") || strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
