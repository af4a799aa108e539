package ui

import (
	"strings"
	"testing"
	"time"

	"milestone/internal/api"
)

type recordingContainer struct {
	content string
	calls   int
}

func (c *recordingContainer) SetContent(s string) {
	c.content = s
	c.calls++
}

func TestRenderReplacesContent(t *testing.T) {
	tasks := []api.Task{{ID: 1, Date: "2024-02-10", Completed: true}}
	v := newCalendarView(fixedClock("2024-02-15"), nil)
	c := &recordingContainer{}

	v.render(c, 2024, time.February, tasks)
	if c.calls != 1 || !strings.Contains(c.content, "February 2024") {
		t.Fatalf("first render: calls=%d content=%q", c.calls, c.content)
	}
	if !strings.Contains(c.content, "  S   M   T   W   T   F   S") {
		t.Errorf("weekday row missing:\n%s", c.content)
	}
	if !strings.Contains(c.content, "10•") {
		t.Errorf("task marker missing:\n%s", c.content)
	}
	if !strings.Contains(c.content, "0 day streak • 1 active • 0 missing") {
		t.Errorf("stats line missing:\n%s", c.content)
	}

	v.render(c, 2024, time.March, tasks)
	if c.calls != 2 {
		t.Errorf("calls: got %d", c.calls)
	}
	if strings.Contains(c.content, "February") || !strings.Contains(c.content, "March 2024") {
		t.Errorf("content not replaced:\n%s", c.content)
	}
}

func TestRenderGridRows(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		rows  int
		last  string
	}{
		{2024, time.February, 5, "29"},
		{2023, time.February, 5, "28"},
		{2024, time.April, 5, "30"},
		{2026, time.August, 6, "31"},
		{2015, time.February, 4, "28"},
	}
	for _, tt := range tests {
		v := newCalendarView(fixedClock("2000-01-01"), nil)
		c := &recordingContainer{}
		v.render(c, tt.year, tt.month, nil)

		lines := strings.Split(strings.TrimRight(c.content, "\n"), "\n")
		// header, stats, blank line, weekday row
		grid := lines[4:]
		if len(grid) != tt.rows {
			t.Errorf("%v %d: got %d grid rows, want %d", tt.month, tt.year, len(grid), tt.rows)
			continue
		}
		if !strings.Contains(grid[len(grid)-1], tt.last) {
			t.Errorf("%v %d: last row %q lacks %s", tt.month, tt.year, grid[len(grid)-1], tt.last)
		}
		if len(v.grid.Cells) != v.grid.Offset+v.grid.Days {
			t.Errorf("%v %d: %d cells", tt.month, tt.year, len(v.grid.Cells))
		}
	}
}

func TestRenderIcons(t *testing.T) {
	c := &recordingContainer{}

	v := newCalendarView(fixedClock("2024-02-15"), nil)
	v.render(c, 2024, time.February, nil)
	if !strings.Contains(c.content, ":chevron-left:") {
		t.Errorf("missing icon set should leave shortcodes:\n%s", c.content)
	}

	v = newCalendarView(fixedClock("2024-02-15"), IconsFor("ascii"))
	v.render(c, 2024, time.February, nil)
	if strings.Contains(c.content, ":chevron-left:") || !strings.HasPrefix(c.content, "< ") {
		t.Errorf("ascii icons not applied:\n%s", c.content)
	}

	v = newCalendarView(fixedClock("2024-02-15"), IconsFor("none"))
	v.render(c, 2024, time.February, nil)
	if strings.Contains(c.content, ":") {
		t.Errorf("shortcodes left with icons disabled:\n%s", c.content)
	}
}

func TestPrevNextWrap(t *testing.T) {
	c := &recordingContainer{}
	v := newCalendarView(fixedClock("2024-01-15"), nil)
	v.render(c, 2024, time.January, nil)

	v.prev(c, nil)
	if v.year != 2023 || v.month != time.December {
		t.Errorf("prev from January: got %d %v", v.year, v.month)
	}
	v.next(c, nil)
	v.next(c, nil)
	if v.year != 2024 || v.month != time.February {
		t.Errorf("next twice from December: got %d %v", v.year, v.month)
	}
}

func TestRenderStatsStreak(t *testing.T) {
	tasks := []api.Task{
		{ID: 1, Date: "2024-02-14", Completed: true},
		{ID: 2, Date: "2024-02-15", Completed: true},
		{ID: 3, Date: "2024-02-16", Completed: false},
	}
	v := newCalendarView(fixedClock("2024-02-15"), nil)
	c := &recordingContainer{}
	v.render(c, 2024, time.February, tasks)

	lines := strings.Split(c.content, "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "2 day streak • 2 active • 1 missing") {
		t.Errorf("stats line: %q", lines[1])
	}
}
