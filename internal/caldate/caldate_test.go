package caldate

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"leap february", 2024, time.February, 29},
		{"plain february", 2023, time.February, 28},
		{"century non-leap", 1900, time.February, 28},
		{"quad century leap", 2000, time.February, 29},
		{"april", 2024, time.April, 30},
		{"december", 2024, time.December, 31},
		{"january", 2025, time.January, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysIn(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysIn(%d, %s): got %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestFirstWeekday(t *testing.T) {
	if got := FirstWeekday(2024, time.February); got != time.Thursday {
		t.Errorf("2024-02-01: got %s, want Thursday", got)
	}
	if got := FirstWeekday(2023, time.October); got != time.Sunday {
		t.Errorf("2023-10-01: got %s, want Sunday", got)
	}
}

func TestMonthWrap(t *testing.T) {
	y, m := PrevMonth(2024, time.January)
	if y != 2023 || m != time.December {
		t.Errorf("PrevMonth(2024, Jan): got %d %s", y, m)
	}
	y, m = NextMonth(2024, time.December)
	if y != 2025 || m != time.January {
		t.Errorf("NextMonth(2024, Dec): got %d %s", y, m)
	}
	y, m = NextMonth(2024, time.June)
	if y != 2024 || m != time.July {
		t.Errorf("NextMonth(2024, Jun): got %d %s", y, m)
	}
}

func TestNewNormalizes(t *testing.T) {
	if got := New(2024, time.March, 0); got != "2024-02-29" {
		t.Errorf("New(2024, Mar, 0): got %q", got)
	}
	if got := New(2024, time.January, 5); got != "2024-01-05" {
		t.Errorf("New(2024, Jan, 5): got %q", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("2024-02-30"); err == nil {
		t.Error("expected error for 2024-02-30")
	}
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("expected error for garbage")
	}
	d, err := Parse("2024-02-29")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	y, m, day := d.Parts()
	if y != 2024 || m != time.February || day != 29 {
		t.Errorf("Parts: got %d %s %d", y, m, day)
	}
}

func TestOrdering(t *testing.T) {
	if !Date("2024-01-31").Before("2024-02-01") {
		t.Error("2024-01-31 should be before 2024-02-01")
	}
	if Date("2024-02-01").Before("2024-02-01") {
		t.Error("a date is not before itself")
	}
	if !Date("2025-01-01").After("2024-12-31") {
		t.Error("2025-01-01 should be after 2024-12-31")
	}
}

func TestTodayUsesLocalTime(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("UTC+9", 9*60*60)
	defer func() { time.Local = prev }()

	// 20:00 UTC is already the next day nine hours east.
	clock := ClockFunc(func() time.Time {
		return time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC)
	})
	if got := Today(clock); got != "2024-03-11" {
		t.Errorf("Today: got %q, want 2024-03-11", got)
	}
}
