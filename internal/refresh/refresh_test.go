package refresh

import (
	"testing"
)

func TestNewEmptySpec(t *testing.T) {
	for _, spec := range []string{"", "   "} {
		r, err := New(spec, func() {}, nil)
		if err != nil || r != nil {
			t.Errorf("New(%q): got %v, %v", spec, r, err)
		}
		// nil Refresher is inert
		r.Start()
		r.Stop()
		if r.Spec() != "" {
			t.Errorf("nil Spec: got %q", r.Spec())
		}
	}
}

func TestNewInvalidSpec(t *testing.T) {
	tests := []string{
		"every minute",
		"* * *",
		"61 * * * *",
		"@sometimes",
	}
	for _, spec := range tests {
		if _, err := New(spec, func() {}, nil); err == nil {
			t.Errorf("New(%q): expected error", spec)
		}
	}
}

func TestStartStop(t *testing.T) {
	r, err := New(" */15 * * * * ", func() {}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Spec() != "*/15 * * * *" {
		t.Errorf("Spec: got %q", r.Spec())
	}
	entries := r.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d", len(entries))
	}
	r.Start()
	r.Stop()
}

func TestDescriptors(t *testing.T) {
	for _, spec := range []string{"@hourly", "@every 5m"} {
		if _, err := New(spec, func() {}, nil); err != nil {
			t.Errorf("New(%q): %v", spec, err)
		}
	}
}
