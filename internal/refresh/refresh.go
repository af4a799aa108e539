// Package refresh fires a callback on a cron schedule.
package refresh

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Refresher runs fire on a standard five-field cron schedule.
type Refresher struct {
	cron *cron.Cron
	spec string
}

// New parses spec and registers fire. An empty spec disables refreshing
// and returns a nil Refresher, which is safe to Start and Stop.
func New(spec string, fire func(), logger *log.Logger) (*Refresher, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid refresh_cron %q: %w", spec, err)
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if logger != nil {
			logger.Debug("scheduled refresh", "cron", spec)
		}
		fire()
	}); err != nil {
		return nil, fmt.Errorf("schedule refresh: %w", err)
	}
	return &Refresher{cron: c, spec: spec}, nil
}

func (r *Refresher) Start() {
	if r == nil {
		return
	}
	r.cron.Start()
}

// Stop halts the schedule and waits for a running callback to return.
func (r *Refresher) Stop() {
	if r == nil {
		return
	}
	<-r.cron.Stop().Done()
}

func (r *Refresher) Spec() string {
	if r == nil {
		return ""
	}
	return r.spec
}
