// Package validation holds the concept-validation state machine: the
// per-checkbox transitions, the transcript of one dialog, and the calls
// that look up a task and submit a response.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"milestone/internal/api"
	"milestone/internal/caldate"
)

// ReloadDelay is how long a successful validation waits before reloading.
const ReloadDelay = 3000 * time.Millisecond

// Prompt opens every transcript.
const Prompt = `Please explain what you learned from this task. Be specific about:
1. The concepts you understood
2. How you would apply them
3. Any challenges you faced`

var (
	ErrNotToday      = errors.New("task is not due today")
	ErrEmptyResponse = errors.New("response is empty")
	ErrTaskNotFound  = errors.New("task not found")
	ErrBusy          = errors.New("validation already in progress")
)

type State int

const (
	Idle State = iota
	Pending
	Validated
	Rejected
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Validated:
		return "validated"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Checkbox is the completion control of one task.
type Checkbox struct {
	TaskID   int
	Date     caldate.Date
	Checked  bool
	Disabled bool
	State    State
}

// NewCheckbox mirrors the server state of t. Completed tasks start checked
// and disabled.
func NewCheckbox(t api.Task) Checkbox {
	cb := Checkbox{TaskID: t.ID, Date: t.Date}
	if t.Completed {
		cb.Checked = true
		cb.Disabled = true
		cb.State = Validated
	}
	return cb
}

// Check handles the user checking the box. Only a box dated today may enter
// Pending; any other date leaves it unchecked and returns ErrNotToday.
func (c *Checkbox) Check(today caldate.Date) error {
	if c.Disabled {
		return ErrBusy
	}
	if c.Date != today {
		c.Checked = false
		return ErrNotToday
	}
	c.Checked = true
	c.Disabled = true
	c.State = Pending
	return nil
}

// Resolve applies a server verdict.
func (c *Checkbox) Resolve(res api.ValidationResult) {
	if res.Success {
		c.Checked = true
		c.Disabled = true
		c.State = Validated
		return
	}
	c.reject()
}

// Fail reverts the box after a lookup or transport error.
func (c *Checkbox) Fail() {
	c.reject()
}

// Cancel reverts a pending box when its dialog is dismissed. It reports
// whether anything changed.
func (c *Checkbox) Cancel() bool {
	if c.State != Pending {
		return false
	}
	c.Checked = false
	c.Disabled = false
	c.State = Cancelled
	return true
}

// Settled reports whether the box is in one of its two resting shapes.
func (c Checkbox) Settled() bool {
	return c.Checked == c.Disabled
}

func (c *Checkbox) reject() {
	c.Checked = false
	c.Disabled = false
	c.State = Rejected
}

type Speaker int

const (
	System Speaker = iota
	User
)

func (s Speaker) String() string {
	if s == User {
		return "you"
	}
	return "mentor"
}

type Turn struct {
	Speaker Speaker
	Text    string
}

// Exchange is the transcript of one dialog lifetime.
type Exchange struct {
	TaskID      int
	Description string
	Turns       []Turn
}

// NewExchange starts a transcript with the prompt turn.
func NewExchange(taskID int, description string) *Exchange {
	return &Exchange{
		TaskID:      taskID,
		Description: description,
		Turns:       []Turn{{Speaker: System, Text: Prompt}},
	}
}

// Record appends the user's response and the server feedback.
func (e *Exchange) Record(response string, res api.ValidationResult) {
	e.Turns = append(e.Turns,
		Turn{Speaker: User, Text: response},
		Turn{Speaker: System, Text: res.Feedback},
	)
}

// String renders the transcript as plain text, one block per turn.
func (e *Exchange) String() string {
	return FormatTurns(e.Turns)
}

// FormatTurns renders turns as plain text blocks headed by the speaker.
func FormatTurns(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t.Speaker.String())
		b.WriteString(":\n")
		b.WriteString(t.Text)
	}
	return b.String()
}

// PrepareResponse trims the dialog input and rejects blank text.
func PrepareResponse(input string) (string, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// TaskLister reads the task collection.
type TaskLister interface {
	Tasks(ctx context.Context) ([]api.Task, error)
}

// Describe looks up the description of task id in the task collection.
func Describe(ctx context.Context, src TaskLister, id int) (string, error) {
	tasks, err := src.Tasks(ctx)
	if err != nil {
		return "", fmt.Errorf("describe task %d: %w", id, err)
	}
	t, ok := api.FindTask(tasks, id)
	if !ok {
		return "", fmt.Errorf("describe task %d: %w", id, ErrTaskNotFound)
	}
	return t.Description, nil
}

// Submit posts a prepared response for task id.
func Submit(ctx context.Context, svc api.Service, id int, response string) (api.ValidationResult, error) {
	res, err := svc.ValidateConcept(ctx, id, response)
	if err != nil {
		return api.ValidationResult{}, fmt.Errorf("submit task %d: %w", id, err)
	}
	return res, nil
}

// Dialog collects a response for one task at a time.
type Dialog interface {
	// Open shows the dialog for a task, starting a fresh transcript.
	Open(taskID int, description string)
	// Submit returns the prepared input, or ErrEmptyResponse.
	Submit() (string, error)
	// Show appends a completed round to the transcript and clears input.
	Show(response string, res api.ValidationResult)
	// Close hides the dialog and discards its transcript.
	Close()
	// Active reports the task the dialog is open for.
	Active() (taskID int, open bool)
}
