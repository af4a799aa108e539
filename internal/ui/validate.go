package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"milestone/internal/api"
	"milestone/internal/caldate"
	"milestone/internal/validation"
)

const (
	alertNotToday      = "You can only complete tasks for today!"
	alertEmptyResponse = "Please enter your response"
	alertSubmitFailed  = "An error occurred. Please try again."
	alertInvalidDate   = "Invalid date format"
)

type describedMsg struct {
	taskID      int
	description string
	err         error
}

type validatedMsg struct {
	taskID   int
	response string
	res      api.ValidationResult
	err      error
}

// reloadDueMsg fires once the post-validation delay has passed.
type reloadDueMsg struct{}

// toggle handles the checkbox under the cursor being checked.
func (m *Model) toggle() tea.Cmd {
	box := m.day.current()
	if box == nil || box.Disabled {
		return nil
	}
	// one validation at a time: the dialog belongs to the pending box
	if m.day.hasPending() {
		m.logger.Debug("validation already in progress", "task", box.TaskID)
		return nil
	}
	if err := box.Check(caldate.Today(m.deps.Clock)); err != nil {
		if errors.Is(err, validation.ErrNotToday) {
			m.deps.Alerter.Alert(alertNotToday)
		}
		return nil
	}
	m.logger.Debug("validation pending", "task", box.TaskID)
	return m.describeCmd(box.TaskID)
}

func (m *Model) describeCmd(taskID int) tea.Cmd {
	ctx, svc := m.ctx, m.deps.Service
	return func() tea.Msg {
		desc, err := validation.Describe(ctx, svc, taskID)
		return describedMsg{taskID: taskID, description: desc, err: err}
	}
}

func (m *Model) handleDescribed(msg describedMsg) tea.Cmd {
	box := m.day.box(msg.taskID)
	if box == nil || box.State != validation.Pending {
		return nil
	}
	if msg.err != nil {
		m.logger.Error("error fetching task data", "task", msg.taskID, "err", msg.err)
		box.Fail()
		return nil
	}
	m.sending = false
	m.dialog.Open(msg.taskID, msg.description)
	return nil
}

// submit sends the dialog input unless it is blank or a send is running.
func (m *Model) submit() tea.Cmd {
	id, open := m.activeDialog()
	if !open || m.sending {
		return nil
	}
	text, err := m.dialog.Submit()
	if err != nil {
		m.deps.Alerter.Alert(alertEmptyResponse)
		return nil
	}
	m.sending = true
	m.logger.Debug("submitting response", "task", id, "chars", len(text))

	ctx, svc := m.ctx, m.deps.Service
	return func() tea.Msg {
		res, err := validation.Submit(ctx, svc, id, text)
		return validatedMsg{taskID: id, response: text, res: res, err: err}
	}
}

func (m *Model) handleValidated(msg validatedMsg) tea.Cmd {
	box := m.day.box(msg.taskID)
	id, open := m.activeDialog()
	showing := open && id == msg.taskID

	if msg.err != nil {
		m.logger.Error("error submitting response", "task", msg.taskID, "err", msg.err)
		m.deps.Alerter.Alert(alertSubmitFailed)
		if box != nil {
			box.Fail()
		}
		if showing {
			m.sending = false
		}
		return nil
	}

	m.logger.Info("validation result", "task", msg.taskID, "success", msg.res.Success)
	if box != nil {
		box.Resolve(msg.res)
	}
	if showing {
		m.sending = false
		m.dialog.Show(msg.response, msg.res)
	}
	if msg.res.Success {
		return m.deps.Scheduler.After(validation.ReloadDelay, reloadDueMsg{})
	}
	return nil
}

// closeDialog dismisses the dialog, cancelling its checkbox if pending.
func (m *Model) closeDialog() {
	id, open := m.activeDialog()
	if !open {
		return
	}
	m.dialog.Close()
	m.sending = false
	if box := m.day.box(id); box != nil && box.Cancel() {
		m.logger.Debug("validation cancelled", "task", id)
	}
}

func (m *Model) activeDialog() (int, bool) {
	return m.dialog.Active()
}
