// Package api talks to the Milestone server's JSON endpoints.
package api

import (
	"context"

	"milestone/internal/caldate"
)

// Task is a server-owned unit of work scheduled on one date.
type Task struct {
	ID          int          `json:"id"`
	Date        caldate.Date `json:"date"`
	Completed   bool         `json:"completed"`
	Description string       `json:"description"`
	GoalID      int          `json:"goal_id,omitempty"`
}

// ValidationResult is the server's verdict on a concept validation response.
type ValidationResult struct {
	Success  bool   `json:"success"`
	Feedback string `json:"feedback"`
}

// Service is everything the client needs from the server.
// UI code depends on this interface, never on the HTTP client directly.
type Service interface {
	// Tasks returns the full task collection.
	Tasks(ctx context.Context) ([]Task, error)

	// ValidateConcept submits a learning response for one task.
	ValidateConcept(ctx context.Context, taskID int, response string) (ValidationResult, error)

	// Chat sends a free-form message to the mentor and returns its reply.
	Chat(ctx context.Context, message string) (string, error)
}

// TasksOn filters tasks down to one date, keeping order.
func TasksOn(tasks []Task, date caldate.Date) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// FindTask returns the task with the given id.
func FindTask(tasks []Task, id int) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
