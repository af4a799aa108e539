// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"milestone/internal/api"
)

// Submission records one ValidateConcept call.
type Submission struct {
	TaskID   int
	Response string
}

// FakeService is an in-memory implementation of api.Service for testing.
type FakeService struct {
	mu          sync.Mutex
	tasks       []api.Task
	results     map[int]api.ValidationResult
	taskCalls   int
	submissions []Submission
	messages    []string

	// Error injection for testing
	TasksErr    error
	ValidateErr error
	ChatErr     error
}

// NewFakeService creates a FakeService holding tasks.
func NewFakeService(tasks ...api.Task) *FakeService {
	return &FakeService{
		tasks:   append([]api.Task(nil), tasks...),
		results: make(map[int]api.ValidationResult),
	}
}

// SetResult sets the verdict returned for taskID. Tasks without a result
// get {success: false, feedback: "Try again"}.
func (f *FakeService) SetResult(taskID int, res api.ValidationResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[taskID] = res
}

// Tasks implements api.Service.
func (f *FakeService) Tasks(ctx context.Context) ([]api.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taskCalls++
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}
	out := make([]api.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// ValidateConcept implements api.Service. A successful verdict marks the
// stored task completed, as the real server does.
func (f *FakeService) ValidateConcept(ctx context.Context, taskID int, response string) (api.ValidationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, Submission{TaskID: taskID, Response: response})
	if f.ValidateErr != nil {
		return api.ValidationResult{}, f.ValidateErr
	}
	res, ok := f.results[taskID]
	if !ok {
		res = api.ValidationResult{Success: false, Feedback: "Try again"}
	}
	if res.Success {
		for i := range f.tasks {
			if f.tasks[i].ID == taskID {
				f.tasks[i].Completed = true
			}
		}
	}
	return res, nil
}

// Chat implements api.Service. The reply echoes the message.
func (f *FakeService) Chat(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	if f.ChatErr != nil {
		return "", f.ChatErr
	}
	return "mentor: " + message, nil
}

// Messages returns the recorded Chat messages.
func (f *FakeService) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// TaskCalls reports how many times Tasks was called.
func (f *FakeService) TaskCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taskCalls
}

// Submissions returns the recorded ValidateConcept calls.
func (f *FakeService) Submissions() []Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Submission(nil), f.submissions...)
}
