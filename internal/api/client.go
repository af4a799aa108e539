package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	TasksPath          = "/api/tasks"
	ValidateConceptDir = "/validate_concept/"
	ChatPath           = "/chat/send"

	// RequestIDHeader carries a per-request id so client and server logs line up.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client implements Service over HTTP.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *log.Logger
}

// New creates a client for the server at baseURL. A nil httpClient means
// http.DefaultClient; nil logger discards.
func New(baseURL string, httpClient *http.Client, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base url is empty")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{base: u, http: httpClient, logger: logger}, nil
}

// Tasks implements Service.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	body, err := c.do(ctx, http.MethodGet, TasksPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	var tasks []Task
	if err := decodeValidated(body, tasksSchema, &tasks); err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	return tasks, nil
}

// ValidateConcept implements Service.
func (c *Client) ValidateConcept(ctx context.Context, taskID int, response string) (ValidationResult, error) {
	payload, err := json.Marshal(struct {
		Response string `json:"response"`
	}{Response: response})
	if err != nil {
		return ValidationResult{}, err
	}
	path := ValidateConceptDir + strconv.Itoa(taskID)
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("validate concept: %w", err)
	}
	var res ValidationResult
	if err := decodeValidated(body, validationSchema, &res); err != nil {
		return ValidationResult{}, fmt.Errorf("validate concept: %w", err)
	}
	return res, nil
}

// Chat implements Service.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: message})
	if err != nil {
		return "", err
	}
	body, err := c.do(ctx, http.MethodPost, ChatPath, payload)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	var reply struct {
		Response string `json:"response"`
	}
	if err := decodeValidated(body, chatSchema, &reply); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply.Response, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reqBody)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "path", path, "request_id", reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.logger.Debug("api response", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := errorMessage(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: snippet}
	}
	return body, nil
}

// errorMessage returns the message of an {"error": "..."} body, or the
// trimmed body itself.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
