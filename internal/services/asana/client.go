package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/models"
	"golang.org/x/time/rate"
)

// taskOptFields requests custom fields explicitly; the upstream API returns a
// compact record otherwise and the extractor would see nothing.
const taskOptFields = "name,notes,permalink_url,projects.gid,projects.name," +
	"custom_fields.name,custom_fields.type,custom_fields.text_value," +
	"custom_fields.number_value,custom_fields.enum_value.name,custom_fields.enum_values.name"

// Client talks to the upstream task-tracking platform's REST API. All
// responses arrive in a {"data": ...} envelope. The client enforces a rate
// limit and a transport timeout but never retries; retry is delegated to the
// platform's webhook redelivery.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// NewClient creates a client from configuration
func NewClient(cfg common.AsanaConfig, logger arbor.ILogger) *Client {
	timeout := 30 * time.Second
	if d, err := time.ParseDuration(cfg.RequestTimeout); err == nil && d > 0 {
		timeout = d
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 2.0
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// GetTask fetches a task by gid with custom fields expanded
func (c *Client) GetTask(ctx context.Context, gid string) (*models.Task, error) {
	path := fmt.Sprintf("/tasks/%s?opt_fields=%s", url.PathEscape(gid), url.QueryEscape(taskOptFields))

	var task models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", gid, err)
	}
	return &task, nil
}

// CreateSubtask creates a checklist item under the parent task
func (c *Client) CreateSubtask(ctx context.Context, parentGID, name, projectGID string) (*models.Task, error) {
	body := map[string]interface{}{
		"name": name,
	}
	if projectGID != "" {
		body["projects"] = []string{projectGID}
	}

	var subtask models.Task
	path := fmt.Sprintf("/tasks/%s/subtasks", url.PathEscape(parentGID))
	if err := c.do(ctx, http.MethodPost, path, body, &subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask %q under %s: %w", name, parentGID, err)
	}
	return &subtask, nil
}

// UpdateTaskName renames a task
func (c *Client) UpdateTaskName(ctx context.Context, gid, name string) error {
	body := map[string]interface{}{"name": name}
	path := fmt.Sprintf("/tasks/%s", url.PathEscape(gid))
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("failed to rename task %s: %w", gid, err)
	}
	return nil
}

// CreateStory appends a comment to a task
func (c *Client) CreateStory(ctx context.Context, taskGID, text string) error {
	body := map[string]interface{}{"text": text}
	path := fmt.Sprintf("/tasks/%s/stories", url.PathEscape(taskGID))
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("failed to create story on task %s: %w", taskGID, err)
	}
	return nil
}

// ListStories returns the comments attached to a task
func (c *Client) ListStories(ctx context.Context, taskGID string) ([]models.Story, error) {
	path := fmt.Sprintf("/tasks/%s/stories?opt_fields=text,created_at", url.PathEscape(taskGID))

	var stories []models.Story
	if err := c.do(ctx, http.MethodGet, path, nil, &stories); err != nil {
		return nil, fmt.Errorf("failed to list stories for task %s: %w", taskGID, err)
	}
	return stories, nil
}

// ListTasks returns tasks in a project modified since the given time
func (c *Client) ListTasks(ctx context.Context, projectGID string, modifiedSince time.Time) ([]models.Task, error) {
	query := url.Values{}
	query.Set("project", projectGID)
	query.Set("modified_since", modifiedSince.UTC().Format(time.RFC3339))
	query.Set("opt_fields", "name,projects.gid")

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks?"+query.Encode(), nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks for project %s: %w", projectGID, err)
	}
	return tasks, nil
}

// CreateWebhook registers a webhook for a resource and returns its gid
func (c *Client) CreateWebhook(ctx context.Context, resourceGID, targetURL string) (string, error) {
	body := map[string]interface{}{
		"resource": resourceGID,
		"target":   targetURL,
	}

	var webhook struct {
		GID string `json:"gid"`
	}
	if err := c.do(ctx, http.MethodPost, "/webhooks", body, &webhook); err != nil {
		return "", fmt.Errorf("failed to create webhook for %s: %w", resourceGID, err)
	}

	c.logger.Info().
		Str("webhook", webhook.GID).
		Str("resource", resourceGID).
		Str("target", targetURL).
		Msg("Webhook registered")

	return webhook.GID, nil
}

// do executes one API request. Request payloads are wrapped in the platform's
// {"data": ...} envelope and responses are unwrapped from it.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(map[string]interface{}{"data": body})
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upstream API returned %d: %s", resp.StatusCode, summarizeError(data))
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}

	return nil
}

// summarizeError extracts the first error message from an API error payload
func summarizeError(data []byte) string {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && len(payload.Errors) > 0 {
		return payload.Errors[0].Message
	}
	if len(data) > 200 {
		data = data[:200]
	}
	return string(data)
}
