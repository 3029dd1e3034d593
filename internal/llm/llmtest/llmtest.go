// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"careerlaunch-backend/internal/llm"
)

// Client replies with fixed text per task and records every request.
type Client struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	calls   []llm.Request
}

// New returns an empty scripted client.
func New() *Client {
	return &Client{replies: make(map[string]string)}
}

// Reply scripts the text returned for task.
func (c *Client) Reply(task, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[task] = text
}

// Fail makes every call return err wrapped in llm.ErrModelUnavailable.
func (c *Client) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Calls returns a copy of the recorded requests.
func (c *Client) Calls() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Request(nil), c.calls...)
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if c.err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrModelUnavailable, c.err)
	}
	reply, ok := c.replies[req.Task]
	if !ok {
		return "", fmt.Errorf("%w: no scripted reply for task %q", llm.ErrModelUnavailable, req.Task)
	}
	return reply, nil
}

var _ llm.Client = (*Client)(nil)
