package appwrite

import (
	"context"
	"net/http"
)

// ExecutionRequest describes a function execution.
type ExecutionRequest struct {
	Body    string            `json:"body"`
	Async   bool              `json:"async"`
	Path    string            `json:"path,omitempty"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Execution is the platform's record of a function run.
type Execution struct {
	ID     string `json:"$id"`
	Status string `json:"status"`
}

// CreateExecution triggers a function. Async executions return as soon as
// they are queued.
func (c *Client) CreateExecution(ctx context.Context, functionID string, req ExecutionRequest) (Execution, error) {
	var ex Execution
	if err := c.do(ctx, http.MethodPost, "/functions/"+seg(functionID)+"/executions", nil, req, &ex); err != nil {
		return Execution{}, err
	}
	return ex, nil
}
