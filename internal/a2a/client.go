package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client sends tasks to a sibling service's /tasks endpoint.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a client for the given service base URL. Lead searches can
// take minutes, so the default timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

// SendData submits a task carrying a single data part. taskID may be empty,
// in which case one is derived from the operation and context.
func (c *Client) SendData(ctx context.Context, taskID, contextID, operation string, data map[string]interface{}) (*Task, error) {
	if taskID == "" {
		taskID = fmt.Sprintf("%s-%s", operation, contextID)
	}
	envelope := SendRequest{
		ID: uuid.NewString(),
		Message: Message{
			TaskID:    taskID,
			ContextID: contextID,
			MessageID: uuid.NewString(),
			Role:      "user",
			Parts:     []Part{NewDataPart(data)},
			Metadata:  map[string]interface{}{"operation": operation},
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("a2a: encode envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/tasks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("a2a: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("a2a: send to %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	var decoded SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("a2a: decode response: %w", err)
	}
	if decoded.Err != nil {
		return nil, fmt.Errorf("a2a: remote error %d: %s", decoded.Err.Code, decoded.Err.Message)
	}
	if decoded.Result == nil {
		return nil, fmt.Errorf("a2a: response carries neither result nor error")
	}
	if decoded.Result.Status.State == StateFailed {
		return decoded.Result, fmt.Errorf("a2a: task %s failed: %s", decoded.Result.ID, decoded.Result.Status.Message)
	}
	return decoded.Result, nil
}
