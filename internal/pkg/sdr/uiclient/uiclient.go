// Package uiclient files human-input requests with the dashboard.
package uiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/usecase"
)

// Client posts to the dashboard's /api/human-input endpoint.
type Client struct {
	url  string
	http *http.Client
}

var _ usecase.InputRequester = (*Client)(nil)

func NewClient(uiBaseURL string) *Client {
	return &Client{
		url:  uiBaseURL + "/api/human-input",
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) RequestInput(ctx context.Context, requestID, prompt, inputType string) error {
	body, err := json.Marshal(map[string]string{
		"request_id": requestID,
		"prompt":     prompt,
		"type":       inputType,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("uiclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("uiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("uiclient: deliver request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("uiclient: dashboard returned %s", resp.Status)
	}
	return nil
}
