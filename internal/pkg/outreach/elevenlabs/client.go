// Package elevenlabs is a minimal client for the ElevenLabs conversational
// AI API: start an outbound phone call through the Twilio integration and
// poll the conversation until the transcript is ready.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sernur/SalesShortcut/internal/retry"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Client talks to the ElevenLabs REST API.
type Client struct {
	baseURL       string
	apiKey        string
	agentID       string
	phoneNumberID string
	http          *http.Client
}

// NewFromEnv reads ELEVENLABS_API_KEY, ELEVENLABS_AGENT_ID and
// ELEVENLABS_PHONE_NUMBER_ID.
func NewFromEnv() (*Client, error) {
	key := os.Getenv("ELEVENLABS_API_KEY")
	agentID := os.Getenv("ELEVENLABS_AGENT_ID")
	phoneID := os.Getenv("ELEVENLABS_PHONE_NUMBER_ID")
	if key == "" || agentID == "" || phoneID == "" {
		return nil, errors.New("elevenlabs: ELEVENLABS_API_KEY, ELEVENLABS_AGENT_ID and ELEVENLABS_PHONE_NUMBER_ID are required")
	}

	baseURL := os.Getenv("ELEVENLABS_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        key,
		agentID:       agentID,
		phoneNumberID: phoneID,
		http:          &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// CallRequest describes one outbound call.
type CallRequest struct {
	ToNumber string
	Prompt   string
}

type outboundCallBody struct {
	AgentID            string              `json:"agent_id"`
	AgentPhoneNumberID string              `json:"agent_phone_number_id"`
	ToNumber           string              `json:"to_number"`
	InitiationData     *initiationData     `json:"conversation_initiation_client_data,omitempty"`
}

type initiationData struct {
	ConversationConfigOverride conversationOverride `json:"conversation_config_override"`
}

type conversationOverride struct {
	Agent agentOverride `json:"agent"`
}

type agentOverride struct {
	Prompt promptOverride `json:"prompt"`
}

type promptOverride struct {
	Prompt string `json:"prompt"`
}

type outboundCallResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// StartCall places the call and returns the conversation ID to poll.
func (c *Client) StartCall(ctx context.Context, req CallRequest) (string, error) {
	body := outboundCallBody{
		AgentID:            c.agentID,
		AgentPhoneNumberID: c.phoneNumberID,
		ToNumber:           req.ToNumber,
	}
	if req.Prompt != "" {
		body.InitiationData = &initiationData{
			ConversationConfigOverride: conversationOverride{
				Agent: agentOverride{Prompt: promptOverride{Prompt: req.Prompt}},
			},
		}
	}

	var resp outboundCallResponse
	if err := c.do(ctx, http.MethodPost, "/v1/convai/twilio/outbound-call", body, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.ConversationID == "" {
		return "", fmt.Errorf("elevenlabs: call not placed: %s", resp.Message)
	}
	return resp.ConversationID, nil
}

// TranscriptTurn is one side of the recorded conversation.
type TranscriptTurn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Conversation is the poll result for a call.
type Conversation struct {
	Status     string           `json:"status"`
	Transcript []TranscriptTurn `json:"transcript"`
}

// Done reports whether the conversation reached a terminal state.
func (c *Conversation) Done() bool {
	switch c.Status {
	case "done", "failed":
		return true
	}
	return false
}

// Text flattens the transcript into one readable block.
func (c *Conversation) Text() string {
	var b strings.Builder
	for _, turn := range c.Transcript {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Message)
	}
	return b.String()
}

// GetConversation fetches the call state once.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, http.MethodGet, "/v1/convai/conversations/"+conversationID, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// WaitForConversation polls until the call completes or the context expires.
// The poll interval uses the shared backoff, reset each time so the wait can
// outlast the backoff's attempt cap while the call is still in progress.
func (c *Client) WaitForConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	backoff := retry.NewDefault()
	for {
		conv, err := c.GetConversation(ctx, conversationID)
		if err == nil && conv.Done() {
			return conv, nil
		}

		if waitErr := backoff.Wait(ctx); waitErr != nil {
			if errors.Is(waitErr, retry.ErrAttemptsExhausted) {
				backoff.Reset()
				continue
			}
			return nil, fmt.Errorf("elevenlabs: wait for call: %w", waitErr)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("elevenlabs: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("elevenlabs: build request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("elevenlabs: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("elevenlabs: %s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("elevenlabs: decode response: %w", err)
		}
	}
	return nil
}
