// Package gmail reads the shared sales inbox through the Gmail API, using a
// service account with domain-wide delegation for the sales address.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Email is one inbox message reduced to what the triage needs.
type Email struct {
	ID      string
	From    string
	Address string
	Subject string
	Body    string
}

// Inbox wraps the Gmail API for one delegated mailbox.
type Inbox struct {
	svc  *gmailapi.Service
	user string
}

// NewInboxFromEnv reads SERVICE_ACCOUNT_FILE (a JSON key with domain-wide
// delegation) and SALES_EMAIL (the mailbox to impersonate).
func NewInboxFromEnv(ctx context.Context) (*Inbox, error) {
	keyPath := os.Getenv("SERVICE_ACCOUNT_FILE")
	user := os.Getenv("SALES_EMAIL")
	if keyPath == "" || user == "" {
		return nil, errors.New("gmail: SERVICE_ACCOUNT_FILE and SALES_EMAIL are required")
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("gmail: read key: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(key, gmailapi.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("gmail: parse key: %w", err)
	}
	cfg.Subject = user

	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("gmail: connect: %w", err)
	}
	return &Inbox{svc: svc, user: user}, nil
}

// Unread returns up to limit unread messages, newest first.
func (i *Inbox) Unread(ctx context.Context, limit int) ([]Email, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := i.svc.Users.Messages.List("me").
		Q("is:unread in:inbox").
		MaxResults(int64(limit)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail: list unread: %w", err)
	}

	emails := make([]Email, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msg, err := i.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("gmail: fetch %s: %w", ref.Id, err)
		}
		emails = append(emails, reduce(msg))
	}
	return emails, nil
}

// MarkRead removes the UNREAD label so a reply is triaged once.
func (i *Inbox) MarkRead(ctx context.Context, id string) error {
	_, err := i.svc.Users.Messages.Modify("me", id, &gmailapi.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail: mark read %s: %w", id, err)
	}
	return nil
}

func reduce(msg *gmailapi.Message) Email {
	email := Email{ID: msg.Id, Body: extractBody(msg.Payload)}
	if email.Body == "" {
		email.Body = msg.Snippet
	}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			email.From = h.Value
			email.Address = ExtractEmailAddress(h.Value)
		case "Subject":
			email.Subject = h.Value
		}
	}
	return email
}

// extractBody walks the MIME tree for the first text/plain part.
func extractBody(payload *gmailapi.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		// Gmail emits base64url without padding.
		decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(payload.Body.Data, "="))
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	for _, part := range payload.Parts {
		if body := extractBody(part); body != "" {
			return body
		}
	}
	return ""
}

// ExtractEmailAddress pulls the bare address out of a From header value such
// as `Joe Diner <joe@example.com>`.
func ExtractEmailAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start != -1 {
		if end := strings.Index(from[start:], ">"); end != -1 {
			return strings.TrimSpace(from[start+1 : start+end])
		}
	}
	return strings.TrimSpace(from)
}
