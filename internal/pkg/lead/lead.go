// Package lead holds the shared Lead record and its status funnel. Every
// service exchanges leads in this shape; only the dashboard keeps them
// resident in memory.
package lead

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status tracks a lead through the sales funnel, from discovery to a
// scheduled meeting or a terminal negative outcome.
type Status string

const (
	StatusFound            Status = "found"
	StatusContacted        Status = "contacted"
	StatusEngaged          Status = "engaged"
	StatusConverting       Status = "converting"
	StatusMeetingScheduled Status = "meeting_scheduled"
	StatusNotInterested    Status = "not_interested"
	StatusNoResponse       Status = "no_response"
)

// ErrUnknownStatus is returned when a status string is outside the funnel set.
var ErrUnknownStatus = errors.New("lead: unknown status")

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusFound, StatusContacted, StatusEngaged, StatusConverting,
		StatusMeetingScheduled, StatusNotInterested, StatusNoResponse:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// AgentType identifies which service produced an update.
type AgentType string

const (
	AgentLeadFinder  AgentType = "lead_finder"
	AgentSDR         AgentType = "sdr"
	AgentLeadManager AgentType = "lead_manager"
	AgentOutreach    AgentType = "outreach"
	AgentCalendar    AgentType = "calendar"
)

// Lead is a discovered business tracked through the funnel.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Website     string    `json:"website,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Status      Status    `json:"status"`
	Notes       []string  `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New validates and normalizes a lead. Name and city are required; an empty
// ID gets a fresh UUID and zero timestamps are set to now.
func New(l Lead) (*Lead, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.City = strings.TrimSpace(l.City)
	if l.Name == "" || l.City == "" {
		return nil, errors.New("lead: name and city are required")
	}

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = StatusFound
	} else if _, err := ParseStatus(string(l.Status)); err != nil {
		return nil, err
	}

	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	if l.Notes == nil {
		l.Notes = []string{}
	}
	return &l, nil
}

// Advance applies a status transition plus an annotated note from an agent.
func (l *Lead) Advance(status Status, agent AgentType, note string) {
	l.Status = status
	l.UpdatedAt = time.Now()
	if note != "" {
		l.Notes = append(l.Notes, fmt.Sprintf("%s: %s", agent, note))
	}
}
