// Package state holds the dashboard's in-memory world: the lead registry,
// the agent update log, the pending human-input requests, and the run flag.
// Everything here is discarded on process restart or an explicit reset.
package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// HumanInputRequest is an agent's request for operator input (for example a
// website-draft approval), pending until the operator responds.
type HumanInputRequest struct {
	RequestID string `json:"request_id"`
	Prompt    string `json:"prompt"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// ErrRunInFlight rejects a second lead-finding run while one is active.
var ErrRunInFlight = fmt.Errorf("state: lead finding already running")

// Registry is the dashboard's single source of truth, keyed by lead ID.
// All methods are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	leads       map[string]*lead.Lead
	updates     []callback.Update
	humanInputs map[string]HumanInputRequest
	running     bool
	currentCity string
	sessionID   string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		leads:       make(map[string]*lead.Lead),
		humanInputs: make(map[string]HumanInputRequest),
	}
}

// Apply folds one agent callback into the registry. A known business ID is
// mutated in place (replace, never duplicate); an unknown ID is materialized
// from the callback's data object, which must carry name and city. The
// returned lead is a copy, and created reports whether the entry is new.
func (r *Registry) Apply(u callback.Update) (lead.Lead, bool, error) {
	if _, err := lead.ParseStatus(string(u.Status)); err != nil {
		return lead.Lead{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.leads[u.BusinessID]; ok {
		existing.Advance(u.Status, u.AgentType, u.Message)
		r.updates = append(r.updates, u)
		return *existing, false, nil
	}

	name, _ := u.Data["name"].(string)
	city, _ := u.Data["city"].(string)
	if name == "" || city == "" {
		return lead.Lead{}, false, fmt.Errorf("state: cannot create lead %s from incomplete callback data", u.BusinessID)
	}
	phone, _ := u.Data["phone"].(string)
	email, _ := u.Data["email"].(string)
	description, _ := u.Data["description"].(string)

	created, err := lead.New(lead.Lead{
		ID:          u.BusinessID,
		Name:        name,
		City:        city,
		Phone:       phone,
		Email:       email,
		Description: description,
		Status:      u.Status,
		Notes:       []string{fmt.Sprintf("%s: %s", u.AgentType, u.Message)},
	})
	if err != nil {
		return lead.Lead{}, false, fmt.Errorf("state: create lead from callback: %w", err)
	}

	r.leads[created.ID] = created
	r.updates = append(r.updates, u)
	return *created, true, nil
}

// Get returns a copy of the lead with the given ID.
func (r *Registry) Get(id string) (lead.Lead, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.leads[id]
	if !ok {
		return lead.Lead{}, false
	}
	return *l, true
}

// Leads returns copies of every lead, oldest first.
func (r *Registry) Leads() []lead.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lead.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count reports the number of tracked leads.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

// RecentUpdates returns up to n of the latest agent updates, oldest first.
func (r *Registry) RecentUpdates(n int) []callback.Update {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 || n > len(r.updates) {
		n = len(r.updates)
	}
	out := make([]callback.Update, n)
	copy(out, r.updates[len(r.updates)-n:])
	return out
}

// BeginRun marks a lead-finding run as started for city, clearing previous
// results. It fails when a run is already in flight.
func (r *Registry) BeginRun(city string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return "", ErrRunInFlight
	}
	r.running = true
	r.currentCity = city
	r.sessionID = uuid.NewString()
	r.leads = make(map[string]*lead.Lead)
	r.updates = nil
	return r.sessionID, nil
}

// EndRun clears the running flag; results stay visible.
func (r *Registry) EndRun() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// Running reports whether a lead-finding run is in flight.
func (r *Registry) Running() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// CurrentCity returns the city of the active or last run.
func (r *Registry) CurrentCity() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentCity
}

// SessionID returns the active session, creating one for ad-hoc actions
// performed outside a lead-finding run.
func (r *Registry) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionID == "" {
		r.sessionID = uuid.NewString()
	}
	return r.sessionID
}

// Reset discards all state.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.currentCity = ""
	r.sessionID = ""
	r.leads = make(map[string]*lead.Lead)
	r.updates = nil
	r.humanInputs = make(map[string]HumanInputRequest)
}

// AddHumanInput files a pending human-input request.
func (r *Registry) AddHumanInput(req HumanInputRequest) {
	r.mu.Lock()
	r.humanInputs[req.RequestID] = req
	r.mu.Unlock()
}

// HumanInputs lists pending requests.
func (r *Registry) HumanInputs() []HumanInputRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HumanInputRequest, 0, len(r.humanInputs))
	for _, req := range r.humanInputs {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out
}

// HumanInput fetches a pending request without removing it: removal happens
// only after the response is successfully forwarded to the agent.
func (r *Registry) HumanInput(requestID string) (HumanInputRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.humanInputs[requestID]
	return req, ok
}

// RemoveHumanInput drops a request once the agent acknowledged the response.
func (r *Registry) RemoveHumanInput(requestID string) {
	r.mu.Lock()
	delete(r.humanInputs, requestID)
	r.mu.Unlock()
}
