package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

func foundUpdate(id string) callback.Update {
	return callback.Update{
		AgentType:  lead.AgentLeadFinder,
		BusinessID: id,
		Status:     lead.StatusFound,
		Message:    "discovered",
		Timestamp:  time.Now(),
		Data: map[string]interface{}{
			"name": "Joe's Diner",
			"city": "Boise",
		},
	}
}

func TestApply_CreateThenUpdateReplacesNotDuplicates(t *testing.T) {
	r := NewRegistry()

	created, isNew, err := r.Apply(foundUpdate("biz-1"))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, lead.StatusFound, created.Status)
	assert.Equal(t, 1, r.Count())

	updated, isNew, err := r.Apply(callback.Update{
		AgentType:  lead.AgentSDR,
		BusinessID: "biz-1",
		Status:     lead.StatusContacted,
		Message:    "call placed",
	})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, 1, r.Count(), "same ID must replace, not duplicate")
	assert.Equal(t, lead.StatusContacted, updated.Status)
	assert.Contains(t, updated.Notes, "lead_finder: discovered")
	assert.Contains(t, updated.Notes, "sdr: call placed")
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	r := NewRegistry()
	u := foundUpdate("biz-1")
	u.Status = "smoking_hot"

	_, _, err := r.Apply(u)
	assert.ErrorIs(t, err, lead.ErrUnknownStatus)
	assert.Equal(t, 0, r.Count())
}

func TestApply_RejectsUnknownLeadWithoutData(t *testing.T) {
	r := NewRegistry()
	u := foundUpdate("biz-1")
	u.Data = map[string]interface{}{"name": "no city"}

	_, _, err := r.Apply(u)
	assert.Error(t, err)

	u.Data = nil
	_, _, err = r.Apply(u)
	assert.Error(t, err)
}

func TestBeginRun(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Apply(foundUpdate("stale"))
	require.NoError(t, err)

	session, err := r.BeginRun("Denver")
	require.NoError(t, err)
	assert.NotEmpty(t, session)
	assert.True(t, r.Running())
	assert.Equal(t, "Denver", r.CurrentCity())
	assert.Equal(t, 0, r.Count(), "a new run clears previous results")

	_, err = r.BeginRun("Reno")
	assert.ErrorIs(t, err, ErrRunInFlight)

	r.EndRun()
	assert.False(t, r.Running())
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Apply(foundUpdate("biz-1"))
	require.NoError(t, err)
	r.AddHumanInput(HumanInputRequest{RequestID: "req-1", Prompt: "approve?", Type: "url"})

	r.Reset()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.HumanInputs())
	assert.Empty(t, r.CurrentCity())
}

func TestHumanInputLifecycle(t *testing.T) {
	r := NewRegistry()
	r.AddHumanInput(HumanInputRequest{RequestID: "req-1", Prompt: "approve site?", Type: "url"})

	req, ok := r.HumanInput("req-1")
	require.True(t, ok)
	assert.Equal(t, "approve site?", req.Prompt)

	// Fetching does not remove: removal only follows a successful forward.
	_, ok = r.HumanInput("req-1")
	assert.True(t, ok)

	r.RemoveHumanInput("req-1")
	_, ok = r.HumanInput("req-1")
	assert.False(t, ok)
}

func TestLeads_OldestFirst(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"b", "a", "c"} {
		_, _, err := r.Apply(foundUpdate(id))
		require.NoError(t, err)
	}
	leads := r.Leads()
	require.Len(t, leads, 3)
	for i := 1; i < len(leads); i++ {
		assert.False(t, leads[i].CreatedAt.Before(leads[i-1].CreatedAt))
	}
}
