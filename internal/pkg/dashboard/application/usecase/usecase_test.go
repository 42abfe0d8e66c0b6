package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

type fakeHub struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (h *fakeHub) Broadcast(payload []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.payloads = append(h.payloads, payload)
	return 1
}

func (h *fakeHub) types(t *testing.T) []string {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.payloads))
	for _, p := range h.payloads {
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(p, &event))
		typ, _ := event["type"].(string)
		out = append(out, typ)
	}
	return out
}

type fakeCaller struct {
	mu        sync.Mutex
	task      *a2a.Task
	err       error
	operation string
	data      map[string]interface{}
}

func (c *fakeCaller) SendData(_ context.Context, _, _, operation string, data map[string]interface{}) (*a2a.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operation = operation
	c.data = data
	return c.task, c.err
}

func leadResultsTask(businessCount int) *a2a.Task {
	businesses := make([]interface{}, businessCount)
	for i := range businesses {
		businesses[i] = map[string]interface{}{"name": "b"}
	}
	return &a2a.Task{
		Status: a2a.TaskStatus{State: a2a.StateCompleted},
		Artifacts: []a2a.Artifact{{
			Name:  config.LeadFinderArtifact,
			Parts: []a2a.Part{a2a.NewDataPart(map[string]interface{}{"businesses": businesses})},
		}},
	}
}

func TestStartLeadFinding_PublishesLifecycleEvents(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	finder := &fakeCaller{task: leadResultsTask(3)}
	uc := NewStartLeadFindingUseCase(registry, hub, finder, zap.NewNop())

	require.NoError(t, uc.Execute("  Boise  "))
	require.Eventually(t, func() bool { return !registry.Running() }, time.Second, 5*time.Millisecond)

	types := hub.types(t)
	assert.Contains(t, types, "process_started")
	assert.Contains(t, types, "lead_finding_completed")
	assert.Contains(t, types, "process_finished")
	assert.NotContains(t, types, "lead_finding_empty")
	assert.Equal(t, "find_leads", finder.operation)
	assert.Equal(t, "Boise", finder.data["city"])
}

func TestStartLeadFinding_EmptyResult(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	uc := NewStartLeadFindingUseCase(registry, hub, &fakeCaller{task: leadResultsTask(0)}, zap.NewNop())

	require.NoError(t, uc.Execute("Nowhere"))
	require.Eventually(t, func() bool { return !registry.Running() }, time.Second, 5*time.Millisecond)

	assert.Contains(t, hub.types(t), "lead_finding_empty")
}

func TestStartLeadFinding_RejectsBadCityAndSecondRun(t *testing.T) {
	registry := state.NewRegistry()
	uc := NewStartLeadFindingUseCase(registry, &fakeHub{}, &fakeCaller{task: leadResultsTask(1)}, zap.NewNop())

	assert.ErrorIs(t, uc.Execute("   "), ErrInvalidCity)

	_, err := registry.BeginRun("Denver")
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Execute("Reno"), state.ErrRunInFlight)
}

func TestRecordCallback_AddedThenUpdated(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	uc := NewRecordCallbackUseCase(registry, hub)

	require.NoError(t, uc.Execute(callback.Update{
		AgentType:  lead.AgentLeadFinder,
		BusinessID: "biz-1",
		Status:     lead.StatusFound,
		Message:    "discovered",
		Data:       map[string]interface{}{"name": "Joe's Diner", "city": "Boise"},
	}))
	require.NoError(t, uc.Execute(callback.Update{
		AgentType:  lead.AgentSDR,
		BusinessID: "biz-1",
		Status:     lead.StatusContacted,
		Message:    "call placed",
	}))

	assert.Equal(t, []string{"business_added", "business_updated"}, hub.types(t))
}

func TestRecordCallback_CalendarRaisesNotification(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	uc := NewRecordCallbackUseCase(registry, hub)

	require.NoError(t, uc.Execute(callback.Update{
		AgentType:  lead.AgentCalendar,
		BusinessID: "biz-1",
		Status:     lead.StatusMeetingScheduled,
		Message:    "demo booked",
		Data: map[string]interface{}{
			"name":       "Joe's Diner",
			"city":       "Boise",
			"event_link": "https://calendar.example.com/evt-1",
		},
	}))

	assert.Equal(t, []string{"business_added", "calendar_notification"}, hub.types(t))

	hub.mu.Lock()
	defer hub.mu.Unlock()
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(hub.payloads[1], &event))
	data, _ := event["data"].(map[string]interface{})
	assert.Equal(t, "https://calendar.example.com/evt-1", data["event_link"])
	assert.Equal(t, "demo booked", event["message"])
}

func TestSendToSDR(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	sdr := &fakeCaller{task: &a2a.Task{Status: a2a.TaskStatus{State: a2a.StateCompleted}}}
	uc := NewSendToSDRUseCase(registry, hub, sdr, zap.NewNop())

	t.Run("unknown business", func(t *testing.T) {
		assert.Error(t, uc.Execute(context.Background(), "ghost"))
	})

	t.Run("engages known lead", func(t *testing.T) {
		_, _, err := registry.Apply(callback.Update{
			AgentType:  lead.AgentLeadFinder,
			BusinessID: "biz-1",
			Status:     lead.StatusFound,
			Message:    "discovered",
			Data:       map[string]interface{}{"name": "Joe's Diner", "city": "Boise"},
		})
		require.NoError(t, err)

		require.NoError(t, uc.Execute(context.Background(), "biz-1"))
		assert.Equal(t, "engage_lead", sdr.operation)
		assert.Equal(t, "Joe's Diner", sdr.data["name"])
		assert.Contains(t, hub.types(t), "sdr_engaged")
	})
}

func TestTriggerLeadManager_StatusTransitions(t *testing.T) {
	registry := state.NewRegistry()
	hub := &fakeHub{}
	manager := &fakeCaller{task: &a2a.Task{Status: a2a.TaskStatus{State: a2a.StateCompleted}}}
	uc := NewTriggerLeadManagerUseCase(registry, hub, manager, zap.NewNop())

	require.NoError(t, uc.Execute(context.Background()))
	assert.Equal(t, "process_lead_management", manager.operation)
	assert.Equal(t, "check_lead_emails", manager.data["query"])
	assert.Equal(t, []string{"agent_status", "agent_status"}, hub.types(t))
}

func TestHumanInput_SubmitRemovesOnlyAfterAck(t *testing.T) {
	var got map[string]string
	sdr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/human-input/req-reject" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer sdr.Close()

	registry := state.NewRegistry()
	hub := &fakeHub{}
	uc := NewHumanInputUseCase(registry, hub, sdr.URL, zap.NewNop())

	require.NoError(t, uc.Receive(state.HumanInputRequest{RequestID: "req-1", Prompt: "approve site?", Type: "url"}))
	require.NoError(t, uc.Receive(state.HumanInputRequest{RequestID: "req-reject", Prompt: "approve site?", Type: "url"}))
	assert.Len(t, uc.Pending(), 2)

	assert.Error(t, uc.Submit(context.Background(), "req-reject", "https://example.com"))
	_, stillThere := registry.HumanInput("req-reject")
	assert.True(t, stillThere, "failed delivery must keep the request pending")

	require.NoError(t, uc.Submit(context.Background(), "req-1", "https://example.com"))
	assert.Equal(t, "https://example.com", got["url"])
	_, stillThere = registry.HumanInput("req-1")
	assert.False(t, stillThere)

	assert.Contains(t, hub.types(t), "human_input_request")
	assert.Contains(t, hub.types(t), "human_input_response_submitted")
}
