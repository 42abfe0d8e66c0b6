package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/state"
)

type fakeOutreach struct {
	outcome   string
	err       error
	operation string
	data      map[string]interface{}
}

func (f *fakeOutreach) SendData(_ context.Context, _, _, operation string, data map[string]interface{}) (*a2a.Task, error) {
	f.operation = operation
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return &a2a.Task{
		Status: a2a.TaskStatus{State: a2a.StateCompleted},
		Artifacts: []a2a.Artifact{{
			Name:  config.OutreachArtifact,
			Parts: []a2a.Part{a2a.NewDataPart(map[string]interface{}{"outcome": f.outcome})},
		}},
	}, nil
}

type statusRecord struct {
	status lead.Status
	data   map[string]interface{}
}

type fakeNotifier struct {
	mu      sync.Mutex
	records []statusRecord
}

func (n *fakeNotifier) Notify(_ context.Context, _ string, status lead.Status, _ string, data map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records = append(n.records, statusRecord{status: status, data: data})
	return nil
}

func (n *fakeNotifier) NotifyLead(ctx context.Context, l *lead.Lead, status lead.Status, message string) error {
	return n.Notify(ctx, l.ID, status, message, nil)
}

func (n *fakeNotifier) statuses() []lead.Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]lead.Status, len(n.records))
	for i, r := range n.records {
		out[i] = r.status
	}
	return out
}

type fakeRequester struct {
	requestID string
	err       error
}

func (r *fakeRequester) RequestInput(_ context.Context, requestID, _, _ string) error {
	r.requestID = requestID
	return r.err
}

type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) Generate(context.Context, string) (string, error) { return f.answer, f.err }

func testLead(t *testing.T) lead.Lead {
	t.Helper()
	l, err := lead.New(lead.Lead{
		ID:    "biz-1",
		Name:  "Joe's Diner",
		City:  "Boise",
		Phone: "+15551234567",
		Email: "joe@example.com",
	})
	require.NoError(t, err)
	return *l
}

func TestExecute_InterestedLeadGetsDemoSiteApproval(t *testing.T) {
	outreach := &fakeOutreach{outcome: "interested"}
	notifier := &fakeNotifier{}
	inputs := state.NewPendingInputs()
	requester := &fakeRequester{}

	uc := NewEngageLeadUseCase(outreach, nil, notifier, inputs, requester, zap.NewNop())
	uc.ApprovalTimeout = time.Second

	done := make(chan error, 1)
	go func() { done <- uc.Execute(context.Background(), "ctx-1", testLead(t)) }()

	require.Eventually(t, func() bool {
		return requester.requestID != "" && inputs.Resolve(requester.requestID, "https://demo.example.com")
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, <-done)

	assert.Equal(t, "make_call", outreach.operation, "phone wins without a model")
	assert.Equal(t,
		[]lead.Status{lead.StatusContacted, lead.StatusEngaged, lead.StatusConverting},
		notifier.statuses())

	last := notifier.records[len(notifier.records)-1]
	assert.Equal(t, "https://demo.example.com", last.data["demo_site_url"])
}

func TestExecute_ApprovalTimeoutLeavesLeadEngaged(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := NewEngageLeadUseCase(&fakeOutreach{outcome: "interested"}, nil, notifier, state.NewPendingInputs(), &fakeRequester{}, zap.NewNop())
	uc.ApprovalTimeout = 20 * time.Millisecond

	require.NoError(t, uc.Execute(context.Background(), "ctx-1", testLead(t)))
	assert.Equal(t, []lead.Status{lead.StatusContacted, lead.StatusEngaged}, notifier.statuses())
}

func TestExecute_Outcomes(t *testing.T) {
	cases := []struct {
		outcome string
		want    lead.Status
	}{
		{"not_interested", lead.StatusNotInterested},
		{"no_answer", lead.StatusNoResponse},
		{"", lead.StatusNoResponse},
	}
	for _, tc := range cases {
		t.Run("outcome "+tc.outcome, func(t *testing.T) {
			notifier := &fakeNotifier{}
			uc := NewEngageLeadUseCase(&fakeOutreach{outcome: tc.outcome}, nil, notifier, nil, nil, zap.NewNop())

			require.NoError(t, uc.Execute(context.Background(), "ctx-1", testLead(t)))
			assert.Equal(t, []lead.Status{lead.StatusContacted, tc.want}, notifier.statuses())
		})
	}
}

func TestExecute_OutreachFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := NewEngageLeadUseCase(&fakeOutreach{err: errors.New("line busy")}, nil, notifier, nil, nil, zap.NewNop())

	err := uc.Execute(context.Background(), "ctx-1", testLead(t))
	assert.Error(t, err)
	assert.Equal(t, []lead.Status{lead.StatusNoResponse}, notifier.statuses())
}

func TestChooseChannel(t *testing.T) {
	uc := NewEngageLeadUseCase(&fakeOutreach{}, nil, &fakeNotifier{}, nil, nil, zap.NewNop())

	t.Run("no phone means email", func(t *testing.T) {
		l := testLead(t)
		l.Phone = ""
		assert.Equal(t, ChannelEmail, uc.chooseChannel(context.Background(), l))
	})

	t.Run("no email means phone", func(t *testing.T) {
		l := testLead(t)
		l.Email = ""
		assert.Equal(t, ChannelPhone, uc.chooseChannel(context.Background(), l))
	})

	t.Run("model picks email", func(t *testing.T) {
		uc.LLM = &fakeLLM{answer: "Email"}
		assert.Equal(t, ChannelEmail, uc.chooseChannel(context.Background(), testLead(t)))
	})

	t.Run("model failure falls back to phone", func(t *testing.T) {
		uc.LLM = &fakeLLM{err: errors.New("quota")}
		assert.Equal(t, ChannelPhone, uc.chooseChannel(context.Background(), testLead(t)))
	})
}
