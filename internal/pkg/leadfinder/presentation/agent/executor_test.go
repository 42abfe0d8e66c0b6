package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/leadfinder/application/usecase"
)

type fakeSearcher struct {
	leads []lead.Lead
	err   error
	city  string
	max   int
}

func (s *fakeSearcher) Search(_ context.Context, city string, max int) ([]lead.Lead, error) {
	s.city = city
	s.max = max
	return s.leads, s.err
}

type fakeNotifier struct {
	notified []string
}

func (n *fakeNotifier) NotifyLead(_ context.Context, l *lead.Lead, _ lead.Status, _ string) error {
	n.notified = append(n.notified, l.ID)
	return nil
}

func mustLead(t *testing.T, id, name string) lead.Lead {
	t.Helper()
	l, err := lead.New(lead.Lead{ID: id, Name: name, City: "Boise"})
	require.NoError(t, err)
	return *l
}

func TestExecute_ReturnsLeadResultsArtifact(t *testing.T) {
	searcher := &fakeSearcher{leads: []lead.Lead{
		mustLead(t, "p1", "Joe's Diner"),
		mustLead(t, "p2", "Ada Barber Shop"),
	}}
	notifier := &fakeNotifier{}
	exec := NewExecutor(usecase.NewFindLeadsUseCase(searcher, nil, notifier, zap.NewNop()))

	result, err := exec.Execute(context.Background(), &a2a.Request{
		TaskID: "t1",
		Data:   map[string]interface{}{"city": "Boise", "max_results": float64(10)},
		Metadata: map[string]interface{}{
			"operation": "find_leads",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Boise", searcher.city)
	assert.Equal(t, 10, searcher.max)
	assert.Equal(t, "lead_results", result.ArtifactName)
	assert.Equal(t, 2, result.Data["count"])

	businesses, ok := result.Data["businesses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, businesses, 2)
	first, ok := businesses[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Joe's Diner", first["name"])

	assert.Equal(t, []string{"p1", "p2"}, notifier.notified, "every lead is streamed to the dashboard")
}

func TestExecute_EmptySearchStillCompletes(t *testing.T) {
	exec := NewExecutor(usecase.NewFindLeadsUseCase(&fakeSearcher{}, nil, nil, zap.NewNop()))

	result, err := exec.Execute(context.Background(), &a2a.Request{
		Data: map[string]interface{}{"city": "Nowhere"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Data["count"])
	assert.Equal(t, []interface{}{}, result.Data["businesses"])
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing city", func(t *testing.T) {
		exec := NewExecutor(usecase.NewFindLeadsUseCase(&fakeSearcher{}, nil, nil, zap.NewNop()))
		_, err := exec.Execute(context.Background(), &a2a.Request{Data: map[string]interface{}{}})
		assert.Error(t, err)
	})

	t.Run("unsupported operation", func(t *testing.T) {
		exec := NewExecutor(usecase.NewFindLeadsUseCase(&fakeSearcher{}, nil, nil, zap.NewNop()))
		_, err := exec.Execute(context.Background(), &a2a.Request{
			Data:     map[string]interface{}{"city": "Boise"},
			Metadata: map[string]interface{}{"operation": "make_coffee"},
		})
		assert.Error(t, err)
	})

	t.Run("search failure", func(t *testing.T) {
		exec := NewExecutor(usecase.NewFindLeadsUseCase(&fakeSearcher{err: errors.New("quota")}, nil, nil, zap.NewNop()))
		_, err := exec.Execute(context.Background(), &a2a.Request{Data: map[string]interface{}{"city": "Boise"}})
		assert.Error(t, err)
	})
}
