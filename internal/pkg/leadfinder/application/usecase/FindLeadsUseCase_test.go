package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

type fakeSearcher struct {
	leads []lead.Lead
	err   error
}

func (s *fakeSearcher) Search(context.Context, string, int) ([]lead.Lead, error) {
	return s.leads, s.err
}

type fakeRepo struct {
	stored  []lead.Lead
	listErr error
	saved   []string
	city    string
}

func (r *fakeRepo) Save(_ context.Context, l lead.Lead) error {
	r.saved = append(r.saved, l.ID)
	return nil
}

func (r *fakeRepo) ListByCity(_ context.Context, city string, _ int) ([]lead.Lead, error) {
	r.city = city
	return r.stored, r.listErr
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

func TestExecute_PersistsAndNotifiesFreshLeads(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	searcher := &fakeSearcher{leads: []lead.Lead{mustLead(t, "p1", "Joe's Diner")}}
	uc := NewFindLeadsUseCase(searcher, repo, notifier, zap.NewNop())

	leads, err := uc.Execute(context.Background(), FindLeadsInput{City: "Boise"})
	require.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, []string{"p1"}, repo.saved)
	assert.Equal(t, []string{"p1"}, notifier.notified)
}

func TestExecute_ServesStoredLeadsWhenSearchFails(t *testing.T) {
	repo := &fakeRepo{stored: []lead.Lead{
		mustLead(t, "p1", "Joe's Diner"),
		mustLead(t, "p2", "Ada Barber Shop"),
	}}
	notifier := &fakeNotifier{}
	uc := NewFindLeadsUseCase(&fakeSearcher{err: errors.New("quota")}, repo, notifier, zap.NewNop())

	leads, err := uc.Execute(context.Background(), FindLeadsInput{City: "Boise"})
	require.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "Boise", repo.city)
	assert.Empty(t, repo.saved, "stored leads are not written back")
	assert.Equal(t, []string{"p1", "p2"}, notifier.notified, "stored leads still reach the dashboard")
}

func TestExecute_SearchFailureWithoutStoredLeads(t *testing.T) {
	t.Run("no repository", func(t *testing.T) {
		uc := NewFindLeadsUseCase(&fakeSearcher{err: errors.New("quota")}, nil, nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), FindLeadsInput{City: "Boise"})
		assert.Error(t, err)
	})

	t.Run("empty store", func(t *testing.T) {
		uc := NewFindLeadsUseCase(&fakeSearcher{err: errors.New("quota")}, &fakeRepo{}, nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), FindLeadsInput{City: "Boise"})
		assert.Error(t, err)
	})

	t.Run("store also failing", func(t *testing.T) {
		repo := &fakeRepo{listErr: errors.New("offline")}
		uc := NewFindLeadsUseCase(&fakeSearcher{err: errors.New("quota")}, repo, nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), FindLeadsInput{City: "Boise"})
		assert.Error(t, err)
	})
}
