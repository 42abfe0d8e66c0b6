package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/calendar/scheduler"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

type fakeScheduler struct {
	err   error
	topic string
	start time.Time
}

func (f *fakeScheduler) Schedule(_ context.Context, attendee, topic string, start, end time.Time) (*scheduler.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.topic = topic
	f.start = start
	return &scheduler.Meeting{
		EventID:  "evt-1",
		Link:     "https://calendar.example.com/evt-1",
		Start:    start,
		End:      end,
		Attendee: attendee,
	}, nil
}

type fakeNotifier struct {
	status lead.Status
	data   map[string]interface{}
}

func (f *fakeNotifier) Notify(_ context.Context, _ string, status lead.Status, _ string, data map[string]interface{}) error {
	f.status = status
	f.data = data
	return nil
}

func TestNextDemoSlot(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek goes to next morning",
			now:  time.Date(2026, 8, 25, 15, 30, 0, 0, time.UTC), // Tuesday
			want: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),  // Wednesday
		},
		{
			name: "friday skips the weekend",
			now:  time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),  // Friday
			want: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), // Monday
		},
		{
			name: "saturday lands on monday",
			now:  time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextDemoSlot(tc.now))
		})
	}
}

func TestExecute_BooksAndNotifies(t *testing.T) {
	sched := &fakeScheduler{}
	notifier := &fakeNotifier{}
	uc := NewScheduleMeetingUseCase(sched, notifier, zap.NewNop())
	uc.Now = func() time.Time { return time.Date(2026, 8, 25, 15, 30, 0, 0, time.UTC) }

	result, err := uc.Execute(context.Background(), ScheduleMeetingInput{
		AttendeeEmail: "joe@example.com",
		AttendeeName:  "Joe",
	})
	require.NoError(t, err)

	assert.False(t, result.Simulated)
	assert.Equal(t, "evt-1", result.Meeting.EventID)
	assert.Equal(t, "Website demo walkthrough", sched.topic)
	assert.Equal(t, time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC), sched.start)
	assert.Equal(t, lead.StatusMeetingScheduled, notifier.status)
	assert.Equal(t, "https://calendar.example.com/evt-1", notifier.data["event_link"])
}

func TestExecute_SimulatesWithoutBackend(t *testing.T) {
	uc := NewScheduleMeetingUseCase(nil, nil, zap.NewNop())

	result, err := uc.Execute(context.Background(), ScheduleMeetingInput{AttendeeEmail: "joe@example.com"})
	require.NoError(t, err)
	assert.True(t, result.Simulated)
	assert.Empty(t, result.Meeting.EventID)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing attendee", func(t *testing.T) {
		uc := NewScheduleMeetingUseCase(nil, nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), ScheduleMeetingInput{})
		assert.Error(t, err)
	})

	t.Run("backend failure", func(t *testing.T) {
		uc := NewScheduleMeetingUseCase(&fakeScheduler{err: errors.New("quota")}, nil, zap.NewNop())
		_, err := uc.Execute(context.Background(), ScheduleMeetingInput{AttendeeEmail: "joe@example.com"})
		assert.Error(t, err)
	})
}
