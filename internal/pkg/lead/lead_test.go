package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("accepts funnel statuses", func(t *testing.T) {
		for _, s := range []string{
			"found", "contacted", "engaged", "converting",
			"meeting_scheduled", "not_interested", "no_response",
		} {
			got, err := ParseStatus(s)
			require.NoError(t, err, s)
			assert.Equal(t, Status(s), got)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "FOUND", "meeting", "won"} {
			_, err := ParseStatus(s)
			assert.ErrorIs(t, err, ErrUnknownStatus, "%q", s)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		l, err := New(Lead{Name: "  Joe's Diner ", City: "Boise"})
		require.NoError(t, err)
		assert.NotEmpty(t, l.ID)
		assert.Equal(t, "Joe's Diner", l.Name)
		assert.Equal(t, StatusFound, l.Status)
		assert.False(t, l.CreatedAt.IsZero())
		assert.Equal(t, l.CreatedAt, l.UpdatedAt)
		assert.NotNil(t, l.Notes)
	})

	t.Run("requires name and city", func(t *testing.T) {
		_, err := New(Lead{Name: "x"})
		assert.Error(t, err)
		_, err = New(Lead{City: "x"})
		assert.Error(t, err)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := New(Lead{Name: "x", City: "y", Status: "hot"})
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestAdvance(t *testing.T) {
	l, err := New(Lead{Name: "Acme", City: "Reno"})
	require.NoError(t, err)

	before := l.UpdatedAt
	l.Advance(StatusContacted, AgentSDR, "left voicemail")

	assert.Equal(t, StatusContacted, l.Status)
	assert.Equal(t, []string{"sdr: left voicemail"}, l.Notes)
	assert.False(t, l.UpdatedAt.Before(before))
}
