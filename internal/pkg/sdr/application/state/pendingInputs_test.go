package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitResolve(t *testing.T) {
	p := NewPendingInputs()

	done := make(chan struct{})
	var answer string
	var err error
	go func() {
		defer close(done)
		answer, err = p.Await(context.Background(), "req-1")
	}()

	require.Eventually(t, func() bool {
		return p.Resolve("req-1", "https://example.com")
	}, time.Second, 5*time.Millisecond)

	<-done
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", answer)
}

func TestAwait_ContextExpiry(t *testing.T) {
	p := NewPendingInputs()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx, "req-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The registration is gone, so a late answer finds nobody.
	assert.False(t, p.Resolve("req-1", "late"))
}

func TestResolve_UnknownRequest(t *testing.T) {
	p := NewPendingInputs()
	assert.False(t, p.Resolve("ghost", "answer"))
}
