package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	id      string
	started bool
	closed  bool
	sent    [][]byte
	sendErr error
}

func (f *fakeConn) SessionID() string { return f.id }
func (f *fakeConn) Start()            { f.started = true }
func (f *fakeConn) Send(p []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, p)
	return nil
}
func (f *fakeConn) Close(code int, reason string) { f.closed = true }

func TestHub_BroadcastReachesAllSessions(t *testing.T) {
	h := NewHub()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	h.Attach(a)
	h.Attach(b)

	assert.True(t, a.started)
	assert.Equal(t, 2, h.Count())

	delivered := h.Broadcast([]byte(`{"type":"state_reset"}`))
	assert.Equal(t, 2, delivered)
	assert.Len(t, a.sent, 1)
	assert.Len(t, b.sent, 1)
}

func TestHub_DetachedSessionsNotWritten(t *testing.T) {
	h := NewHub()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	h.Attach(a)
	h.Attach(b)
	h.Detach(a)

	delivered := h.Broadcast([]byte("x"))
	assert.Equal(t, 1, delivered)
	assert.Empty(t, a.sent)
	assert.Len(t, b.sent, 1)
}

func TestHub_BroadcastCountsFailedSends(t *testing.T) {
	h := NewHub()
	h.Attach(&fakeConn{id: "ok"})
	h.Attach(&fakeConn{id: "bad", sendErr: assert.AnError})

	delivered := h.Broadcast([]byte("x"))
	assert.Equal(t, 1, delivered)
}

func TestHub_CloseClearsState(t *testing.T) {
	h := NewHub()
	a := &fakeConn{id: "a"}
	h.Attach(a)
	h.Close()

	assert.True(t, a.closed)
	assert.Equal(t, 0, h.Count())
}
