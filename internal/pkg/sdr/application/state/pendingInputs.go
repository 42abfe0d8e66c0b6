// Package state tracks the SDR's in-flight human-input requests: questions
// sent to the dashboard whose answers arrive on a separate HTTP request.
package state

import (
	"context"
	"fmt"
	"sync"
)

// PendingInputs matches answers to waiting engagements by request ID.
type PendingInputs struct {
	mu      sync.Mutex
	waiting map[string]chan string
}

func NewPendingInputs() *PendingInputs {
	return &PendingInputs{waiting: make(map[string]chan string)}
}

// Await blocks until Resolve delivers an answer for requestID or the context
// expires. The registration is removed either way.
func (p *PendingInputs) Await(ctx context.Context, requestID string) (string, error) {
	ch := make(chan string, 1)

	p.mu.Lock()
	if _, exists := p.waiting[requestID]; exists {
		p.mu.Unlock()
		return "", fmt.Errorf("state: duplicate human input request %q", requestID)
	}
	p.waiting[requestID] = ch
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.waiting, requestID)
		p.mu.Unlock()
	}()

	select {
	case answer := <-ch:
		return answer, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Resolve delivers an answer to a waiting engagement. It reports false when
// nothing waits for requestID, so the HTTP layer can answer 404.
func (p *PendingInputs) Resolve(requestID, answer string) bool {
	p.mu.Lock()
	ch, ok := p.waiting[requestID]
	if ok {
		delete(p.waiting, requestID)
	}
	p.mu.Unlock()

	if ok {
		ch <- answer
	}
	return ok
}
