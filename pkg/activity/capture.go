package activity

import (
	"context"
	"sync"
)

// CaptureHook keeps every event it receives, in order. Err, when set, is
// returned from each Notify after the event is kept.
type CaptureHook struct {
	Events []Event
	Err    error
	mu     sync.Mutex
}

func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	h.Events = append(h.Events, event.Normalize())
	h.mu.Unlock()
	return h.Err
}

// Verbs lists the verbs of the captured events.
func (h *CaptureHook) Verbs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	verbs := make([]string, len(h.Events))
	for i, event := range h.Events {
		verbs[i] = event.Verb
	}
	return verbs
}
