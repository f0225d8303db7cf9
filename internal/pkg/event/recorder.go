package event

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Used by tests and local runs
// that want to inspect what would have been sent.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, eventType string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Envelope{Type: eventType, Payload: payload})
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Envelope(nil), r.events...)
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}
