package store

import "sync"

// EventAction indicates what happened to the target.
type EventAction string

const (
	ActionCreated   EventAction = "created"
	ActionUpdated   EventAction = "updated"
	ActionDeleted   EventAction = "deleted"
	ActionActivated EventAction = "activated"
)

// EventKind indicates what kind of state changed.
type EventKind string

const (
	KindDocument EventKind = "document"
	KindLayer    EventKind = "layer"
	KindPixel    EventKind = "pixel"
	KindPalette  EventKind = "palette"
	KindColor    EventKind = "color"
)

// Event is a change notification published after a mutation commits.
// The rendering collaborator subscribes and re-composites on receipt.
type Event struct {
	Action     EventAction `json:"action"`
	Kind       EventKind   `json:"kind"`
	DocumentID string      `json:"document_id,omitempty"`
	TargetID   string      `json:"target_id,omitempty"` // layer or palette entry id
}

// Subscriber receives store change notifications.
type Subscriber interface {
	OnStoreEvent(e Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(e Event)

func (f SubscriberFunc) OnStoreEvent(e Event) { f(e) }

type publisher struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

func (p *publisher) Subscribe(sub Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, sub)
}

// publish delivers events after the mutation has committed and the store
// lock has been released, so subscribers may call back into the store.
func (p *publisher) publish(events ...Event) {
	p.mu.RLock()
	subs := make([]Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.RUnlock()

	for _, e := range events {
		for _, sub := range subs {
			sub.OnStoreEvent(e)
		}
	}
}
