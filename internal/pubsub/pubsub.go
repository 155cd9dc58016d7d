// Package pubsub provides a small generic publish/subscribe broker.
//
// The synchronous change-listener contract lives in internal/listener; this
// broker is the asynchronous complement, used to fan events out to parts of
// the program that only want to observe (the UI redraw loop, the log
// overlay) without joining the hot path.
package pubsub

import (
	"context"
	"time"
)

// EventType labels a published event.
type EventType string

const (
	// InstalledEvent announces that a fresh mask was installed for a buffer.
	InstalledEvent EventType = "installed"

	// ReloadedEvent announces that the dictionary was re-initialized.
	ReloadedEvent EventType = "reloaded"

	// EntryEvent carries a log line to live subscribers.
	EntryEvent EventType = "entry"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
