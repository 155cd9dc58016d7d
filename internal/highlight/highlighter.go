// Package highlight wires the tokenizer, mask builder and mask store into
// a change-listener pipeline: one Highlighter per buffer recomputes and
// installs a fresh mask on every change notification.
package highlight

import (
	"fmt"

	"github.com/zjrosen/redline/internal/listener"
	"github.com/zjrosen/redline/internal/log"
	"github.com/zjrosen/redline/internal/mask"
	"github.com/zjrosen/redline/internal/pubsub"
	"github.com/zjrosen/redline/internal/token"
)

// Installed is the payload published after a mask install, for observers
// outside the synchronous path (e.g. a redraw loop).
type Installed struct {
	ID         mask.BufferID
	Content    string
	Directives int
}

// Highlighter recomputes the mask for one buffer identity. It holds no
// per-call state: every run tokenizes the snapshot from scratch, builds a
// fresh mask and installs it wholesale.
type Highlighter struct {
	id       mask.BufferID
	store    *mask.Store
	classify mask.Classify
	broker   *pubsub.Broker[Installed]
}

// New creates a highlighter for the given buffer identity.
func New(id mask.BufferID, store *mask.Store, classify mask.Classify) *Highlighter {
	return &Highlighter{
		id:       id,
		store:    store,
		classify: classify,
		broker:   pubsub.NewBroker[Installed](),
	}
}

// ID returns the buffer identity this highlighter serves.
func (h *Highlighter) ID() mask.BufferID {
	return h.id
}

// SetClassify swaps the word classifier. The next recompute uses it; the
// currently installed mask is untouched until then.
func (h *Highlighter) SetClassify(classify mask.Classify) {
	h.classify = classify
}

// Events returns the broker announcing installs.
func (h *Highlighter) Events() *pubsub.Broker[Installed] {
	return h.broker
}

// Close releases the event broker.
func (h *Highlighter) Close() {
	h.broker.Close()
}

// Recompute tokenizes buffer, builds a fresh mask and installs it. On a
// classify failure nothing is installed: the store keeps the previous,
// stale-but-valid mask and the error propagates to the caller.
func (h *Highlighter) Recompute(buffer string) error {
	words := token.Tokenize(buffer)
	log.Debug(log.CatToken, "buffer tokenized", "words", len(words), "runes", len([]rune(buffer)))

	m, err := mask.Build(words, h.classify)
	if err != nil {
		log.ErrorErr(log.CatMask, "mask rebuild failed", err, "buffer_runes", len([]rune(buffer)))
		return fmt.Errorf("rebuilding mask: %w", err)
	}

	h.store.Install(h.id, buffer, m)
	log.Debug(log.CatMask, "mask installed", "words", len(words), "directives", m.Len())

	h.broker.Publish(pubsub.InstalledEvent, Installed{
		ID:         h.id,
		Content:    buffer,
		Directives: m.Len(),
	})
	return nil
}

// Listener adapts Recompute for a change-listener registry.
func (h *Highlighter) Listener() listener.Func {
	return h.Recompute
}
