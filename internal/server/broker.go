package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/polis/internal/multiplayer"
)

// SessionEvent is the payload pushed to session subscribers.
type SessionEvent struct {
	Type    string               `json:"type"`
	Session *multiplayer.Session `json:"session"`
}

// Broker is an in-process pub/sub for session snapshots, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish fans s out to its subscribers. It has the shape of a
// multiplayer notify hook.
func (b *Broker) Publish(s *multiplayer.Session) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subs[s.ID]) == 0 {
		return
	}
	data, _ := json.Marshal(SessionEvent{Type: "session", Session: s})
	for ch := range b.subs[s.ID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
}

func (b *Broker) subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[sessionID])
}
