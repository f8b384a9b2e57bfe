package server

import (
	"encoding/json"
	"sync"
)

// SSEEvent is the payload published to world-feed subscribers.
type SSEEvent struct {
	Type        string  `json:"type"`
	TerritoryID string  `json:"territoryId,omitempty"`
	Team        string  `json:"team,omitempty"`
	PlayerName  string  `json:"playerName,omitempty"`
	AreaKm2     float64 `json:"areaKm2,omitempty"`
}

// Broker is an in-process pub/sub for SSE events. The world is shared, so
// there is a single feed rather than per-channel keying.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers.
func (b *Broker) Publish(event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
