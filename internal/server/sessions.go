package server

import (
	"sync"

	"github.com/playterritory/conquest/internal/game"
)

// TrackerSession pairs one player's tracker with the lock that serializes
// access to it. The tracker itself assumes a single ordered position source;
// the lock covers the handoff between the websocket loop and the REST
// fallback endpoints.
type TrackerSession struct {
	mu      sync.Mutex
	tracker *game.Tracker
}

// Do runs fn with exclusive access to the session's tracker.
func (s *TrackerSession) Do(fn func(*game.Tracker)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.tracker)
}

// Sessions is the in-memory registry of live tracker sessions, one per
// player. Sessions outlive individual connections so a reconnecting player
// keeps their archived paths.
type Sessions struct {
	mu       sync.Mutex
	byPlayer map[string]*TrackerSession
}

func NewSessions() *Sessions {
	return &Sessions{byPlayer: make(map[string]*TrackerSession)}
}

// Get returns the player's session, creating it on first use.
func (s *Sessions) Get(playerID string) *TrackerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byPlayer[playerID]
	if !ok {
		sess = &TrackerSession{tracker: game.NewTracker()}
		s.byPlayer[playerID] = sess
	}
	return sess
}

// Clear drops every session; used when the world resets.
func (s *Sessions) Clear() {
	s.mu.Lock()
	s.byPlayer = make(map[string]*TrackerSession)
	s.mu.Unlock()
}
