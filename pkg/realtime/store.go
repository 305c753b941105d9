package realtime

import (
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// RoomStore manages rooms, their broadcasters and when each was last used.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	seen  map[string]time.Time
	now   func() time.Time
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		seen:  make(map[string]time.Time),
		now:   time.Now,
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	s.seen[id] = s.now()
	return r
}

// Get returns the room by ID if it exists and marks it as used.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if ok {
		s.seen[id] = s.now()
	}
	return r, ok
}

// Len returns the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Delete removes the room and closes its broadcaster. It returns the removed room.
func (s *RoomStore[T]) Delete(id string) (*Room[T], bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	delete(s.seen, id)
	s.mu.Unlock()
	if ok && r.hub != nil {
		r.hub.Close()
	}
	return r, ok
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, event string) {
	if hub := s.Broadcaster(id); hub != nil {
		hub.Publish(event)
	}
}

// Broadcaster returns the broadcaster for the room, or nil if the room does not exist.
func (s *RoomStore[T]) Broadcaster(id string) *Broadcaster {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil
	}
	if r.hub == nil {
		r.hub = NewBroadcaster()
	}
	return r.hub
}

// Expired returns the ids of rooms not used for longer than ttl that have no subscribers.
func (s *RoomStore[T]) Expired(ttl time.Duration) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-ttl)
	var ids []string
	for id, at := range s.seen {
		if !at.Before(cutoff) {
			continue
		}
		if r := s.rooms[id]; r.hub != nil && r.hub.Len() > 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
