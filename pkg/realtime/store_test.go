package realtime

import (
	"sort"
	"testing"
	"time"
)

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	hub := s.Broadcaster("r1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", "event1")
	got := <-ch
	if got != "event1" {
		t.Errorf("got %q, want event1", got)
	}
}

func TestRoomStore_Publish_UnknownRoom(t *testing.T) {
	s := NewRoomStore[string]()
	s.Publish("nonexistent", "board")
	if s.Broadcaster("nonexistent") != nil {
		t.Error("Broadcaster should be nil for a missing room")
	}
	if s.Len() != 0 {
		t.Errorf("Publish created a room; Len %d", s.Len())
	}
}

func TestRoomStore_Delete(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("r1", "x")
	ch := s.Broadcaster("r1").Subscribe()
	if _, ok := s.Delete("r1"); !ok {
		t.Fatal("Delete returned false for existing room")
	}
	if _, open := <-ch; open {
		t.Error("subscriber channel open after Delete")
	}
	if _, ok := s.Get("r1"); ok {
		t.Error("room still present after Delete")
	}
	if _, ok := s.Delete("r1"); ok {
		t.Error("second Delete returned true")
	}
}

func TestRoomStore_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewRoomStore[string]()
	s.now = func() time.Time { return now }

	s.Create("old", "x")
	s.Create("watched", "x")
	ch := s.Broadcaster("watched").Subscribe()
	defer s.Broadcaster("watched").Unsubscribe(ch)

	now = now.Add(20 * time.Minute)
	s.Create("fresh", "x")
	now = now.Add(20 * time.Minute)

	got := s.Expired(30 * time.Minute)
	sort.Strings(got)
	if len(got) != 1 || got[0] != "old" {
		t.Errorf("Expired = %v, want [old]", got)
	}

	s.Get("old")
	if got := s.Expired(30 * time.Minute); len(got) != 0 {
		t.Errorf("Expired after Get = %v, want none", got)
	}
}
