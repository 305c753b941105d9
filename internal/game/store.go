package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"gridsnake/internal/snake"
	"gridsnake/pkg/realtime"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("game not found")

// SSE event names published to a session's subscribers.
const (
	EventBoard  = "board"
	EventStatus = "status"
)

// DefaultSurfacePx is used when a client has not reported its canvas size yet.
const DefaultSurfacePx = 400

// Options configures a Store.
type Options struct {
	// Timer drives every session and the janitor, so it must keep any number of
	// arms live at once. Defaults to realtime.Repeater.
	Timer snake.Timer
	// Seed, when non-zero, makes food placement reproducible across sessions.
	Seed uint64
	// CellTarget is the preferred cell count per side.
	CellTarget int
}

// Store holds sessions and delegates to realtime.RoomStore for lookup, broadcast and expiry.
type Store struct {
	r      *realtime.RoomStore[*Game]
	timer  snake.Timer
	target int

	mu   sync.Mutex
	seed uint64
}

// NewStore creates an in-memory session store.
func NewStore(opts Options) *Store {
	timer := opts.Timer
	if timer == nil {
		timer = realtime.Repeater{}
	}
	return &Store{
		r:      realtime.NewRoomStore[*Game](),
		timer:  timer,
		target: opts.CellTarget,
		seed:   opts.Seed,
	}
}

// Create starts a new idle session for a surface of surfacePx pixels.
func (s *Store) Create(surfacePx int) (*Game, error) {
	if surfacePx <= 0 {
		surfacePx = DefaultSurfacePx
	}
	id := uuid.NewString()
	g := &Game{ID: id, CreatedAt: time.Now().UTC()}
	ctrl, err := snake.NewController(snake.Options{
		Timer:      s.timer,
		Rand:       s.newRand(),
		SurfacePx:  surfacePx,
		CellTarget: s.target,
		Observer: func(ev snake.Event) {
			g.observe(ev)
			for _, name := range eventsFor(ev.Kind) {
				s.r.Publish(id, name)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	g.ctrl = ctrl
	s.r.Create(id, g)
	log.Printf("game created id=%s surface=%d", id, surfacePx)
	return g, nil
}

// Get returns a session by ID if it exists.
func (s *Store) Get(id string) (*Game, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Lookup is Get with an error for unknown ids.
func (s *Store) Lookup(id string) (*Game, error) {
	g, ok := s.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the broadcaster for a session, or nil if it does not exist.
func (s *Store) Broadcaster(id string) *realtime.Broadcaster {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of a session update.
func (s *Store) Publish(id string, event string) {
	s.r.Publish(id, event)
}

// Delete stops the session's timer and disconnects its subscribers.
func (s *Store) Delete(id string) bool {
	room, ok := s.r.Delete(id)
	if !ok {
		return false
	}
	room.State.ctrl.Close()
	return true
}

// Reap deletes sessions idle for longer than ttl and returns how many were removed.
func (s *Store) Reap(ttl time.Duration) int {
	n := 0
	for _, id := range s.r.Expired(ttl) {
		if s.Delete(id) {
			log.Printf("game expired id=%s", id)
			n++
		}
	}
	return n
}

// StartJanitor reaps idle sessions every interval until the returned stop is called.
func (s *Store) StartJanitor(ttl, interval time.Duration) (stop func()) {
	return s.timer.Arm(interval, func() { s.Reap(ttl) })
}

func (s *Store) newRand() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seed == 0 {
		return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	src := rand.NewSource(s.seed)
	s.seed++
	return rand.New(src)
}

func eventsFor(kind snake.EventKind) []string {
	switch kind {
	case snake.EventTick, snake.EventResize:
		return []string{EventBoard}
	default:
		return []string{EventBoard, EventStatus}
	}
}
