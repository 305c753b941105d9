package snake

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// State is the lifecycle state of a Controller.
type State int

const (
	Beginning State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Beginning:
		return "beginning"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Timer arms a repeating callback. The returned cancel stops further calls; it must
// not wait for a callback that is already running.
type Timer interface {
	Arm(period time.Duration, fire func()) (cancel func())
}

// EventKind names what changed in an Event.
type EventKind string

const (
	EventTick     EventKind = "tick"
	EventAte      EventKind = "ate"
	EventGameOver EventKind = "gameover"
	EventState    EventKind = "state"
	EventResize   EventKind = "resize"
)

// Event is delivered to the Observer after every change, outside the controller lock.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Observer receives controller events.
type Observer func(Event)

// Snapshot is a copy of everything a renderer needs. It shares no memory with the controller.
type Snapshot struct {
	State      State
	Cells      []Cell
	Direction  Direction
	Food       Cell
	HasFood    bool
	Score      int
	Interval   time.Duration
	Grid       Grid
	Ticks      int
	GameOver   bool
	FinalScore int
}

// Head returns the snake's head, or the zero cell for an empty snapshot.
func (s Snapshot) Head() Cell {
	if len(s.Cells) == 0 {
		return Cell{}
	}
	return s.Cells[0]
}

// Options configures a Controller.
type Options struct {
	Timer      Timer
	Rand       *rand.Rand
	SurfacePx  int
	CellTarget int
	Observer   Observer
}

// Controller owns one Session and drives it through the beginning, running, paused
// and stopped states. All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	timer    Timer
	rng      *rand.Rand
	target   int
	observer Observer

	state      State
	session    *Session
	grid       Grid
	pendingPx  int
	gameOver   bool
	finalScore int

	cancel func()
	// gen identifies the current arm; fires from older arms are dropped.
	gen uint64
}

// NewController creates a controller in the beginning state with a fresh session.
func NewController(opts Options) (*Controller, error) {
	if opts.Timer == nil {
		return nil, errors.New("snake: timer is required")
	}
	target := opts.CellTarget
	if target <= 0 {
		target = DefaultCellTarget
	}
	grid := ComputeGrid(opts.SurfacePx, target)
	if grid.Dimension == 0 {
		return nil, ErrInvalidSurface
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	c := &Controller{
		timer:    opts.Timer,
		rng:      rng,
		target:   target,
		observer: opts.Observer,
		state:    Beginning,
		grid:     grid,
	}
	c.session = NewSession(grid, rng)
	return c, nil
}

// OnToggle is the start/pause/resume action.
func (c *Controller) OnToggle() {
	c.mu.Lock()
	switch c.state {
	case Beginning, Paused:
		c.startLocked()
	case Running:
		c.haltLocked()
		c.state = Paused
		c.applyPendingLocked()
	case Stopped:
		c.resetLocked()
		c.startLocked()
	}
	ev := c.eventLocked(EventState)
	c.mu.Unlock()
	c.emit(ev)
}

// OnReset stops any running game and lays out a fresh, idle session.
func (c *Controller) OnReset() {
	c.mu.Lock()
	c.resetLocked()
	ev := c.eventLocked(EventState)
	c.mu.Unlock()
	c.emit(ev)
}

// OnRestart resets and immediately starts a new game.
func (c *Controller) OnRestart() {
	c.mu.Lock()
	c.resetLocked()
	c.startLocked()
	ev := c.eventLocked(EventState)
	c.mu.Unlock()
	c.emit(ev)
}

// OnDirectionRequest queues a turn for the next tick. Reversals are rejected.
func (c *Controller) OnDirectionRequest(d Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snake.ProposeDirection(d)
}

// OnResize records a new surface size. While running the new grid is applied only
// once the game leaves the running state.
func (c *Controller) OnResize(surfacePx int) error {
	if surfacePx <= 0 {
		return ErrInvalidSurface
	}
	c.mu.Lock()
	if c.state == Running {
		c.pendingPx = surfacePx
		c.mu.Unlock()
		return nil
	}
	c.pendingPx = surfacePx
	c.applyPendingLocked()
	ev := c.eventLocked(EventResize)
	c.mu.Unlock()
	c.emit(ev)
	return nil
}

// OnTick runs one simulation step if the game is running.
func (c *Controller) OnTick() {
	c.mu.Lock()
	ev, ok := c.tickLocked()
	c.mu.Unlock()
	if ok {
		c.emit(ev)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the timer. The controller stays readable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked()
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	ev, ok := c.tickLocked()
	c.mu.Unlock()
	if ok {
		c.emit(ev)
	}
}

func (c *Controller) tickLocked() (Event, bool) {
	if c.state != Running {
		return Event{}, false
	}
	switch c.session.Step() {
	case Died:
		c.haltLocked()
		c.state = Stopped
		c.gameOver = true
		c.finalScore = c.session.Score
		c.applyPendingLocked()
		return c.eventLocked(EventGameOver), true
	case Ate:
		// Re-arm so the shorter interval takes effect from the next tick.
		c.haltLocked()
		c.armLocked()
		return c.eventLocked(EventAte), true
	default:
		return c.eventLocked(EventTick), true
	}
}

func (c *Controller) startLocked() {
	c.state = Running
	c.armLocked()
}

func (c *Controller) armLocked() {
	c.gen++
	gen := c.gen
	c.cancel = c.timer.Arm(c.session.Interval, func() { c.fire(gen) })
}

func (c *Controller) haltLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) resetLocked() {
	c.haltLocked()
	if c.pendingPx > 0 {
		c.grid = ComputeGrid(c.pendingPx, c.target)
		c.pendingPx = 0
	}
	c.session = NewSession(c.grid, c.rng)
	c.state = Stopped
	c.gameOver = false
	c.finalScore = 0
}

func (c *Controller) applyPendingLocked() {
	if c.pendingPx <= 0 {
		return
	}
	c.grid = ComputeGrid(c.pendingPx, c.target)
	c.pendingPx = 0
	c.session.Grid = c.grid
	if !c.session.HasFood || !c.grid.Contains(c.session.Food) {
		c.session.Food, c.session.HasFood = PlaceFood(c.rng, c.grid.Dimension, c.session.Snake.occupied())
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.session
	return Snapshot{
		State:      c.state,
		Cells:      s.Snake.Cells(),
		Direction:  s.Snake.Direction(),
		Food:       s.Food,
		HasFood:    s.HasFood,
		Score:      s.Score,
		Interval:   s.Interval,
		Grid:       c.grid,
		Ticks:      s.Ticks,
		GameOver:   c.gameOver,
		FinalScore: c.finalScore,
	}
}

func (c *Controller) eventLocked(kind EventKind) Event {
	return Event{Kind: kind, Snapshot: c.snapshotLocked()}
}

func (c *Controller) emit(ev Event) {
	if c.observer != nil {
		c.observer(ev)
	}
}
