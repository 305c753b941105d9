package game

import (
	"sync"
	"time"

	"gridsnake/internal/snake"
)

// Game is one browser session: a snake controller plus what the page shows around it.
type Game struct {
	ID        string
	CreatedAt time.Time
	ctrl      *snake.Controller

	mu    sync.Mutex
	best  int
	games int
}

// Controller exposes the session's controller to input handlers.
func (g *Game) Controller() *snake.Controller {
	return g.ctrl
}

// Dispatch routes an input action to the controller.
func (g *Game) Dispatch(a snake.Action) bool {
	return snake.Dispatch(g.ctrl, a)
}

// Snapshot captures the state needed for rendering UI fragments.
type Snapshot struct {
	snake.Snapshot
	ID        string
	BestScore int
	Games     int
}

// Snapshot returns a consistent view of the current session.
func (g *Game) Snapshot() Snapshot {
	snap := g.ctrl.Snapshot()
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		Snapshot:  snap,
		ID:        g.ID,
		BestScore: g.best,
		Games:     g.games,
	}
}

func (g *Game) observe(ev snake.Event) {
	if ev.Kind != snake.EventGameOver {
		return
	}
	g.mu.Lock()
	g.games++
	if ev.Snapshot.FinalScore > g.best {
		g.best = ev.Snapshot.FinalScore
	}
	g.mu.Unlock()
}
