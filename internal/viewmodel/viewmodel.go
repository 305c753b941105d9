package viewmodel

import "gridsnake/internal/snake"

// GamePage holds data for the main game page template.
type GamePage struct {
	Title     string
	GameID    string
	InviteURL string
	Board     BoardFragment
	Status    StatusFragment
}

// BoardFragment holds the rendered board.
type BoardFragment struct {
	GameID    string
	SurfacePx int
	SVG       string
}

// StatusFragment holds the score line, the toggle button and the game-over panel.
type StatusFragment struct {
	GameID      string
	State       string
	ToggleLabel string
	Score       int
	BestScore   int
	Length      int
	IntervalMs  int64
	GameOver    bool
	FinalScore  int
}

// ToggleLabel is the start button caption for a state.
func ToggleLabel(s snake.State) string {
	switch s {
	case snake.Running:
		return "Pause"
	case snake.Paused:
		return "Resume"
	default:
		return "Start Game"
	}
}

// WireSnapshot is the JSON pushed to websocket clients.
type WireSnapshot struct {
	State      string       `json:"state"`
	Snake      []snake.Cell `json:"snake"`
	Direction  string       `json:"direction"`
	Food       *snake.Cell  `json:"food,omitempty"`
	Score      int          `json:"score"`
	IntervalMs int64        `json:"intervalMs"`
	CellSize   int          `json:"cellSize"`
	Dimension  int          `json:"dimension"`
	SurfacePx  int          `json:"surfacePx"`
	GameOver   bool         `json:"gameOver"`
	FinalScore int          `json:"finalScore"`
}

// NewWireSnapshot converts a controller snapshot for the websocket.
func NewWireSnapshot(s snake.Snapshot) WireSnapshot {
	out := WireSnapshot{
		State:      s.State.String(),
		Snake:      s.Cells,
		Direction:  s.Direction.String(),
		Score:      s.Score,
		IntervalMs: s.Interval.Milliseconds(),
		CellSize:   s.Grid.CellSize,
		Dimension:  s.Grid.Dimension,
		SurfacePx:  s.Grid.SurfacePx,
		GameOver:   s.GameOver,
		FinalScore: s.FinalScore,
	}
	if s.HasFood {
		food := s.Food
		out.Food = &food
	}
	return out
}
