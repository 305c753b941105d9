package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/rand"

	"gridsnake/internal/render"
	"gridsnake/internal/snake"
	"gridsnake/internal/viewmodel"
	"gridsnake/pkg/realtime"
)

// fireMsg carries a timer callback into the Update loop so ticks never race with View.
type fireMsg struct {
	fire func()
}

// programTimer arms a realtime.Repeater whose fires are delivered as messages.
type programTimer struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (t *programTimer) Arm(period time.Duration, fire func()) func() {
	return realtime.Repeater{}.Arm(period, func() {
		t.mu.Lock()
		send := t.send
		t.mu.Unlock()
		if send != nil {
			send(fireMsg{fire: fire})
		}
	})
}

func (t *programTimer) attach(send func(tea.Msg)) {
	t.mu.Lock()
	t.send = send
	t.mu.Unlock()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5722"))
)

type model struct {
	ctrl    *snake.Controller
	painter render.Painter
	best    int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fireMsg:
		msg.fire()
		if snap := m.ctrl.Snapshot(); snap.GameOver && snap.FinalScore > m.best {
			m.best = snap.FinalScore
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit
		case "enter":
			m.ctrl.OnRestart()
		default:
			snake.Dispatch(m.ctrl, snake.KeyAction(msg.String()))
		}
	case tea.WindowSizeMsg:
		// Two columns per board cell; leave room for the header and status lines.
		side := min(msg.Width/2, msg.Height-4)
		if side > 0 {
			_ = m.ctrl.OnResize(side * 2)
		}
	}
	return m, nil
}

func (m model) View() string {
	snap := m.ctrl.Snapshot()
	cells := render.NewCells(snap.Grid.Dimension, snap.Grid.CellSize)
	m.painter.Draw(cells, snap)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Snake"))
	b.WriteString("\n")
	b.WriteString(cells.String())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Score: %d  Best: %d  [%s] space: %s  r: reset  q: quit",
		snap.Score, m.best, snap.State, strings.ToLower(viewmodel.ToggleLabel(snap.State)))))
	if snap.GameOver {
		b.WriteString("\n")
		b.WriteString(overStyle.Render(fmt.Sprintf("Game Over! Your score: %d  (enter to play again)", snap.FinalScore)))
	}
	return b.String()
}

func main() {
	size := flag.Int("size", 20, "initial board side in terminal cells")
	seed := flag.Uint64("seed", 0, "food RNG seed (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	timer := &programTimer{}
	ctrl, err := snake.NewController(snake.Options{
		Timer:     timer,
		Rand:      rand.New(rand.NewSource(*seed)),
		SurfacePx: *size * 2,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(model{ctrl: ctrl, painter: render.NewPainter()}, tea.WithAltScreen())
	timer.attach(p.Send)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
