package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"

	"gridsnake/internal/render"
	"gridsnake/internal/snake"
	"gridsnake/pkg/realtime"
)

// surface draws straight into the current raylib frame.
type surface struct {
	fill rl.Color
}

func (s *surface) SetFill(c color.RGBA) {
	s.fill = rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *surface) FillRect(x, y, w, h int) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), s.fill)
}

var keys = map[int32]string{
	rl.KeyUp:    "up",
	rl.KeyDown:  "down",
	rl.KeyLeft:  "left",
	rl.KeyRight: "right",
	rl.KeyW:     "w",
	rl.KeyA:     "a",
	rl.KeyS:     "s",
	rl.KeyD:     "d",
	rl.KeySpace: "space",
	rl.KeyR:     "r",
}

// minSwipe is how far the mouse must travel, in pixels, before a drag counts as a swipe.
const minSwipe = 10

func main() {
	size := flag.Int("size", 400, "initial window size in pixels")
	seed := flag.Uint64("seed", 0, "food RNG seed (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(*size), int32(*size), "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	timer := realtime.NewPolled(nil)
	ctrl, err := snake.NewController(snake.Options{
		Timer:     timer,
		Rand:      rand.New(rand.NewSource(*seed)),
		SurfacePx: *size,
		Observer: func(ev snake.Event) {
			if ev.Kind == snake.EventGameOver {
				log.Printf("game over score=%d ticks=%d", ev.Snapshot.FinalScore, ev.Snapshot.Ticks)
			}
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer ctrl.Close()

	painter := render.NewPainter()
	canvas := &surface{}
	var dragFrom rl.Vector2
	dragging := false

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			side := min(rl.GetScreenWidth(), rl.GetScreenHeight())
			if err := ctrl.OnResize(side); err != nil {
				log.Printf("resize ignored side=%d err=%v", side, err)
			}
		}

		for key, name := range keys {
			if rl.IsKeyPressed(key) {
				snake.Dispatch(ctrl, snake.KeyAction(name))
			}
		}

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			dragFrom = rl.GetMousePosition()
			dragging = true
		}
		if dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			pos := rl.GetMousePosition()
			dx, dy := pos.X-dragFrom.X, pos.Y-dragFrom.Y
			if dx*dx+dy*dy >= minSwipe*minSwipe {
				snake.Dispatch(ctrl, snake.SwipeAction(float64(dx), float64(dy)))
				dragFrom = pos
			}
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			dragging = false
		}

		timer.Poll(time.Now())

		snap := ctrl.Snapshot()
		rl.BeginDrawing()
		rl.ClearBackground(rl.LightGray)
		painter.Draw(canvas, snap)
		rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), 8, 8, 20, rl.DarkGray)
		switch {
		case snap.GameOver:
			drawCentered(snap.Grid.SurfacePx, "Game Over!", -20, 30)
			drawCentered(snap.Grid.SurfacePx, fmt.Sprintf("Your score: %d  (space to play again)", snap.FinalScore), 20, 16)
		case snap.State != snake.Running:
			drawCentered(snap.Grid.SurfacePx, "Space to start", 0, 20)
		}
		rl.EndDrawing()
	}
}

func drawCentered(side int, text string, dy, fontSize int32) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, (int32(side)-w)/2, int32(side)/2+dy, fontSize, rl.Black)
}
