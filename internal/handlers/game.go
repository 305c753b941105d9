package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gridsnake/internal/game"
	paint "gridsnake/internal/render"
	"gridsnake/internal/snake"
	"gridsnake/internal/viewmodel"
	"gridsnake/views/components"
	"gridsnake/views/pages"
)

type GameHandler struct {
	store *game.Store
}

func NewGameHandler(store *game.Store) *GameHandler {
	return &GameHandler{store: store}
}

// RegisterRoutes mounts the page, fragment and input routes.
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.gamePage)
		r.Get("/board", h.boardFragment)
		r.Get("/status", h.statusFragment)
		r.Get("/state.json", h.stateJSON)
		r.Get("/qr.png", h.qrCode)
		r.Post("/toggle", h.action(func(*http.Request) snake.Action { return snake.Action{Kind: snake.ActionToggle} }))
		r.Post("/reset", h.action(func(*http.Request) snake.Action { return snake.Action{Kind: snake.ActionReset} }))
		r.Post("/restart", h.action(func(*http.Request) snake.Action { return snake.Action{Kind: snake.ActionRestart} }))
		r.Post("/direction", h.action(directionAction))
		r.Post("/key", h.action(func(r *http.Request) snake.Action { return snake.KeyAction(r.FormValue("key")) }))
		r.Post("/swipe", h.action(swipeAction))
		r.Post("/resize", h.resize)
	})
}

// RegisterStreamRoutes mounts the long-lived SSE and websocket routes. They are kept
// apart so request timeouts do not cut them off.
func (h *GameHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/game/{id}/stream", h.stream)
	r.Get("/game/{id}/ws", h.socket)
}

func (h *GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	instance, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return instance, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snapshot := instance.Snapshot()
	data := viewmodel.GamePage{
		Title:     "Snake",
		GameID:    instance.ID,
		InviteURL: buildInviteURL(r, instance.ID),
		Board:     buildBoardFragment(snapshot),
		Status:    buildStatusFragment(snapshot),
	}
	render(w, r, pages.GamePage(data))
}

func (h *GameHandler) boardFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.BoardFragment(buildBoardFragment(instance.Snapshot())))
}

func (h *GameHandler) statusFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.StatusFragment(buildStatusFragment(instance.Snapshot())))
}

func (h *GameHandler) stateJSON(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, viewmodel.NewWireSnapshot(instance.Snapshot().Snapshot))
}

// action adapts an input parser into a POST handler. Unrecognised input is ignored.
func (h *GameHandler) action(parse func(*http.Request) snake.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance, ok := h.lookup(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		instance.Dispatch(parse(r))
		respond(w, r, instance.ID)
	}
}

func (h *GameHandler) resize(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	px, err := strconv.Atoi(r.FormValue("px"))
	if err == nil {
		err = instance.Controller().OnResize(clampSurface(px))
	}
	if err != nil {
		log.Printf("resize rejected game=%s px=%q err=%v", instance.ID, r.FormValue("px"), err)
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}
	respond(w, r, instance.ID)
}

func directionAction(r *http.Request) snake.Action {
	d, ok := snake.ParseDirection(strings.ToLower(r.FormValue("dir")))
	if !ok {
		return snake.Action{}
	}
	return snake.Action{Kind: snake.ActionTurn, Direction: d}
}

func swipeAction(r *http.Request) snake.Action {
	dx, errX := strconv.ParseFloat(r.FormValue("dx"), 64)
	dy, errY := strconv.ParseFloat(r.FormValue("dy"), 64)
	if errX != nil || errY != nil {
		return snake.Action{}
	}
	return snake.SwipeAction(dx, dy)
}

// respond answers script-driven requests with 204 and plain form posts with a redirect.
func respond(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Header.Get("Hx-Request") == "true" || r.Header.Get("X-Requested-With") != "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/game/"+gameID, http.StatusSeeOther)
}

func buildInviteURL(r *http.Request, gameID string) string {
	if baseURL := strings.TrimSpace(os.Getenv("BASE_URL")); baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/game/" + gameID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/game/" + gameID
}

func buildBoardFragment(snapshot game.Snapshot) viewmodel.BoardFragment {
	svg := paint.NewSVG(snapshot.Grid.SurfacePx)
	paint.NewPainter().Draw(svg, snapshot.Snapshot)
	return viewmodel.BoardFragment{
		GameID:    snapshot.ID,
		SurfacePx: snapshot.Grid.SurfacePx,
		SVG:       svg.String(),
	}
}

func buildStatusFragment(snapshot game.Snapshot) viewmodel.StatusFragment {
	return viewmodel.StatusFragment{
		GameID:      snapshot.ID,
		State:       snapshot.State.String(),
		ToggleLabel: viewmodel.ToggleLabel(snapshot.State),
		Score:       snapshot.Score,
		BestScore:   snapshot.BestScore,
		Length:      len(snapshot.Cells),
		IntervalMs:  snapshot.Interval.Milliseconds(),
		GameOver:    snapshot.GameOver,
		FinalScore:  snapshot.FinalScore,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
