package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gridsnake/internal/game"
	"gridsnake/views/pages"
)

// maxSurfacePx caps the board size a client may ask for.
const maxSurfacePx = 400

type HomeHandler struct {
	store *game.Store
}

func NewHomeHandler(store *game.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/play", h.createGame)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage())
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	surface := parseInt(r.FormValue("surface"), game.DefaultSurfacePx)
	if surface < 1 {
		surface = game.DefaultSurfacePx
	}
	surface = clampSurface(surface)

	gameInstance, err := h.store.Create(surface)
	if err != nil {
		log.Printf("create game failed surface=%d err=%v", surface, err)
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gameInstance.ID, http.StatusSeeOther)
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// clampSurface caps oversized surfaces; non-positive values are left for the controller to reject.
func clampSurface(px int) int {
	if px > maxSurfacePx {
		return maxSurfacePx
	}
	return px
}
