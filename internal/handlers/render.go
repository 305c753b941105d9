package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
)

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		log.Printf("render failed path=%s err=%v", r.URL.Path, err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
