package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/websocket"

	"gridsnake/internal/game"
	"gridsnake/internal/snake"
	"gridsnake/internal/viewmodel"
	"gridsnake/views/components"
)

const keepAliveInterval = 25 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hub := h.store.Broadcaster(instance.ID)
	if hub == nil {
		return
	}
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendSnapshot := func(includeBoard bool, includeStatus bool) {
		snapshot := instance.Snapshot()
		if includeBoard {
			writeSSE(w, game.EventBoard, renderToString(r, components.BoardFragment(buildBoardFragment(snapshot))))
		}
		if includeStatus {
			writeSSE(w, game.EventStatus, renderToString(r, components.StatusFragment(buildStatusFragment(snapshot))))
		}
		flusher.Flush()
	}

	sendSnapshot(true, true)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			switch event {
			case game.EventBoard:
				sendSnapshot(true, false)
			case game.EventStatus:
				sendSnapshot(false, true)
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// clientMessage is an input sent by a websocket client.
type clientMessage struct {
	Type string  `json:"type"`
	Key  string  `json:"key,omitempty"`
	ID   string  `json:"id,omitempty"`
	DX   float64 `json:"dx,omitempty"`
	DY   float64 `json:"dy,omitempty"`
	Px   int     `json:"px,omitempty"`
}

func (m clientMessage) action() snake.Action {
	switch m.Type {
	case "key":
		return snake.KeyAction(m.Key)
	case "button":
		return snake.ButtonAction(m.ID)
	case "swipe":
		return snake.SwipeAction(m.DX, m.DY)
	}
	return snake.Action{}
}

// socket pushes a JSON snapshot on every board change and accepts input messages.
// Reads happen on the handler goroutine; a single writer goroutine owns all writes.
func (h *GameHandler) socket(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	hub := h.store.Broadcaster(instance.ID)
	if hub == nil {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed game=%s err=%v", instance.ID, err)
		return
	}
	defer conn.Close()

	sub := hub.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		push := func() error {
			return conn.WriteJSON(viewmodel.NewWireSnapshot(instance.Snapshot().Snapshot))
		}
		if err := push(); err != nil {
			return
		}
		for event := range sub {
			if event != game.EventBoard {
				continue
			}
			if err := push(); err != nil {
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws read error game=%s err=%v", instance.ID, err)
			}
			break
		}
		if msg.Type == "resize" {
			if err := instance.Controller().OnResize(clampSurface(msg.Px)); err != nil {
				log.Printf("ws resize rejected game=%s px=%d err=%v", instance.ID, msg.Px, err)
			}
			continue
		}
		instance.Dispatch(msg.action())
	}
	hub.Unsubscribe(sub)
	<-done
}

func renderToString(r *http.Request, component templ.Component) string {
	var buf bytes.Buffer
	_ = component.Render(r.Context(), &buf)
	return buf.String()
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
