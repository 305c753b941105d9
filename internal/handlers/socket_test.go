package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gridsnake/internal/snake"
	"gridsnake/internal/viewmodel"
)

func TestGameHandler_Socket(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + g.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() viewmodel.WireSnapshot {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var snap viewmodel.WireSnapshot
		if err := conn.ReadJSON(&snap); err != nil {
			t.Fatalf("read: %v", err)
		}
		return snap
	}

	if first := read(); first.State != "beginning" || first.Dimension != 20 {
		t.Fatalf("initial snapshot %+v", first)
	}

	// Inputs are handled in order, so the running snapshot proves the turn was queued first.
	if err := conn.WriteJSON(map[string]any{"type": "button", "id": "down-btn"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(map[string]any{"type": "key", "key": " "}); err != nil {
		t.Fatal(err)
	}
	if snap := read(); snap.State != "running" {
		t.Fatalf("state %q after space, want running", snap.State)
	}

	ts.tick(t)
	if snap := read(); snap.Direction != "down" || snap.Snake[0] != (snake.Cell{X: 5, Y: 6}) {
		t.Errorf("after tick: direction %q head %v, want down (5,6)", snap.Direction, snap.Snake[0])
	}

	ts.store.Delete(g.ID)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
				t.Errorf("close err %v, want going away", err)
			}
			break
		}
	}
}
