package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"

	"gridsnake/internal/game"
	"gridsnake/internal/snake"
	"gridsnake/internal/viewmodel"
	"gridsnake/pkg/realtime"
)

// clock is a fake time source shared by the test and the handler goroutines.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type testServer struct {
	*httptest.Server
	store  *game.Store
	timer  *realtime.Polled
	clock  *clock
	client *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{clock: &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	ts.timer = realtime.NewPolled(ts.clock.Now)
	ts.store = game.NewStore(game.Options{Timer: ts.timer, Seed: 3})

	r := chi.NewRouter()
	gh := NewGameHandler(ts.store)
	gh.RegisterStreamRoutes(r)
	NewHomeHandler(ts.store).RegisterRoutes(r)
	gh.RegisterRoutes(r)

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Close)
	ts.client = &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		Timeout:       5 * time.Second,
	}
	return ts
}

// tick advances the fake clock by one interval and fires the session timer.
func (ts *testServer) tick(t *testing.T) {
	t.Helper()
	if !ts.timer.Poll(ts.clock.Advance(time.Second)) {
		t.Fatal("no timer armed")
	}
}

func (ts *testServer) newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := ts.store.Create(400)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return g
}

func (ts *testServer) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "fetch")
	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	resp.Body.Close()
	return resp
}

func (ts *testServer) document(t *testing.T, path string) *goquery.Document {
	t.Helper()
	resp, err := ts.client.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return doc
}

func TestHomeHandler_Home(t *testing.T) {
	ts := newTestServer(t)
	doc := ts.document(t, "/")
	if doc.Find("form[action='/play'] #play-btn").Length() != 1 {
		t.Error("home page has no play button")
	}
}

func TestHomeHandler_CreateGame(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.client.PostForm(ts.URL+"/play", url.Values{"surface": {"1000"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	id := strings.TrimPrefix(loc, "/game/")
	g, ok := ts.store.Get(id)
	if !ok {
		t.Fatalf("redirect %q does not name a session", loc)
	}
	if px := g.Snapshot().Grid.SurfacePx; px != maxSurfacePx {
		t.Errorf("surface %d, want capped %d", px, maxSurfacePx)
	}
}

func TestGameHandler_GamePage(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	doc := ts.document(t, "/game/"+g.ID)

	if n := doc.Find("#board-wrap rect").Length(); n != 6 {
		t.Errorf("%d rects on the board, want 6", n)
	}
	if got := strings.TrimSpace(doc.Find("#start-btn").Text()); got != "Start Game" {
		t.Errorf("start button %q, want Start Game", got)
	}
	if got := doc.Find("#score").Text(); got != "Score: 0" {
		t.Errorf("score %q, want Score: 0", got)
	}
	if doc.Find("#game-over").Length() != 0 {
		t.Error("game over panel shown before playing")
	}
	if src, _ := doc.Find("#qr").Attr("src"); src != "/game/"+g.ID+"/qr.png" {
		t.Errorf("qr src %q", src)
	}
	for _, id := range []string{"up-btn", "down-btn", "left-btn", "right-btn", "reset-btn"} {
		if doc.Find("#"+id).Length() != 1 {
			t.Errorf("missing #%s", id)
		}
	}
}

func TestGameHandler_NotFound(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/game/nope", "/game/nope/board", "/game/nope/qr.png", "/game/nope/stream"} {
		resp, err := ts.client.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want 404", path, resp.StatusCode)
		}
	}
	if resp := ts.post(t, "/game/nope/toggle", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("POST toggle: status %d, want 404", resp.StatusCode)
	}
}

func TestGameHandler_Toggle(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)

	if resp := ts.post(t, "/game/"+g.ID+"/toggle", nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d, want 204", resp.StatusCode)
	}
	if st := g.Controller().State(); st != snake.Running {
		t.Fatalf("state %s, want running", st)
	}
	doc := ts.document(t, "/game/"+g.ID+"/status")
	if got := doc.Find("#start-btn").Text(); got != "Pause" {
		t.Errorf("button %q, want Pause", got)
	}

	ts.post(t, "/game/"+g.ID+"/toggle", nil)
	doc = ts.document(t, "/game/"+g.ID+"/status")
	if got := doc.Find("#start-btn").Text(); got != "Resume" {
		t.Errorf("button %q, want Resume", got)
	}
}

func TestGameHandler_FormPostRedirects(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	resp, err := ts.client.PostForm(ts.URL+"/game/"+g.ID+"/reset", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/game/"+g.ID {
		t.Errorf("status %d location %q, want 303 to the game", resp.StatusCode, resp.Header.Get("Location"))
	}
	if st := g.Controller().State(); st != snake.Stopped {
		t.Errorf("state %s, want stopped", st)
	}
}

func TestGameHandler_Steering(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	base := "/game/" + g.ID

	ts.post(t, base+"/toggle", nil)
	ts.post(t, base+"/direction", url.Values{"dir": {"left"}})
	ts.post(t, base+"/direction", url.Values{"dir": {"down"}})
	ts.tick(t)
	if head := g.Snapshot().Head(); head != (snake.Cell{X: 5, Y: 6}) {
		t.Errorf("head %v after turning down, want (5,6)", head)
	}

	ts.post(t, base+"/swipe", url.Values{"dx": {"40"}, "dy": {"3"}})
	ts.tick(t)
	if head := g.Snapshot().Head(); head != (snake.Cell{X: 6, Y: 6}) {
		t.Errorf("head %v after swiping right, want (6,6)", head)
	}

	ts.post(t, base+"/key", url.Values{"key": {"ArrowUp"}})
	ts.post(t, base+"/swipe", url.Values{"dx": {"bad"}})
	ts.post(t, base+"/swipe", url.Values{"dx": {"NaN"}, "dy": {"0"}})
	ts.post(t, base+"/swipe", url.Values{"dx": {"0"}, "dy": {"+Inf"}})
	ts.tick(t)
	if head := g.Snapshot().Head(); head != (snake.Cell{X: 6, Y: 5}) {
		t.Errorf("head %v after ArrowUp, want (6,5)", head)
	}
}

func TestGameHandler_Resize(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	base := "/game/" + g.ID

	if resp := ts.post(t, base+"/resize", url.Values{"px": {"200"}}); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d, want 204", resp.StatusCode)
	}
	if grid := g.Snapshot().Grid; grid.CellSize != 10 {
		t.Errorf("cell size %d, want 10", grid.CellSize)
	}
	for _, px := range []string{"0", "-4", "abc"} {
		if resp := ts.post(t, base+"/resize", url.Values{"px": {px}}); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("px=%s: status %d, want 400", px, resp.StatusCode)
		}
	}
}

func TestGameHandler_StateJSON(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	resp, err := ts.client.Get(ts.URL + "/game/" + g.ID + "/state.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got viewmodel.WireSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State != "beginning" || len(got.Snake) != 3 || got.Food == nil || got.IntervalMs != 100 {
		t.Errorf("unexpected state %+v", got)
	}
}

func TestGameHandler_QRCode(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)
	resp, err := ts.client.Get(ts.URL + "/game/" + g.ID + "/qr.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type %q", ct)
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestGameHandler_Stream(t *testing.T) {
	ts := newTestServer(t)
	g := ts.newGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/game/"+g.ID+"/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	events := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
				events <- name
			}
		}
		close(events)
	}()

	want := func(name string) {
		t.Helper()
		select {
		case got := <-events:
			if got != name {
				t.Errorf("event %q, want %q", got, name)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", name)
		}
	}
	want(game.EventBoard)
	want(game.EventStatus)

	g.Dispatch(snake.Action{Kind: snake.ActionToggle})
	want(game.EventBoard)
	want(game.EventStatus)
}
