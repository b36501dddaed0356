package web

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
)

// =============================================================================
// Message Tests
// =============================================================================

func TestMessage_Event(t *testing.T) {
	two := 2
	tests := []struct {
		name string
		m    message
		want input.Event
	}{
		{"resize", message{Type: "resize", W: 80, H: 60}, input.Resize{Width: 80, Height: 60}},
		{"resize at cap", message{Type: "resize", W: 100, H: 100}, input.Resize{Width: 100, Height: 100}},
		{"resize clamped", message{Type: "resize", W: 9000, H: 20}, input.Resize{Width: 100, Height: 20}},
		{"wheel in", message{Type: "wheel", Dir: "in", X: 0.25, Y: 0.5}, input.Wheel{Dir: input.In, X: 0.25, Y: 0.5}},
		{"wheel out", message{Type: "wheel", Dir: "out"}, input.Wheel{Dir: input.Out}},
		{"down", message{Type: "down", ID: 3, X: 0.1, Y: 0.2}, input.FingerDown{ID: 3, X: 0.1, Y: 0.2}},
		{"move", message{Type: "move", ID: 3, X: 0.3, Y: 0.4}, input.FingerMotion{ID: 3, X: 0.3, Y: 0.4}},
		{"up", message{Type: "up", ID: 3}, input.FingerUp{ID: 3}},
		{"reset", message{Type: "reset"}, input.Reset{}},
		{"goto name", message{Type: "goto", Name: "triple-spiral"}, input.Goto{Name: "triple-spiral"}},
		{"goto index", message{Type: "goto", Index: &two}, input.Goto{Name: "spiral-minibrot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.event(100)
			if err != nil {
				t.Fatalf("event() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("event() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMessage_EventErrors(t *testing.T) {
	bad := 99
	for _, m := range []message{
		{Type: "resize", W: 0, H: 10},
		{Type: "wheel", Dir: "sideways"},
		{Type: "goto", Index: &bad},
		{Type: "teleport"},
	} {
		if _, err := m.event(100); err == nil {
			t.Errorf("event(%+v) error = nil, want error", m)
		}
	}
}

// =============================================================================
// Server Tests
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(Config{
		Params:  escape.Params{MaxIterations: 32},
		Workers: 2,
		MaxSize: 64,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { c.CloseNow() })
	return c
}

// readFrame reads one PNG frame and the status line that follows it.
func readFrame(t *testing.T, ctx context.Context, c *websocket.Conn) (w, h int, lines []string) {
	t.Helper()
	typ, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if typ != websocket.MessageBinary {
		t.Fatalf("message type = %v, want binary", typ)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	var st status
	if err := wsjson.Read(ctx, c, &st); err != nil {
		t.Fatalf("read status error = %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy(), st.Lines
}

func TestServer_Index(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<title>Mandelbrot</title>") {
		t.Errorf("GET / = %d %q", resp.StatusCode, body)
	}
}

func TestServer_SessionFrames(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := dial(t, ctx, ts)

	if err := wsjson.Write(ctx, c, message{Type: "resize", W: 40, H: 30}); err != nil {
		t.Fatal(err)
	}
	w, h, lines := readFrame(t, ctx, c)
	if w != 40 || h != 30 {
		t.Errorf("first frame = %dx%d, want 40x30", w, h)
	}
	if len(lines) == 0 || !strings.Contains(strings.Join(lines, " "), "40x30") {
		t.Errorf("status lines = %q, want size 40x30", lines)
	}

	if err := wsjson.Write(ctx, c, message{Type: "wheel", Dir: "in", X: 0.5, Y: 0.5}); err != nil {
		t.Fatal(err)
	}
	if w, h, _ := readFrame(t, ctx, c); w != 40 || h != 30 {
		t.Errorf("frame after wheel = %dx%d, want 40x30", w, h)
	}

	if err := wsjson.Write(ctx, c, message{Type: "resize", W: 1000, H: 1000}); err != nil {
		t.Fatal(err)
	}
	if w, h, _ := readFrame(t, ctx, c); w != 64 || h != 64 {
		t.Errorf("frame after oversized resize = %dx%d, want 64x64", w, h)
	}

	c.Close(websocket.StatusNormalClosure, "")
}

func TestServer_BadMessagesIgnored(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := dial(t, ctx, ts)

	for _, m := range []message{{Type: "teleport"}, {Type: "up", ID: 42}} {
		if err := wsjson.Write(ctx, c, m); err != nil {
			t.Fatal(err)
		}
	}
	if err := wsjson.Write(ctx, c, message{Type: "resize", W: 20, H: 10}); err != nil {
		t.Fatal(err)
	}
	if w, h, _ := readFrame(t, ctx, c); w != 20 || h != 10 {
		t.Errorf("frame = %dx%d, want 20x10", w, h)
	}
}

func TestServer_RefusesSessionsAfterDrain(t *testing.T) {
	srv := NewServer(Config{Params: escape.Params{MaxIterations: 32}, Workers: 1, MaxSize: 64})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	srv.drain()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err == nil {
		c.CloseNow()
		t.Fatal("Dial() after drain error = nil, want refusal")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Dial() after drain response = %v, want %d", resp, http.StatusServiceUnavailable)
	}
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	srv := NewServer(Config{Params: escape.Params{MaxIterations: 32}, Workers: 1})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
	if srv.acquire() {
		srv.sessions.Done()
		t.Error("acquire() after shutdown = true, want false")
	}
}
