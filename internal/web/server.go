// Package web serves the explorer to browsers over a websocket.
//
// Every connection gets its own orchestrator. The browser sends resize,
// wheel, pointer and navigation messages as JSON; the server answers each
// recomputed frame with a binary PNG message followed by a JSON status line.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/frame"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/pkg/types"
)

//go:embed static
var staticFiles embed.FS

const (
	DefaultMaxSize = 4096
	// size used until the browser reports its own
	initialWidth  = 640
	initialHeight = 480
	readLimit     = 4096
)

type Config struct {
	Params  escape.Params
	Workers int
	// MaxSize caps the buffer width and height a client may request.
	MaxSize int
	// OriginPatterns are passed to websocket.Accept. Empty means same origin.
	OriginPatterns []string
}

type Server struct {
	cfg Config
	mux *http.ServeMux

	mu       sync.Mutex
	closing  bool
	sessions sync.WaitGroup
}

func NewServer(cfg Config) *Server {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.Handle("/", http.FileServerFS(static))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// acquire registers a session unless shutdown has begun.
func (s *Server) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions.Add(1)
	return true
}

// drain refuses new sessions and waits for the open ones.
func (s *Server) drain() {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.sessions.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Done()

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.OriginPatterns,
	})
	if err != nil {
		logging.Logger().Warn("websocket accept", "err", err)
		return
	}
	c.SetReadLimit(readLimit)

	log := logging.Logger().With("remote", r.RemoteAddr)
	orch, err := frame.New(frame.Config{
		Width:   initialWidth,
		Height:  initialHeight,
		Params:  s.cfg.Params,
		Workers: s.cfg.Workers,
	})
	if err != nil {
		c.Close(websocket.StatusInternalError, "init failed")
		log.Error("session init", "err", err)
		return
	}

	sess := &session{
		conn:    c,
		orch:    orch,
		queue:   types.NewControlledQueue[input.Event](),
		maxSize: s.cfg.MaxSize,
		log:     log,
	}
	log.Info("session opened", "workers", orch.Workers())
	err = sess.run(r.Context())
	if err != nil && websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
		log.Warn("session ended", "err", err)
		c.Close(websocket.StatusInternalError, "render failed")
		return
	}
	log.Info("session closed")
	c.Close(websocket.StatusNormalClosure, "")
}

// ListenAndServe serves on addr until ctx is done, then shuts down and waits
// for open sessions.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	s.drain()
	return nil
}
