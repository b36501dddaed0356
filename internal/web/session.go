package web

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/frame"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/hud"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/input"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/snapshot"
	"github.com/joshvictor1024/mandelbrot-explorer/pkg/types"
)

// session is one browser connection with its own view and buffer.
// The read loop only queues events; the orchestrator runs on the goroutine
// that called run, so a pass is never interleaved with event handling.
type session struct {
	conn    *websocket.Conn
	orch    *frame.Orchestrator
	queue   *types.ControlledQueue[input.Event]
	maxSize int
	log     *slog.Logger
	ctx     context.Context
	sized   bool
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.ctx = ctx
	go s.readLoop(ctx)
	return s.orch.Run(ctx, s, s)
}

// readLoop decodes client messages until the connection fails, then closes
// the queue, which ends the session.
func (s *session) readLoop(ctx context.Context) {
	defer s.queue.Close()
	for {
		var m message
		if err := wsjson.Read(ctx, s.conn, &m); err != nil {
			s.log.Debug("read loop done", "err", err)
			return
		}
		e, err := m.event(s.maxSize)
		if err != nil {
			s.log.Debug("message ignored", "err", err)
			continue
		}
		s.queue.Send(e)
	}
}

// Events blocks for the first event, then takes whatever else is queued.
// Until the browser has reported its size nothing is rendered, so events
// before the first Resize are dropped.
func (s *session) Events(context.Context) ([]input.Event, error) {
	for {
		e, ok := s.queue.Recv()
		if !ok {
			return []input.Event{input.Quit{}}, nil
		}
		rest, ok := s.queue.Drain()
		events := append([]input.Event{e}, rest...)
		if !ok {
			events = append(events, input.Quit{})
		}
		if s.sized {
			return events, nil
		}
		for i, e := range events {
			switch e.(type) {
			case input.Resize:
				s.sized = true
				return events[i:], nil
			case input.Quit:
				return events[i:], nil
			}
		}
	}
}

// Present sends recomputed frames only; the browser keeps showing the last
// image otherwise.
func (s *session) Present(f frame.Frame) error {
	if !f.Rendered {
		return nil
	}
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, f.Buffer, snapshot.PNG); err != nil {
		return err
	}
	if err := s.conn.Write(s.ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return fmt.Errorf("web: write frame: %w", err)
	}
	if err := wsjson.Write(s.ctx, s.conn, status{Lines: hud.Lines(f)}); err != nil {
		return fmt.Errorf("web: write status: %w", err)
	}
	return nil
}
