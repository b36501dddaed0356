// Command mandelweb serves the explorer to browsers. Every websocket
// connection gets its own view; frames are sent as PNG images.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/web"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	iterations := flag.Int("iter", escape.DefaultMaxIterations, "maximum iterations per point")
	workers := flag.Int("workers", 0, "raster workers per session, 0 to use the CPU count")
	maxSize := flag.Int("max-size", web.DefaultMaxSize, "largest width or height a client may request")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(web.Config{
		Params:  escape.Params{MaxIterations: *iterations},
		Workers: *workers,
		MaxSize: *maxSize,
	})
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		log.Fatalf("mandelweb: %v", err)
	}
}
