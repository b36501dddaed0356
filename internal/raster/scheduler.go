package raster

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/viewport"
)

// DefaultWorkers is used when the hardware parallelism cannot be detected.
const DefaultWorkers = 4

// WorkerCount returns the number of CPUs usable by this process, or
// DefaultWorkers if that cannot be determined.
func WorkerCount() int {
	return workerCount(runtime.NumCPU)
}

func workerCount(detect func() int) int {
	if n := detect(); n > 0 {
		return n
	}
	logging.Logger().Warn("cannot detect CPU count, using default", "workers", DefaultWorkers)
	return DefaultWorkers
}

// Band is the half-open row range [Y0, Y1) owned by one worker.
type Band struct {
	Y0, Y1 int
}

func (b Band) Rows() int { return b.Y1 - b.Y0 }

// Partition splits rows [0, height) into workers contiguous bands of
// height/workers rows each. The last band absorbs the remainder, so when
// height < workers every band but the last is empty.
func Partition(height, workers int) []Band {
	workers = max(workers, 1)
	height = max(height, 0)
	q := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{Y0: i * q, Y1: (i + 1) * q}
	}
	bands[workers-1].Y1 = height
	return bands
}

// Stats describes one completed pass.
type Stats struct {
	Workers  int
	Width    int
	Height   int
	Duration time.Duration
}

// Scheduler runs raster passes over a fixed number of workers.
type Scheduler struct {
	workers int
}

// NewScheduler returns a scheduler with the given worker count.
// workers <= 0 selects WorkerCount().
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = WorkerCount()
	}
	return &Scheduler{workers: workers}
}

func (s *Scheduler) Workers() int { return s.workers }

// Render fills every pixel of b with the color of the plane point it maps to
// under v. It returns only after all workers have finished, so b never
// reflects a partial pass. v and p are copied and only read by workers.
func (s *Scheduler) Render(v viewport.Viewport, p escape.Params, b *Buffer) (Stats, error) {
	if err := b.check(); err != nil {
		return Stats{}, err
	}
	if !v.Valid() {
		return Stats{}, fmt.Errorf("raster: %w: %v", viewport.ErrDegenerate, v)
	}

	start := time.Now()
	wg := new(sync.WaitGroup)
	for _, band := range Partition(b.Height, s.workers) {
		if band.Rows() == 0 {
			continue
		}
		bw := bandWork{
			view:   v,
			params: p,
			width:  b.Width,
			height: b.Height,
			band:   band,
			dst:    b.Rows(band.Y0, band.Y1),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			bw.iterate()
		}()
	}
	wg.Wait()

	st := Stats{Workers: s.workers, Width: b.Width, Height: b.Height, Duration: time.Since(start)}
	logging.Logger().Debug("raster pass",
		"size", fmt.Sprintf("%dx%d", b.Width, b.Height),
		"workers", st.Workers,
		"iterations", p.MaxIterations,
		"duration", st.Duration,
	)
	return st, nil
}

// bandWork is everything one worker needs. dst covers exactly the band's rows.
type bandWork struct {
	view          viewport.Viewport
	params        escape.Params
	width, height int
	band          Band
	dst           []escape.Color
}

func (bw *bandWork) iterate() {
	for y := bw.band.Y0; y < bw.band.Y1; y += 1 {
		row := bw.dst[(y-bw.band.Y0)*bw.width : (y-bw.band.Y0+1)*bw.width]
		for x := range row {
			re, im := bw.view.PixelToComplex(x, y, bw.width, bw.height)
			row[x] = bw.params.Eval(re, im)
		}
	}
}
