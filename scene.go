package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/frame"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/hud"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/logging"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/snapshot"
)

const hudMargin = 8

// panelFormat is the byte-order alias matching image.RGBA's R, G, B, A bytes.
var panelFormat uint32 = sdl.PIXELFORMAT_RGBA32

// scene presents frames in the window: the fractal as a streaming texture
// and, on top, the HUD panel as a blended texture.
type scene struct {
	renderer *sdl.Renderer
	canvas   streamTexture // RGBA8888, matches escape.Color
	panel    streamTexture // RGBA32, image.RGBA byte order on any host
	overlay  *hud.Overlay
	showHUD  bool
	saveNext bool
}

func newScene(r *sdl.Renderer, overlay *hud.Overlay, showHUD bool) *scene {
	return &scene{
		renderer: r,
		canvas:   streamTexture{format: sdl.PIXELFORMAT_RGBA8888},
		panel:    streamTexture{format: panelFormat, blend: true},
		overlay:  overlay,
		showHUD:  showHUD,
	}
}

func (s *scene) close() {
	s.canvas.destroy()
	s.panel.destroy()
}

func (s *scene) toggleHUD()       { s.showHUD = !s.showHUD }
func (s *scene) requestSnapshot() { s.saveNext = true }

// Present implements frame.Presenter. The canvas texture is only refilled
// when the buffer was recomputed; idle frames redraw the cached texture.
func (s *scene) Present(f frame.Frame) error {
	if f.Rendered || !s.canvas.fits(f.Buffer.Width, f.Buffer.Height) {
		if err := s.uploadBuffer(f.Buffer); err != nil {
			return err
		}
	}

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()
	if err := s.renderer.Copy(s.canvas.texture, nil, nil); err != nil {
		return fmt.Errorf("copy canvas: %w", err)
	}

	if s.showHUD {
		panel := s.overlay.Render(f)
		if err := s.uploadPanel(panel); err != nil {
			return err
		}
		dst := sdl.Rect{X: hudMargin, Y: hudMargin, W: int32(s.panel.w), H: int32(s.panel.h)}
		if err := s.renderer.Copy(s.panel.texture, nil, &dst); err != nil {
			return fmt.Errorf("copy hud: %w", err)
		}
	}
	s.renderer.Present()

	if s.saveNext {
		s.saveNext = false
		s.save(f.Buffer)
	}
	return nil
}

func (s *scene) uploadBuffer(b *raster.Buffer) error {
	data, pitch, err := s.canvas.lock(s.renderer, b.Width, b.Height)
	if err != nil {
		return err
	}
	defer s.canvas.texture.Unlock()
	for y := 0; y < b.Height; y += 1 {
		row := b.Rows(y, y+1)
		line := data[y*pitch : y*pitch+len(row)*4]
		for x, c := range row {
			binary.NativeEndian.PutUint32(line[x*4:], uint32(c))
		}
	}
	return nil
}

func (s *scene) uploadPanel(img *image.RGBA) error {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	data, pitch, err := s.panel.lock(s.renderer, w, h)
	if err != nil {
		return err
	}
	defer s.panel.texture.Unlock()
	for y := 0; y < h; y += 1 {
		copy(data[y*pitch:y*pitch+w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return nil
}

// save writes b next to the working directory. Failures are logged only.
func (s *scene) save(b *raster.Buffer) {
	name := fmt.Sprintf("mandelbrot-%d.png", time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		logging.Logger().Warn("snapshot", "err", err)
		return
	}
	defer f.Close()
	if err := snapshot.Encode(f, b, snapshot.PNG); err != nil {
		logging.Logger().Warn("snapshot", "err", err)
		return
	}
	logging.Logger().Info("snapshot saved", "file", name)
}

// streamTexture is a streaming texture recreated whenever the size changes.
type streamTexture struct {
	texture *sdl.Texture
	format  uint32
	blend   bool
	w, h    int
}

func (t *streamTexture) fits(w, h int) bool {
	return t.texture != nil && t.w == w && t.h == h
}

// lock returns the texture memory, recreating the texture first if needed.
// The caller must Unlock.
func (t *streamTexture) lock(r *sdl.Renderer, w, h int) ([]byte, int, error) {
	if !t.fits(w, h) {
		t.destroy()
		// only textures with TEXTUREACCESS_STREAMING can be locked
		tex, err := r.CreateTexture(t.format, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
		if err != nil {
			return nil, 0, fmt.Errorf("create texture %dx%d: %w", w, h, err)
		}
		if t.blend {
			tex.SetBlendMode(sdl.BLENDMODE_BLEND)
		}
		t.texture, t.w, t.h = tex, w, h
	}
	data, pitch, err := t.texture.Lock(nil)
	if err != nil {
		return nil, 0, fmt.Errorf("lock texture: %w", err)
	}
	return data, pitch, nil
}

func (t *streamTexture) destroy() {
	if t.texture != nil {
		t.texture.Destroy()
		t.texture = nil
	}
}
