package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/joshvictor1024/mandelbrot-explorer/internal/escape"
	"github.com/joshvictor1024/mandelbrot-explorer/internal/raster"
)

func testBuffer() *raster.Buffer {
	b := raster.NewBuffer(3, 2)
	for i := range b.Pix {
		b.Pix[i] = escape.Gray(uint8(i * 40))
	}
	return b
}

func TestImage(t *testing.T) {
	b := testBuffer()
	img := Image(b)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Bounds() = %v, want 3x2", img.Bounds())
	}
	for y := range 2 {
		for x := range 3 {
			got := img.RGBAAt(x, y)
			v := uint8((y*3 + x) * 40)
			if got.R != v || got.G != v || got.B != v || got.A != 255 {
				t.Errorf("RGBAAt(%d, %d) = %v, want gray %d", x, y, got, v)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out.png", PNG, false},
		{"OUT.BMP", BMP, false},
		{"dir.v2/frame.bmp", BMP, false},
		{"out.jpg", PNG, true},
		{"noext", PNG, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("FormatFromPath(%q) error = %v, want error %v", tt.path, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestEncode_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testBuffer(), PNG); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v, want 3x2", img.Bounds())
	}
	r, _, _, _ := img.At(2, 1).RGBA()
	if uint8(r>>8) != 200 {
		t.Errorf("decoded pixel (2, 1) red = %d, want 200", r>>8)
	}
}

func TestEncode_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testBuffer(), BMP); err != nil {
		t.Fatal(err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v, want 3x2", img.Bounds())
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testBuffer(), Format(9)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(Format(9)) error = %v, want %v", err, ErrUnknownFormat)
	}
}
