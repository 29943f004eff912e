package render

import (
	"image/color"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

type fakeDisplay struct {
	uv.ScreenBuffer
	displayed int
}

func (d *fakeDisplay) Display() error {
	d.displayed++
	return nil
}

func TestTerminalRenderer(t *testing.T) {
	d := &fakeDisplay{ScreenBuffer: uv.NewScreenBuffer(4, 2)}
	r := NewTerminalRenderer(d, 4, 2)

	w, h := r.FramebufferSize()
	if w != 4 || h != 4 {
		t.Fatalf("FramebufferSize = %dx%d, want 4x4", w, h)
	}

	fb := NewFramebuffer(w, h)
	fb.Clear(RGB(0, 0, 0))
	fb.SetPixel(1, 2, ColorWhite) // top half of cell (1, 1)
	fb.SetPixel(1, 3, ColorGreen) // bottom half of cell (1, 1)

	r.Render(fb)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if d.displayed != 1 {
		t.Errorf("Display called %d times, want 1", d.displayed)
	}

	c := d.CellAt(1, 1)
	if c == nil || c.Content != "▀" {
		t.Fatalf("cell = %+v, want half block", c)
	}
	if c.Style.Fg != color.Color(ColorWhite) {
		t.Errorf("fg = %v, want white", c.Style.Fg)
	}
	if c.Style.Bg != color.Color(ColorGreen) {
		t.Errorf("bg = %v, want green", c.Style.Bg)
	}
}

func TestDrawTransparentHasNoColor(t *testing.T) {
	scr := uv.NewScreenBuffer(2, 1)
	fb := NewFramebuffer(2, 2)
	fb.Draw(scr, uv.Rect(0, 0, 2, 1))

	if c := scr.CellAt(0, 0); c.Style.Fg != nil || c.Style.Bg != nil {
		t.Errorf("transparent pixel drew colors %v/%v", c.Style.Fg, c.Style.Bg)
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"30,30,40", RGB(30, 30, 40), false},
		{"255,0,128", RGB(255, 0, 128), false},
		{"blue", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRGB(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRGB(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
