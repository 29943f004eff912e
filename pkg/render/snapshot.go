package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrUnsupportedFormat is returned by Save for file extensions it cannot
// encode.
var ErrUnsupportedFormat = errors.New("render: unsupported image format")

// Caption writes text into the top-left corner of fb with the 7x13 bitmap
// face. Lines are separated by '\n'.
func (fb *Framebuffer) Caption(text string, c color.RGBA) {
	face := basicfont.Face7x13
	img := &framebufferImage{fb}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	const margin = 2
	for i, line := range strings.Split(text, "\n") {
		y := margin + face.Ascent + i*face.Height
		d.Dot = fixed.P(margin, y)
		d.DrawString(line)
	}
}

// framebufferImage lets font.Drawer write straight into a framebuffer.
type framebufferImage struct {
	fb *Framebuffer
}

func (f *framebufferImage) ColorModel() color.Model { return color.RGBAModel }

func (f *framebufferImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.fb.Width, f.fb.Height)
}

func (f *framebufferImage) At(x, y int) color.Color { return f.fb.GetPixel(x, y) }

func (f *framebufferImage) Set(x, y int, c color.Color) {
	f.fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.save(path, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

// SaveWebP saves the framebuffer as a lossless WebP file.
func (fb *Framebuffer) SaveWebP(path string) error {
	return fb.save(path, func(f *os.File, img image.Image) error {
		return nativewebp.Encode(f, img, nil)
	})
}

// Save picks the encoder from the file extension: .png or .webp.
func (fb *Framebuffer) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return fb.SavePNG(path)
	case ".webp":
		return fb.SaveWebP(path)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (fb *Framebuffer) save(path string, encode func(*os.File, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
