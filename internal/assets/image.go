package assets

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster: Width*Height RGBA8 pixels, tightly packed, rows top-down
// unless flipped.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// DecodeOptions controls DecodeImage.
type DecodeOptions struct {
	// FlipV stores rows bottom-up, as OpenGL expects for texcoord v = 0 at the bottom.
	FlipV bool
	// MaxSize scales the image down (keeping aspect) so neither side exceeds it. 0 disables.
	MaxSize int
}

// DecodeImage resolves path and decodes it into RGBA8. Supported formats: PNG, JPEG, GIF,
// BMP, TIFF and WebP.
func (r *Resolver) DecodeImage(path string, opts DecodeOptions) (*Image, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Path: path, Err: errors.New("empty image")}
	}

	rgba := clone.AsRGBA(src)
	if opts.MaxSize > 0 && (b.Dx() > opts.MaxSize || b.Dy() > opts.MaxSize) {
		w, h := fit(b.Dx(), b.Dy(), opts.MaxSize)
		rgba = transform.Resize(rgba, w, h, transform.Linear)
	}
	if opts.FlipV {
		rgba = transform.FlipV(rgba)
	}
	return pack(rgba), nil
}

func fit(w, h, limit int) (int, int) {
	if w >= h {
		nh := h * limit / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := w * limit / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// pack copies img into a tightly packed, zero-origin pixel slice.
func pack(img *image.RGBA) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*w*4:(y+1)*w*4], img.Pix[start:start+w*4])
	}
	return out
}
