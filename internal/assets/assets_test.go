package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// writeImage writes a 2x3 image whose top row is red and other rows blue.
func writeImage(t *testing.T, path string, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			c := color.NRGBA{B: 255, A: 255}
			if y == 0 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
}

func pngEncode(f *os.File, img image.Image) error { return png.Encode(f, img) }
func bmpEncode(f *os.File, img image.Image) error { return bmp.Encode(f, img) }

func TestResolveSearchesDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "lit.vert"), []byte("void main() {}"), 0o644))

	r := NewResolver(filepath.Join(dir, "missing"), dir)
	full, err := r.Resolve("shaders/lit.vert")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shaders", "lit.vert"), full)

	src, err := r.ReadText("shaders/lit.vert")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)
}

func TestReadTextMissing(t *testing.T) {
	r := NewResolver(t.TempDir())
	_, err := r.ReadText("shaders/red.vert")

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "shaders/red.vert", fe.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "shaders/red.vert")
}

func TestResolveRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := (&Resolver{}).Resolve(dir)
	var fe *FileError
	assert.True(t, errors.As(err, &fe))
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), pngEncode)
	writeImage(t, filepath.Join(dir, "a.bmp"), bmpEncode)
	r := NewResolver(dir)

	for _, name := range []string{"a.png", "a.bmp"} {
		t.Run(name, func(t *testing.T) {
			img, err := r.DecodeImage(name, DecodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, 2, img.Width)
			assert.Equal(t, 3, img.Height)
			require.Len(t, img.Pix, 2*3*4)
			assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[0:4])
			assert.Equal(t, []byte{0, 0, 255, 255}, img.Pix[len(img.Pix)-4:])
		})
	}
}

func TestDecodeImageFlip(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), pngEncode)

	img, err := NewResolver(dir).DecodeImage("a.png", DecodeOptions{FlipV: true})
	require.NoError(t, err)
	// the red row is now last
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pix[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[len(img.Pix)-4:])
}

func TestDecodeImageMaxSize(t *testing.T) {
	dir := t.TempDir()
	big := image.NewRGBA(image.Rect(0, 0, 64, 32))
	f, err := os.Create(filepath.Join(dir, "big.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, big))
	require.NoError(t, f.Close())

	img, err := NewResolver(dir).DecodeImage("big.png", DecodeOptions{MaxSize: 16})
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.Len(t, img.Pix, 16*8*4)
}

func TestDecodeImageErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o644))
	r := NewResolver(dir)

	_, err := r.DecodeImage("junk.png", DecodeOptions{})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "junk.png", de.Path)

	_, err = r.DecodeImage("absent.png", DecodeOptions{})
	var fe *FileError
	assert.True(t, errors.As(err, &fe))
}
