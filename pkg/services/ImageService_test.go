package services

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, jpeg.Encode(f, img, nil))
}

func decodedSize(t *testing.T, r io.ReadCloser) (int, int) {
	t.Helper()
	defer r.Close()

	img, _, err := image.Decode(r)
	require.NoError(t, err)

	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestOpenWithoutMaxEdgeReturnsTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	writeJPEG(t, path, 200, 100)

	original, err := os.ReadFile(path)
	require.NoError(t, err)

	r, err := NewImageService(ImageServiceConfig{}).Open(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestOpenDownscalesAlongLongestEdge(t *testing.T) {
	dir := t.TempDir()
	landscape := filepath.Join(dir, "landscape.jpg")
	portrait := filepath.Join(dir, "portrait.JPEG")

	writeJPEG(t, landscape, 200, 100)
	writeJPEG(t, portrait, 60, 120)

	service := NewImageService(ImageServiceConfig{MaxEdge: 50})

	r, err := service.Open(landscape)
	require.NoError(t, err)
	width, height := decodedSize(t, r)
	assert.Equal(t, 50, width)
	assert.Equal(t, 25, height)

	r, err = service.Open(portrait)
	require.NoError(t, err)
	width, height = decodedSize(t, r)
	assert.Equal(t, 25, width)
	assert.Equal(t, 50, height)
}

func TestOpenLeavesSmallImagesAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.jpg")
	writeJPEG(t, path, 40, 30)

	r, err := NewImageService(ImageServiceConfig{MaxEdge: 50}).Open(path)
	require.NoError(t, err)

	width, height := decodedSize(t, r)
	assert.Equal(t, 40, width)
	assert.Equal(t, 30, height)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := NewImageService(ImageServiceConfig{}).Open(filepath.Join(t.TempDir(), "none.jpg"))
	assert.True(t, models.IsKind(err, models.KindOperation))
	assert.Error(t, err)
}
