package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/nfnt/resize"
)

const DefaultJPEGQuality = 92

type ImageServicer interface {
	Open(path string) (io.ReadCloser, error)
}

type ImageServiceConfig struct {
	// MaxEdge downsizes JPEGs whose longest edge is larger. Zero uploads files untouched.
	MaxEdge uint
	Quality int
}

type ImageService struct {
	maxEdge uint
	quality int
}

func NewImageService(config ImageServiceConfig) ImageService {
	quality := config.Quality

	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	return ImageService{
		maxEdge: config.MaxEdge,
		quality: quality,
	}
}

// Open returns the bytes to upload for the image at path.
func (s ImageService) Open(path string) (io.ReadCloser, error) {
	var (
		err  error
		f    *os.File
		img  image.Image
		buf  bytes.Buffer
		data []byte
	)

	if f, err = os.Open(path); err != nil {
		return nil, models.NewServiceError(models.KindOperation, path, fmt.Errorf("error opening image: %w", err))
	}

	if s.maxEdge == 0 || !isJPEG(path) {
		return f, nil
	}

	defer f.Close()

	if data, err = io.ReadAll(f); err != nil {
		return nil, models.NewServiceError(models.KindOperation, path, fmt.Errorf("error reading image: %w", err))
	}

	if img, _, err = image.Decode(bytes.NewReader(data)); err != nil {
		return nil, models.NewServiceError(models.KindOperation, path, fmt.Errorf("error decoding image: %w", err))
	}

	bounds := img.Bounds()

	if uint(max(bounds.Dx(), bounds.Dy())) <= s.maxEdge {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	resized := s.resize(img)

	if err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, models.NewServiceError(models.KindOperation, path, fmt.Errorf("error encoding resized image: %w", err))
	}

	slog.Debug("downscaled image for upload", "path", path, "width", resized.Bounds().Dx(), "height", resized.Bounds().Dy())
	return io.NopCloser(&buf), nil
}

func (s ImageService) resize(img image.Image) image.Image {
	/*
	 * Scale along the longest edge and keep the aspect ratio
	 */
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	var newWidth, newHeight uint
	if width > height {
		newWidth = s.maxEdge
		newHeight = uint(float64(height) * (float64(s.maxEdge) / float64(width)))
	} else {
		newHeight = s.maxEdge
		newWidth = uint(float64(width) * (float64(s.maxEdge) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

func isJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}
