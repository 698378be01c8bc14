package utils

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/heic"
	_ "golang.org/x/image/bmp"
)

// ImageIOError represents errors that occur while loading or decoding images.
type ImageIOError struct {
	Operation string
	Err       error
}

func (e *ImageIOError) Error() string {
	return fmt.Sprintf("image io error in %s: %v", e.Operation, e.Err)
}

func (e *ImageIOError) Unwrap() error { return e.Err }

// SupportedImageExtensions lists supported file extensions for loading.
// HEIC is included because phone cameras commonly produce it.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".heic", ".heif"}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

func isHEIC(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".heic" || ext == ".heif"
}

// ImageMetadata captures lightweight file and pixel information. It is used
// for diagnostics only; pipeline decisions never depend on it.
type ImageMetadata struct {
	Path        string
	Format      string
	SizeBytes   int64
	Width       int
	Height      int
	AspectRatio float64
}

// LoadImage opens and decodes an image file, returning the image and metadata.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		err := &ImageIOError{Operation: "load", Err: errors.New("empty path")}
		return nil, ImageMetadata{}, err
	}
	if !IsSupportedImage(path) {
		err := &ImageIOError{Operation: "load", Err: fmt.Errorf("unsupported format: %s", filepath.Ext(path))}
		return nil, ImageMetadata{}, err
	}

	f, err := os.Open(path) //nolint:gosec // G304: Reading user-provided image file path is expected
	if err != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "load", Err: err}
	}
	defer func() { _ = f.Close() }()

	fi, statErr := f.Stat()
	if statErr != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "load", Err: statErr}
	}

	var (
		img    image.Image
		format string
		decErr error
	)
	if isHEIC(path) {
		img, decErr = heic.Decode(f)
		format = "heic"
	} else {
		img, format, decErr = image.Decode(f)
	}
	if decErr != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "decode", Err: decErr}
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	if b.Dy() > 0 {
		meta.AspectRatio = float64(b.Dx()) / float64(b.Dy())
	}

	return img, meta, nil
}
