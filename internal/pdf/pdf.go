// Package pdf extracts receipt images from PDF documents. Email receipts
// commonly arrive as single-page PDFs wrapping a scanned image; the scan
// pipeline itself only consumes raster images.
package pdf

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// IsPDF reports whether the path looks like a PDF document.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// FirstImage extracts the first embedded image of the first page that
// carries one.
func FirstImage(filename string) (image.Image, error) {
	tempDir, err := os.MkdirTemp("", "receipt-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	if err := api.ExtractImagesFile(filename, tempDir, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	names, err := collectImageNames(tempDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("pdf contains no extractable images")
	}

	img, err := imaging.Open(filepath.Join(tempDir, names[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode extracted image: %w", err)
	}
	return img, nil
}

// FirstImagePath extracts the first embedded image and saves it as a PNG
// under destDir, returning the saved path. This bridges PDF input to the
// path-based scan pipeline.
func FirstImagePath(filename, destDir string) (string, error) {
	img, err := FirstImage(filename)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	dest := filepath.Join(destDir, base+".png")
	if err := imaging.Save(img, dest); err != nil {
		return "", fmt.Errorf("failed to save extracted image: %w", err)
	}
	return dest, nil
}

// collectImageNames lists extracted image files ordered by page number.
// pdfcpu names them like page_1_Im0.png.
func collectImageNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return pageOf(names[i]) < pageOf(names[j])
	})
	return names, nil
}

// pageOf parses the page number out of a pdfcpu extraction filename,
// returning a large sentinel when the name does not carry one.
func pageOf(name string) int {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "page" && i+1 < len(parts) {
			if n, err := strconv.Atoi(parts[i+1]); err == nil {
				return n
			}
		}
	}
	return 1 << 30
}
