// Package testutil provides synthetic receipt images and fixtures for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSize represents common image dimensions.
type ImageSize struct {
	Width  int
	Height int
}

var (
	// ReceiptSize approximates a phone photo of a till receipt.
	ReceiptSize = ImageSize{Width: 480, Height: 800}
	// SmallSize is below typical crop thresholds.
	SmallSize = ImageSize{Width: 40, Height: 40}
)

// GenerateReceiptImage renders lines of text on a white background, roughly
// centered like a till receipt photographed against a darker table.
func GenerateReceiptImage(size ImageSize, lines []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))

	// Dark background with a lighter receipt area in the middle mimics a
	// photographed receipt and gives the content-region heuristic something
	// plausible to crop.
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 60, G: 55, B: 50, A: 255}}, image.Point{}, draw.Src)
	inset := image.Rect(size.Width/8, size.Height/10, size.Width*7/8, size.Height*9/10)
	draw.Draw(img, inset, &image.Uniform{color.White}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: basicfont.Face7x13,
	}
	y := inset.Min.Y + 20
	for _, line := range lines {
		drawer.Dot = fixed.P(inset.Min.X+10, y)
		drawer.DrawString(line)
		y += 16
		if y > inset.Max.Y-10 {
			break
		}
	}
	return img
}

// WriteReceiptImage renders and saves a synthetic receipt under dir,
// returning the file path.
func WriteReceiptImage(t *testing.T, dir, name string, size ImageSize, lines []string) string {
	t.Helper()
	img := GenerateReceiptImage(size, lines)
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

// SampleReceiptLines is a typical receipt body used across tests.
func SampleReceiptLines() []string {
	return []string{
		"RESTORAN MAKMUR",
		"12, Jalan Bukit Bintang",
		"Kuala Lumpur",
		"Tel: 03-21481234",
		"25 Dec 2024 12:45 PM",
		"Nasi Lemak 8.50",
		"Teh Tarik 2.50",
		"SUBTOTAL 11.00",
		"Total: RM 11.00",
	}
}

// TempDir returns a test-scoped directory, asserting it is usable.
func TempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	return dir
}
