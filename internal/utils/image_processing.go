package utils

import (
	"image"

	"github.com/disintegration/imaging"
)

// LoadOriented opens an image with orientation metadata baked into the pixel
// data. JPEG EXIF rotation is applied during decode, so downstream geometry
// always operates on upright pixels. HEIC is decoded without an orientation
// pass because the decoder already yields display-oriented pixels.
func LoadOriented(path string) (image.Image, error) {
	if isHEIC(path) {
		img, _, err := LoadImage(path)
		return img, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageIOError{Operation: "open", Err: err}
	}
	return img, nil
}

// ClampRect restricts r to the bounds of a w×h image.
func ClampRect(r image.Rectangle, w, h int) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, w, h))
}
