package preprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentRegion(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		marginFrac float64
		want       image.Rectangle
	}{
		{name: "ten percent margin", w: 500, h: 800, marginFrac: 0.10, want: image.Rect(50, 80, 450, 720)},
		{name: "zero margin keeps full frame", w: 500, h: 800, marginFrac: 0, want: image.Rect(0, 0, 500, 800)},
		{name: "margin truncates toward zero", w: 33, h: 33, marginFrac: 0.10, want: image.Rect(3, 3, 30, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentRegion(tt.w, tt.h, tt.marginFrac))
		})
	}
}

func TestMapToOriginal_ScalesAndExpands(t *testing.T) {
	box := image.Rect(10, 10, 40, 40)
	got := MapToOriginal(box, 50, 50, 100, 100, 5)
	assert.Equal(t, image.Rect(15, 15, 85, 85), got)
}

func TestMapToOriginal_ClampsToBounds(t *testing.T) {
	box := image.Rect(0, 0, 50, 50)
	got := MapToOriginal(box, 50, 50, 100, 100, 10)
	assert.Equal(t, image.Rect(0, 0, 100, 100), got)
}

func TestMapToOriginal_DegenerateSmallDims(t *testing.T) {
	box := image.Rect(1, 1, 2, 2)
	assert.Equal(t, image.Rect(0, 0, 100, 80), MapToOriginal(box, 0, 0, 100, 80, 10))
}

func TestMapToOriginal_AlwaysWithinOriginal(t *testing.T) {
	orig := image.Rect(0, 0, 640, 480)
	boxes := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(490, 370, 500, 380),
		image.Rect(5, 5, 495, 375),
	}
	for _, b := range boxes {
		got := MapToOriginal(b, 500, 380, 640, 480, 25)
		assert.True(t, got.In(orig), "box %v mapped outside original bounds: %v", b, got)
	}
}
