package preprocess

import "image"

// ContentRegion estimates the receipt bounding box on an analysis-sized copy
// using a fixed-margin heuristic: a marginFrac share of each side is treated
// as background and the inner remainder as the likely receipt region. This is
// intentionally simple and not a true edge detector.
func ContentRegion(width, height int, marginFrac float64) image.Rectangle {
	mx := int(float64(width) * marginFrac)
	my := int(float64(height) * marginFrac)
	return image.Rect(mx, my, width-mx, height-my)
}

// MapToOriginal scales a box detected on the small analysis copy back into
// normalized-original coordinates, expands it by expandPx on every side, and
// clamps it to the original bounds. The returned box always satisfies
// 0 <= Min and Max <= (origW, origH).
func MapToOriginal(box image.Rectangle, smallW, smallH, origW, origH, expandPx int) image.Rectangle {
	if smallW <= 0 || smallH <= 0 {
		return image.Rect(0, 0, origW, origH)
	}
	scaleX := float64(origW) / float64(smallW)
	scaleY := float64(origH) / float64(smallH)

	mapped := image.Rect(
		int(float64(box.Min.X)*scaleX)-expandPx,
		int(float64(box.Min.Y)*scaleY)-expandPx,
		int(float64(box.Max.X)*scaleX)+expandPx,
		int(float64(box.Max.Y)*scaleY)+expandPx,
	)
	return mapped.Intersect(image.Rect(0, 0, origW, origH))
}
