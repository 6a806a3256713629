package authoring

import "github.com/ouppakdigital/quiz-service/internal/models"

// ZoneRect is a drop-zone rectangle or ellipse bounding box expressed as
// percentages of the background image's rendered box.
type ZoneRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ZoneFromDrag converts a pointer-drag gesture into a zone bounding box.
// Start and end are pixel coordinates relative to the image box of size
// boxWidth x boxHeight. The origin is the top-left corner of the dragged
// region; all values are converted to percentages, clamped to [0,100], and
// the extent is clamped so the zone never exceeds the image bounds from its
// origin.
func ZoneFromDrag(startX, startY, endX, endY, boxWidth, boxHeight float64) ZoneRect {
	if boxWidth <= 0 || boxHeight <= 0 {
		return ZoneRect{}
	}

	x := minFloat(startX, endX) / boxWidth * 100
	y := minFloat(startY, endY) / boxHeight * 100
	w := absFloat(endX-startX) / boxWidth * 100
	h := absFloat(endY-startY) / boxHeight * 100

	x = clampPercent(x)
	y = clampPercent(y)
	w = clampPercent(w)
	h = clampPercent(h)

	// The zone must stay inside the image from its origin.
	if x+w > 100 {
		w = 100 - x
	}
	if y+h > 100 {
		h = 100 - y
	}

	return ZoneRect{X: x, Y: y, Width: w, Height: h}
}

// Apply writes the rect onto a zone along with its shape.
func (r ZoneRect) Apply(zone *models.DropZone, shape models.ZoneShape) {
	zone.X = r.X
	zone.Y = r.Y
	zone.Width = r.Width
	zone.Height = r.Height
	zone.Shape = shape
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
