// Package geom holds canvas-space points and the padded bounding box of a sketch.
package geom

import (
	"fmt"
	"image"
	"math"
)

// DefaultMargin pads the box so ink at the outermost coordinates keeps its stroke width.
const DefaultMargin = 20

// Point is a coordinate in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Clamp returns p limited to [0,w]x[0,h].
func (p Point) Clamp(w, h int) Point {
	return Point{
		X: math.Min(math.Max(p.X, 0), float64(w)),
		Y: math.Min(math.Max(p.Y, 0), float64(h)),
	}
}

// Box is an axis aligned region of the canvas.
type Box struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Rect converts the box to whole pixels, growing it outward.
func (b Box) Rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(b.MinX)),
		int(math.Floor(b.MinY)),
		int(math.Ceil(b.MaxX)),
		int(math.Ceil(b.MaxY)),
	)
}

func (b Box) String() string {
	return fmt.Sprintf("[%g,%g - %g,%g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// BoundingBox returns the min/max over points expanded by margin on every
// side and clamped to a w x h canvas. ok is false when points is empty.
// The result only depends on the set of points, never on their order.
func BoundingBox(points []Point, margin float64, w, h int) (box Box, ok bool) {
	if len(points) == 0 {
		return Box{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	return Box{
		MinX: math.Max(minX-margin, 0),
		MinY: math.Max(minY-margin, 0),
		MaxX: math.Min(maxX+margin, float64(w)),
		MaxY: math.Min(maxY+margin, float64(h)),
	}, true
}
