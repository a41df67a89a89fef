// Package canvas implements the drawing surface shared by the recorder, the
// history and the normalizer. Nothing outside this package touches pixels of
// the live raster except through Raster.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/inkrank/doodle/geom"
	"golang.org/x/image/vector"
)

const (
	DefaultWidth     = 280
	DefaultHeight    = 280
	DefaultLineWidth = 4
)

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Snapshot is an encoded capture of the whole raster.
type Snapshot []byte

// Raster is the owned drawing surface.
type Raster interface {
	Bounds() image.Rectangle
	// Image exposes the live pixels for read-only copies.
	Image() image.Image
	Snapshot() (Snapshot, error)
	Restore(Snapshot) error
	DrawSegment(a, b geom.Point)
	Clear()
	IsBlank() bool
}

// Canvas is an in-memory RGBA raster with a white background and round
// capped black ink.
type Canvas struct {
	img        *image.RGBA
	background color.RGBA
	ink        color.RGBA
	lineWidth  float64
	capSteps   int
}

// Option customises a Canvas.
type Option func(*Canvas)

func WithLineWidth(w float64) Option {
	return func(c *Canvas) { c.lineWidth = w }
}

func WithInk(ink color.RGBA) Option {
	return func(c *Canvas) { c.ink = ink }
}

func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: White,
		ink:        Black,
		lineWidth:  DefaultLineWidth,
		capSteps:   16,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Clear()
	return c
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

func (c *Canvas) Image() image.Image {
	return c.img
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// IsBlank reports whether every pixel still has the background color.
func (c *Canvas) IsBlank() bool {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != c.background.R || pix[i+1] != c.background.G || pix[i+2] != c.background.B {
			return false
		}
	}
	return true
}

func (c *Canvas) Snapshot() (Snapshot, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Canvas) Restore(s Snapshot) error {
	img, err := png.Decode(bytes.NewReader(s))
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if img.Bounds().Size() != c.img.Bounds().Size() {
		return fmt.Errorf("snapshot size %v does not match canvas %v", img.Bounds().Size(), c.img.Bounds().Size())
	}
	draw.Draw(c.img, c.img.Bounds(), img, img.Bounds().Min, draw.Src)
	return nil
}

// DrawSegment strokes a to b with round caps. A zero length segment leaves a dot.
func (c *Canvas) DrawSegment(a, b geom.Point) {
	size := c.img.Bounds().Size()
	z := vector.NewRasterizer(size.X, size.Y)
	z.DrawOp = draw.Over

	r := c.lineWidth / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	theta := math.Atan2(dy, dx) + math.Pi/2
	if dx == 0 && dy == 0 {
		theta = math.Pi / 2
	}

	// half circle around b, then back along the other side and around a
	z.MoveTo(float32(a.X+r*math.Cos(theta)), float32(a.Y+r*math.Sin(theta)))
	c.arc(z, b, r, theta, theta-math.Pi)
	c.arc(z, a, r, theta-math.Pi, theta-2*math.Pi)
	z.ClosePath()

	z.Draw(c.img, c.img.Bounds(), image.NewUniform(c.ink), image.Point{})
}

func (c *Canvas) arc(z *vector.Rasterizer, center geom.Point, r, from, to float64) {
	for i := 0; i <= c.capSteps; i++ {
		t := from + (to-from)*float64(i)/float64(c.capSteps)
		z.LineTo(float32(center.X+r*math.Cos(t)), float32(center.Y+r*math.Sin(t)))
	}
}
