package chart

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	// PieSize is the side of the default pie image.
	PieSize   = 220
	pieRadius = 100
)

// Image renders the pie on a transparent PieSize x PieSize image. A hidden
// chart yields a fully transparent image.
func Image(c Chart) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PieSize, PieSize))
	Draw(img, c, image.Pt(PieSize/2, PieSize/2), pieRadius)
	return img
}

// Draw fills the slices of c onto dst around center.
func Draw(dst draw.Image, c Chart, center image.Point, radius float64) {
	if !c.Visible {
		return
	}
	b := dst.Bounds()
	for _, s := range c.Slices {
		if s.End <= s.Start {
			continue
		}
		col, err := ParseHex(s.Color)
		if err != nil {
			col = color.RGBA{A: 255}
		}

		z := vector.NewRasterizer(b.Dx(), b.Dy())
		z.DrawOp = draw.Over
		cx := float32(center.X - b.Min.X)
		cy := float32(center.Y - b.Min.Y)
		z.MoveTo(cx, cy)

		steps := int(math.Ceil((s.End-s.Start)/(2*math.Pi)*96)) + 1
		for i := 0; i <= steps; i++ {
			a := s.Start + (s.End-s.Start)*float64(i)/float64(steps)
			z.LineTo(cx+float32(radius*math.Cos(a)), cy+float32(radius*math.Sin(a)))
		}
		z.ClosePath()
		z.Draw(dst, b, image.NewUniform(col), image.Point{})
	}
}
