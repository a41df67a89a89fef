// Package normalize canonicalises the drawn region into the 28x28
// single-channel tensor the classifier was trained on.
package normalize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/encoding/tensor"
	"github.com/inkrank/doodle/geom"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/floats"
)

// Size is the side of the classifier input.
const Size = 28

// ErrInvalidRegion is returned for boxes without area.
var ErrInvalidRegion = errors.New("invalid region")

// Region crops box out of src and normalizes it.
func Region(src image.Image, box geom.Box) (*tensor.Tensor, error) {
	gray, err := Crop(src, box)
	if err != nil {
		return nil, err
	}
	return Normalize(gray), nil
}

// Crop copies the pixels inside box into a single-channel buffer of the
// box's size. Pixels outside src keep the ink-absent background.
func Crop(src image.Image, box geom.Box) (*image.Gray, error) {
	r := box.Rect()
	if box.Empty() || r.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegion, box)
	}

	buf := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(buf, buf.Bounds(), image.NewUniform(canvas.White), image.Point{}, draw.Src)
	draw.Draw(buf, buf.Bounds(), src, r.Min, draw.Over)

	gray := image.NewGray(buf.Bounds())
	draw.Draw(gray, gray.Bounds(), buf, image.Point{}, draw.Src)
	return gray, nil
}

// Normalize inverts, stretches to Size x Size with bilinear filtering, scales
// to [0,1] and packs the result as a [1,Size,Size,1] tensor.
func Normalize(gray *image.Gray) *tensor.Tensor {
	inverted := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		inverted.Pix[i] = 255 - v
	}

	resized := toGray(resize.Resize(Size, Size, inverted, resize.Bilinear))

	values := make([]float64, Size*Size)
	for y := 0; y < Size; y++ {
		row := resized.Pix[y*resized.Stride : y*resized.Stride+Size]
		for x, v := range row {
			values[y*Size+x] = float64(v)
		}
	}
	floats.Scale(1.0/255, values)

	t := tensor.New(1, Size, Size, 1)
	for i, v := range values {
		t.Data[i] = float32(clamp(v))
	}
	return t
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g.Set(x, y, color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return g
}

// InkBox finds the padded bounding box of every non-background pixel of img,
// the same box the recorder would produce for a sketch that left this ink.
func InkBox(img image.Image, margin float64) (geom.Box, bool) {
	b := img.Bounds()
	var points []geom.Point
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
				points = append(points, geom.Point{X: float64(x - b.Min.X), Y: float64(y - b.Min.Y)})
			}
		}
	}
	return geom.BoundingBox(points, margin, b.Dx(), b.Dy())
}
