package normalize

import (
	"errors"
	"image"
	"testing"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawn(t *testing.T) *canvas.Canvas {
	t.Helper()
	c := canvas.New(280, 280)
	c.DrawSegment(geom.Point{X: 60, Y: 60}, geom.Point{X: 200, Y: 60})
	c.DrawSegment(geom.Point{X: 200, Y: 60}, geom.Point{X: 130, Y: 220})
	c.DrawSegment(geom.Point{X: 130, Y: 220}, geom.Point{X: 60, Y: 60})
	return c
}

func TestRegionShapeAndRange(t *testing.T) {
	c := drawn(t)
	boxes := []geom.Box{
		{MinX: 40, MinY: 40, MaxX: 220, MaxY: 240},
		{MinX: 0, MinY: 0, MaxX: 280, MaxY: 280},
		{MinX: 100, MinY: 50, MaxX: 103, MaxY: 250},
		{MinX: 10.5, MinY: 10.5, MaxX: 11.5, MaxY: 11.5},
	}

	for _, box := range boxes {
		out, err := Region(c.Image(), box)
		require.NoError(t, err, box.String())
		assert.Equal(t, []int{1, Size, Size, 1}, out.Shape)
		require.Len(t, out.Data, Size*Size)
		for _, v := range out.Data {
			assert.True(t, v >= 0 && v <= 1, "value %v out of range", v)
		}
	}
}

func TestRegionInvertsInk(t *testing.T) {
	c := drawn(t)
	out, err := Region(c.Image(), geom.Box{MinX: 40, MinY: 40, MaxX: 220, MaxY: 240})
	require.NoError(t, err)

	var max float32
	for _, v := range out.Data {
		if v > max {
			max = v
		}
	}
	assert.Greater(t, max, float32(0.5), "ink must become high intensity")
	// top left corner is background
	assert.Equal(t, float32(0), out.Data[0])
}

func TestRegionBlankIsZero(t *testing.T) {
	c := canvas.New(100, 100)
	out, err := Region(c.Image(), geom.Box{MinX: 10, MinY: 10, MaxX: 60, MaxY: 30})
	require.NoError(t, err)
	for _, v := range out.Data {
		assert.Equal(t, float32(0), v)
	}
}

func TestInvalidRegion(t *testing.T) {
	c := canvas.New(100, 100)
	for _, box := range []geom.Box{
		{MinX: 10, MinY: 10, MaxX: 10, MaxY: 50},
		{MinX: 10, MinY: 50, MaxX: 40, MaxY: 50},
		{MinX: 40, MinY: 10, MaxX: 10, MaxY: 50},
	} {
		_, err := Region(c.Image(), box)
		assert.True(t, errors.Is(err, ErrInvalidRegion), "box %v: %v", box, err)
	}
}

func TestCropOutsideSourceKeepsBackground(t *testing.T) {
	src := canvas.New(20, 20)
	src.DrawSegment(geom.Point{X: 0, Y: 10}, geom.Point{X: 20, Y: 10})

	gray, err := Crop(src.Image(), geom.Box{MinX: 10, MinY: 0, MaxX: 40, MaxY: 20})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), gray.Bounds())
	assert.Equal(t, uint8(255), gray.GrayAt(25, 10).Y)
	assert.Less(t, gray.GrayAt(5, 10).Y, uint8(64))
}

func TestInkBox(t *testing.T) {
	_, ok := InkBox(canvas.New(50, 50).Image(), geom.DefaultMargin)
	assert.False(t, ok)

	c := canvas.New(200, 200, canvas.WithLineWidth(1))
	c.DrawSegment(geom.Point{X: 100.5, Y: 60.5}, geom.Point{X: 100.5, Y: 120.5})
	box, ok := InkBox(c.Image(), geom.DefaultMargin)
	require.True(t, ok)
	assert.InDelta(t, 80, box.MinX, 2)
	assert.InDelta(t, 40, box.MinY, 2)
	assert.InDelta(t, 120, box.MaxX, 2)
	assert.InDelta(t, 140, box.MaxY, 2)
}
