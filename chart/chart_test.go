package chart

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankUniqueMax(t *testing.T) {
	probs := []float32{0.01, 0.02, 0.9, 0.03, 0.04}
	ranked := Rank(probs, TopK)
	require.NotEmpty(t, ranked)
	assert.Equal(t, 2, ranked[0].Index)
}

func TestRankStableOnTies(t *testing.T) {
	probs := make([]float32, 12)
	for i := range probs {
		probs[i] = 1.0 / 12
	}
	ranked := Rank(probs, TopK)
	require.Len(t, ranked, TopK)
	for i, e := range ranked {
		assert.Equal(t, i, e.Index)
	}
}

func TestRankScenario(t *testing.T) {
	probs := []float32{0.7, 0.1, 0.1, 0.05, 0.03, 0.02, 0, 0}
	ranked := Rank(probs, TopK)
	require.Len(t, ranked, 5)

	want := []float32{0.7, 0.1, 0.1, 0.05, 0.03}
	for i, e := range ranked {
		assert.Equal(t, i, e.Index)
		assert.InDelta(t, want[i], e.Probability, 1e-6)
	}
}

func TestRankShortVector(t *testing.T) {
	assert.Len(t, Rank([]float32{0.4, 0.6}, TopK), 2)
	assert.Empty(t, Rank(nil, TopK))
}

func TestBuildHiddenWhenEmpty(t *testing.T) {
	c := Build(nil, nil, nil)
	assert.False(t, c.Visible)
	assert.Empty(t, c.Slices)
	assert.Empty(t, c.Legend)
	assert.Equal(t, "(no prediction)", c.String())
}

func TestBuildSlicesAndLegend(t *testing.T) {
	labels := []string{"airplane", "alarm clock", "angel", "ant", "anvil", "apple"}
	ranked := Rank([]float32{0.7, 0.1, 0.1, 0.05, 0.03, 0.02}, TopK)

	c := Build(ranked, labels, DefaultPalette)
	require.True(t, c.Visible)
	require.Len(t, c.Slices, 5)
	require.Len(t, c.Legend, 5)

	assert.Equal(t, 0.0, c.Slices[0].Start)
	for i := 1; i < len(c.Slices); i++ {
		assert.Equal(t, c.Slices[i-1].End, c.Slices[i].Start)
	}
	assert.InDelta(t, 2*math.Pi, c.Slices[4].End, 1e-9)

	// slices are relative to the top five (sum 0.98), legend is absolute
	assert.InDelta(t, 0.7/0.98*2*math.Pi, c.Slices[0].End, 1e-6)
	assert.Equal(t, Row{Color: "#ff5959", Label: "airplane", Percent: "70.0%"}, c.Legend[0])
	assert.Equal(t, "3.0%", c.Legend[4].Percent)
	assert.Equal(t, "anvil", c.Legend[4].Label)

	for i, s := range c.Slices {
		assert.Equal(t, DefaultPalette[i], s.Color)
	}
}

func TestBuildCyclesPalette(t *testing.T) {
	ranked := Rank([]float32{0.5, 0.3, 0.2}, 3)
	c := Build(ranked, nil, []string{"#000000", "#ffffff"})
	assert.Equal(t, "#000000", c.Slices[2].Color)
	assert.Equal(t, "#2", c.Legend[2].Label)
}

func TestLatestView(t *testing.T) {
	var v Latest
	c := Build(Rank([]float32{1}, TopK), []string{"cat"}, nil)

	Multi{&v}.Show(c)
	assert.Equal(t, c, v.Chart())
	Multi{&v}.Hide()
	assert.False(t, v.Chart().Visible)
	assert.Equal(t, 2, v.Updates())
}

func TestImage(t *testing.T) {
	hidden := Image(Hidden)
	assert.Equal(t, color.RGBA{}, hidden.RGBAAt(PieSize/2, PieSize/2))

	c := Build([]Entry{{Index: 0, Probability: 1}}, nil, DefaultPalette)
	img := Image(c)
	want, err := ParseHex(DefaultPalette[0])
	require.NoError(t, err)
	assert.Equal(t, want, img.RGBAAt(PieSize/2+50, PieSize/2+10))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2))
	assert.Equal(t, image.Rect(0, 0, PieSize, PieSize), img.Bounds())
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#3399ff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 255}, c)

	_, err = ParseHex("blue")
	assert.Error(t, err)
}
