package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultPalette is the slice color order, one per rank.
var DefaultPalette = []string{"#ff5959", "#ffad33", "#33cc33", "#3399ff", "#cc33ff"}

// Slice is one arc of the pie, angles in radians starting at 0.
type Slice struct {
	Index int     `json:"index"`
	Color string  `json:"color"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Row is one legend line.
type Row struct {
	Color   string `json:"color"`
	Label   string `json:"label"`
	Percent string `json:"percent"`
}

// Chart is everything a host needs to render the prediction. Slices are
// proportional among the shown entries while legend percentages are the
// absolute probabilities.
type Chart struct {
	Visible bool    `json:"visible"`
	Slices  []Slice `json:"slices,omitempty"`
	Legend  []Row   `json:"legend,omitempty"`
}

// Hidden is the chart state when there is nothing to show.
var Hidden = Chart{}

// Build lays out ranked entries. labels is indexed by Entry.Index; palette is
// cycled when there are more entries than colors.
func Build(ranked []Entry, labels []string, palette []string) Chart {
	if len(ranked) == 0 {
		return Hidden
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	weights := make([]float64, len(ranked))
	for i, e := range ranked {
		weights[i] = e.Probability
	}
	total := floats.Sum(weights)

	c := Chart{Visible: true}
	start := 0.0
	for i, e := range ranked {
		col := palette[i%len(palette)]

		slice := 0.0
		if total > 0 {
			slice = e.Probability / total * 2 * math.Pi
		}
		c.Slices = append(c.Slices, Slice{Index: e.Index, Color: col, Start: start, End: start + slice})
		start += slice

		c.Legend = append(c.Legend, Row{
			Color:   col,
			Label:   label(labels, e.Index),
			Percent: fmt.Sprintf("%.1f%%", e.Probability*100),
		})
	}
	return c
}

func label(labels []string, i int) string {
	if i >= 0 && i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i)
}

// String renders the legend as text, one row per line.
func (c Chart) String() string {
	if !c.Visible {
		return "(no prediction)"
	}
	var b strings.Builder
	for _, r := range c.Legend {
		fmt.Fprintf(&b, "%s  %s - %s\n", r.Color, r.Label, r.Percent)
	}
	return b.String()
}

// ParseHex converts "#rrggbb" to an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 255
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
