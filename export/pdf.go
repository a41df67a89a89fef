// Package export writes a sketch and its prediction chart to a PDF page.
package export

import (
	"fmt"
	"image"
	"math"

	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"

	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/geom"
	"github.com/inkrank/doodle/log"
)

const (
	margin      = 50.0
	sketchWidth = 240.0
	pieRadius   = 100.0
	pieSteps    = 96
	rowHeight   = 18.0
)

// Report is what ends up on the page.
type Report struct {
	Title  string
	Sketch image.Image
	Box    geom.Box
	HasBox bool
	Chart  chart.Chart
}

type PdfGenerator struct {
	outputFilePath string
	options        PdfGeneratorOptions
}

type PdfGeneratorOptions struct {
	DrawBoundingBox bool
	Footer          string
}

func CreatePdfGenerator(outputFilePath string, options PdfGeneratorOptions) *PdfGenerator {
	return &PdfGenerator{outputFilePath: outputFilePath, options: options}
}

// Generate lays the sketch out on the left, the pie on the right and the
// legend below it.
func (p *PdfGenerator) Generate(r Report) error {
	if r.Sketch == nil {
		return fmt.Errorf("no sketch to export")
	}

	c := creator.New()
	c.SetPageSize(creator.PageSizeA4)
	page := c.NewPage()

	if p.options.Footer != "" {
		c.DrawFooter(func(block *creator.Block, args creator.FooterFunctionArgs) {
			f := c.NewParagraph(p.options.Footer)
			f.SetFontSize(8)
			f.SetPos(margin, block.Height()-20)
			block.Draw(f)
		})
	}

	top := margin
	if r.Title != "" {
		title := c.NewParagraph(r.Title)
		title.SetFontSize(16)
		title.SetPos(margin, top)
		if err := c.Draw(title); err != nil {
			return err
		}
		top += 40
	}

	img, err := c.NewImageFromGoImage(r.Sketch)
	if err != nil {
		return err
	}
	ratio := sketchWidth / float64(r.Sketch.Bounds().Dx())
	img.ScaleToWidth(sketchWidth)
	img.SetPos(margin, top)
	if err := c.Draw(img); err != nil {
		return err
	}

	if p.options.DrawBoundingBox && r.HasBox {
		if err := drawBox(c, r.Box, margin, top, ratio); err != nil {
			return err
		}
	}

	contentCreator := contentstream.NewContentCreator()

	pieX := margin + sketchWidth + 40 + pieRadius
	pieY := top + pieRadius
	drawPie(contentCreator, r.Chart, pieX, c.Height()-pieY)

	if err := page.AppendContentStream(string(contentCreator.Operations().Bytes())); err != nil {
		return err
	}

	if err := p.drawLegend(c, r.Chart, pieX-pieRadius, top+2*pieRadius+20); err != nil {
		return err
	}

	log.Trace.Printf("export: writing %s", p.outputFilePath)
	return c.WriteToFile(p.outputFilePath)
}

// drawBox outlines the classified region over the sketch image placed at
// (left, top).
func drawBox(c *creator.Creator, b geom.Box, left, top, ratio float64) error {
	rect := c.NewRectangle(left+b.MinX*ratio, top+b.MinY*ratio, b.Width()*ratio, b.Height()*ratio)
	rect.SetBorderColor(creator.ColorRGBFromHex("#ff0000"))
	rect.SetBorderWidth(1)
	return c.Draw(rect)
}

// drawPie fills each slice around (cx, cy) in PDF space. Angles grow
// clockwise on the page like they do on the raster.
func drawPie(cc *contentstream.ContentCreator, ch chart.Chart, cx, cy float64) {
	if !ch.Visible {
		return
	}
	for _, s := range ch.Slices {
		if s.End <= s.Start {
			continue
		}
		col, err := chart.ParseHex(s.Color)
		if err != nil {
			continue
		}

		path := draw.NewPath()
		path = path.AppendPoint(draw.NewPoint(cx, cy))
		steps := int(math.Ceil((s.End-s.Start)/(2*math.Pi)*pieSteps)) + 1
		for i := 0; i <= steps; i++ {
			a := s.Start + (s.End-s.Start)*float64(i)/float64(steps)
			path = path.AppendPoint(draw.NewPoint(cx+pieRadius*math.Cos(a), cy-pieRadius*math.Sin(a)))
		}

		cc.Add_q()
		cc.Add_rg(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255)
		draw.DrawPathWithCreator(path, cc)
		cc.Add_h()
		cc.Add_f()
		cc.Add_Q()
	}
}

func (p *PdfGenerator) drawLegend(c *creator.Creator, ch chart.Chart, left, top float64) error {
	if !ch.Visible {
		para := c.NewParagraph("(no prediction)")
		para.SetPos(left, top)
		return c.Draw(para)
	}
	for i, row := range ch.Legend {
		y := top + float64(i)*rowHeight

		swatch := c.NewRectangle(left, y, 10, 10)
		swatch.SetFillColor(creator.ColorRGBFromHex(row.Color))
		swatch.SetBorderWidth(0)
		if err := c.Draw(swatch); err != nil {
			return err
		}

		para := c.NewParagraph(fmt.Sprintf("%s - %s", row.Label, row.Percent))
		para.SetFontSize(10)
		para.SetPos(left+16, y)
		if err := c.Draw(para); err != nil {
			return err
		}
	}
	return nil
}
