package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/inkrank/doodle/export"
	"github.com/inkrank/doodle/version"
)

func saveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "save",
		Help:      "write the canvas as png, usage: save <file.png>",
		Completer: createFsEntryCompleter(),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing destination file"))
				return
			}
			f, err := os.Create(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()

			if err := ctx.Session.WritePNG(f); err != nil {
				c.Err(fmt.Errorf("failed to save canvas: %w", err))
				return
			}
			c.Println("OK")
		},
	}
}

func exportCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "export",
		Help:      "write sketch and chart to a pdf, usage: export <file.pdf>",
		Completer: createFsEntryCompleter(),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing destination file"))
				return
			}

			report := export.Report{
				Title:  "doodle",
				Sketch: ctx.Session.Image(),
				Chart:  ctx.Session.Chart(),
			}
			report.Box, report.HasBox = ctx.Session.BoundingBox()
			if len(report.Chart.Legend) > 0 {
				report.Title = report.Chart.Legend[0].Label
			}

			gen := export.CreatePdfGenerator(c.Args[0], export.PdfGeneratorOptions{
				DrawBoundingBox: true,
				Footer:          fmt.Sprintf("doodle %s, session %s", version.Version, ctx.Session.ID),
			})
			if err := gen.Generate(report); err != nil {
				c.Err(fmt.Errorf("export failed: %w", err))
				return
			}
			c.Println("OK")
		},
	}
}
