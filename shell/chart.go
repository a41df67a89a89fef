package shell

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/inkrank/doodle/chart"
)

func printChart(c *ishell.Context, ctx *ShellCtxt) {
	current := ctx.Session.Chart()
	if ctx.JSONOutput {
		if err := printJSON(c, current); err != nil {
			c.Err(err)
		}
		return
	}
	c.Print(current.String())
	if !current.Visible {
		c.Println()
	}
}

func chartCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "chart",
		Help:      "show the last prediction, usage: chart [<png>]",
		Completer: createFsEntryCompleter(),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				printChart(c, ctx)
				return
			}

			current := ctx.Session.Chart()
			if !current.Visible {
				c.Err(errors.New("no prediction to draw"))
				return
			}
			f, err := os.Create(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()
			if err := png.Encode(f, chart.Image(current)); err != nil {
				c.Err(fmt.Errorf("can't write chart: %w", err))
				return
			}
			c.Println("OK")
		},
	}
}
