package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/classifier"
)

type fileResultJSON struct {
	Path   string        `json:"path"`
	Ranked []chart.Entry `json:"ranked,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func classifyCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "classify",
		Help:      "classify image files, usage: classify [--top N] <png>...",
		Completer: createFsEntryCompleter(),
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("classify", flag.ContinueOnError)
			var top int
			flagSet.IntVar(&top, "top", ctx.Config.Chart.TopK, "number of classes to print")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			paths := flagSet.Args()
			if len(paths) == 0 {
				c.Err(errors.New("missing image files"))
				return
			}
			if !ctx.Model.Ready() {
				c.Err(errors.New("classifier is " + ctx.Model.State().String()))
				return
			}

			results := classifier.ClassifyFiles(context.Background(), ctx.Model, paths, classifier.BatchConfig{
				Margin:    ctx.Config.Canvas.Margin,
				TopK:      top,
				BatchSize: ctx.Config.Classifier.BatchSize,
			})

			if ctx.JSONOutput {
				out := make([]fileResultJSON, len(results))
				for i, r := range results {
					out[i] = fileResultJSON{Path: r.Path, Ranked: r.Ranked}
					if r.Err != nil {
						out[i].Error = r.Err.Error()
					}
				}
				if err := printJSON(c, out); err != nil {
					c.Err(err)
				}
				return
			}

			names := ctx.Model.Labels()
			for _, r := range results {
				if r.Err != nil {
					c.Printf("%s: %v\n", r.Path, r.Err)
					continue
				}
				c.Printf("%s:\n", r.Path)
				for _, e := range r.Ranked {
					name := "?"
					if e.Index < len(names) {
						name = names[e.Index]
					}
					c.Printf("  %-20s %5.1f%%\n", name, e.Probability*100)
				}
			}
		},
	}
}
