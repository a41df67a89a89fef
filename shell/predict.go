package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func predictCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "predict",
		Help: "classify the sketch, usage: predict [--now]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("predict", flag.ContinueOnError)
			var now bool
			flagSet.BoolVar(&now, "now", false, "classify immediately and print the chart")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			if !now {
				ctx.Session.Predict()
				return
			}

			if !ctx.Model.Ready() {
				c.Err(errors.New("classifier is " + ctx.Model.State().String()))
				return
			}
			ctx.Session.Infer(context.Background())
			printChart(c, ctx)
		},
	}
}
