package shell

import (
	"github.com/abiosoft/ishell"
)

func labelsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "labels",
		Help: "list the vocabulary",
		Func: func(c *ishell.Context) {
			names := ctx.Session.Labels()
			if ctx.JSONOutput {
				if err := printJSON(c, names); err != nil {
					c.Err(err)
				}
				return
			}
			for i, n := range names {
				c.Printf("%3d  %s\n", i, n)
			}
		},
	}
}
