package shell

import (
	"github.com/abiosoft/ishell"
)

func undoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "undo",
		Help: "undo the last stroke",
		Func: func(c *ishell.Context) {
			ok, err := ctx.Session.Undo()
			if err != nil {
				c.Err(err)
				return
			}
			if !ok {
				c.Println("nothing to undo")
				return
			}
			c.Println("OK")
		},
	}
}

func redoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "redo",
		Help: "redo the last undone stroke",
		Func: func(c *ishell.Context) {
			ok, err := ctx.Session.Redo()
			if err != nil {
				c.Err(err)
				return
			}
			if !ok {
				c.Println("nothing to redo")
				return
			}
			c.Println("OK")
		},
	}
}

func clearCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "clear",
		Help: "erase the canvas and the history",
		Func: func(c *ishell.Context) {
			ctx.Session.Clear()
			c.Println("OK")
		},
	}
}
