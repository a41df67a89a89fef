package shell

import (
	"github.com/abiosoft/ishell"
)

func bboxCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "bbox",
		Help: "print the padded bounding box of the sketch",
		Func: func(c *ishell.Context) {
			box, ok := ctx.Session.BoundingBox()
			if ctx.JSONOutput {
				var v interface{}
				if ok {
					v = box
				}
				if err := printJSON(c, v); err != nil {
					c.Err(err)
				}
				return
			}
			if !ok {
				c.Println("(no points)")
				return
			}
			c.Println(box.String())
		},
	}
}

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "print session state",
		Func: func(c *ishell.Context) {
			st := ctx.Session.Status()
			if ctx.JSONOutput {
				if err := printJSON(c, st); err != nil {
					c.Err(err)
				}
				return
			}
			c.Printf("session:  %s\n", st.ID)
			c.Printf("stroke:   %s, %d points\n", st.Stroke, st.Points)
			c.Printf("history:  %d undo, %d redo\n", st.Undo, st.Redo)
			c.Printf("canvas:   blank=%t\n", st.Blank)
			c.Printf("model:    %s, pending=%t\n", st.Model, st.Pending)
		},
	}
}
