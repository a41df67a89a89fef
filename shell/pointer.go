package shell

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/inkrank/doodle/geom"
)

func parsePoint(args []string) (geom.Point, error) {
	if len(args) != 2 {
		return geom.Point{}, errors.New("expected x and y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid y: %w", err)
	}
	return geom.Point{X: x, Y: y}, nil
}

func downCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "down",
		Help: "press the pointer, usage: down <x> <y>",
		Func: func(c *ishell.Context) {
			p, err := parsePoint(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ctx.Session.PointerDown(p); err != nil {
				c.Err(err)
			}
		},
	}
}

func moveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "move",
		Help: "move the pointer, usage: move <x> <y> [<x> <y>...]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 || len(c.Args)%2 != 0 {
				c.Err(errors.New("expected pairs of x and y"))
				return
			}
			for i := 0; i < len(c.Args); i += 2 {
				p, err := parsePoint(c.Args[i : i+2])
				if err != nil {
					c.Err(err)
					return
				}
				ctx.Session.PointerMove(p)
			}
		},
	}
}

func upCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "up",
		Help: "release the pointer",
		Func: func(c *ishell.Context) {
			ctx.Session.PointerUp()
		},
	}
}

func leaveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "leave",
		Help: "pointer leaves the canvas",
		Func: func(c *ishell.Context) {
			ctx.Session.PointerLeave()
		},
	}
}
