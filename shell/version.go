package shell

import (
	"github.com/abiosoft/ishell"

	"github.com/inkrank/doodle/version"
)

func versionCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "version",
		Help: "show version",
		Func: func(c *ishell.Context) {
			c.Println(version.Version)
		},
	}
}
