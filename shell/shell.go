// Package shell is the interactive front end of a drawing session.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/session"
	"github.com/inkrank/doodle/version"
)

type ShellCtxt struct {
	Session    *session.Session
	Model      *classifier.Model
	Config     config.Config
	JSONOutput bool
}

func (ctx *ShellCtxt) prompt() string {
	return fmt.Sprintf("[doodle %s]>", ctx.Model.State())
}

// RunShell executes args as one command when given, otherwise starts the
// interactive loop.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()
	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(downCmd(ctx))
	shell.AddCmd(moveCmd(ctx))
	shell.AddCmd(upCmd(ctx))
	shell.AddCmd(leaveCmd(ctx))
	shell.AddCmd(undoCmd(ctx))
	shell.AddCmd(redoCmd(ctx))
	shell.AddCmd(clearCmd(ctx))
	shell.AddCmd(predictCmd(ctx))
	shell.AddCmd(bboxCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(chartCmd(ctx))
	shell.AddCmd(saveCmd(ctx))
	shell.AddCmd(exportCmd(ctx))
	shell.AddCmd(labelsCmd(ctx))
	shell.AddCmd(classifyCmd(ctx))
	shell.AddCmd(versionCmd(ctx))

	if len(args) > 0 {
		return shell.Process(args...)
	}

	shell.Printf("doodle shell %s, session %s\n", version.Version, ctx.Session.ID)
	shell.Run()
	return nil
}

// createFsEntryCompleter completes local file names.
func createFsEntryCompleter() func([]string) []string {
	return func(args []string) []string {
		dir := "."
		prefix := ""
		if len(args) > 0 {
			last := args[len(args)-1]
			if strings.HasSuffix(last, "/") {
				dir = last
			} else if d := filepath.Dir(last); d != "." {
				dir = d
				prefix = d + "/"
			}
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		var names []string
		for _, e := range entries {
			name := prefix + e.Name()
			if dir != "." && prefix == "" {
				name = filepath.Join(dir, e.Name())
			}
			if e.IsDir() {
				name += "/"
			}
			names = append(names, name)
		}
		return names
	}
}
