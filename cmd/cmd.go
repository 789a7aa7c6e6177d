package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/urfave/cli/v2"
)

const (
	name        = "viberbot"
	description = "Viber REST bot API client\n\n	 Use `viberbot [command] --help` to see command specific help."
)

var DefaultCmd = &cli.App{
	Name:        name,
	Usage:       "Viber bot account tool",
	Description: description,
	Version:     Version(),
	Flags:       Flags,
	Before:      before,
	After:       after,
}

// Register CLI commands
func Register(cmds ...*cli.Command) {
	app := DefaultCmd
	app.Commands = append(app.Commands, cmds...)

	// sort the commands so they're listed in order on the cli
	sort.Slice(app.Commands, func(i, j int) bool {
		return app.Commands[i].Name < app.Commands[j].Name
	})
}

// Run the default command
func Run() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	if err := DefaultCmd.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err) // formatErr(err))
		stop()
		os.Exit(1)
	}
}
