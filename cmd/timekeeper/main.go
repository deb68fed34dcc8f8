package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/timekeeper/internal/cli"
	"github.com/alexanderramin/timekeeper/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then ~/.timekeeper/config.yaml or $TIMEKEEPER_CONFIG, then env.
	// A --config flag reloads in the root command.
	cfg, err := config.LoadConfig("")
	if err != nil {
		return err
	}

	app := &cli.App{
		Config: cfg,
		In:     os.Stdin,
	}

	// The menu uses huh forms only on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
