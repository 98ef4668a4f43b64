package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophbank/internal/cli"
	"github.com/dmitrijs2005/gophbank/internal/config"
	"github.com/dmitrijs2005/gophbank/internal/store"
	"github.com/google/subcommands"
)

type shellCmd struct {
	cfg *config.Config
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "run the interactive account menu (default)" }
func (*shellCmd) Usage() string {
	return `bank [global flags] shell

  Opens the account store and starts the interactive menu. Stdin must be a
  terminal so that passwords are not echoed.
`
}
func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (c *shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cli.RequireTerminal(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	app, err := cli.NewApp(ctx, c.cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type accountsCmd struct {
	cfg *config.Config
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list user names in the account store" }
func (*accountsCmd) Usage() string {
	return "bank [global flags] accounts\n"
}
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := cli.NewApp(ctx, c.cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := app.ListAccounts(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type convertCmd struct {
	cfg     *config.Config
	backend string
	path    string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "copy all accounts into another store" }
func (*convertCmd) Usage() string {
	return `bank [global flags] convert -to-backend <file|sqlite> -to-path <path>

  Loads every account from the configured store and writes them to the
  target store, replacing its contents.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.backend, "to-backend", store.BackendSQLite, "Target store backend (file, sqlite).")
	f.StringVar(&c.path, "to-path", "", "Target store path.")
}

func (c *convertCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.path == "" {
		fmt.Fprintln(os.Stderr, "convert: -to-path is required")
		return subcommands.ExitUsageError
	}

	app, err := cli.NewApp(ctx, c.cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := app.Convert(ctx, c.backend, c.path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
