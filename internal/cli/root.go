// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements inkctl, the operator command line. It works on the
// same local state and content store as the API server, so credentials set
// here are picked up by the server and the other way round.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/config"
	"inkwell/internal/output"
)

// Opener builds the services a command works on.
type Opener func(ctx context.Context) (*app.App, error)

// OpenFromEnv loads configuration from the environment and wires the
// services.
func OpenFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return app.New(ctx, cfg)
}

// errReported marks a failure the command already printed.
var errReported = errors.New("command failed")

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

type cli struct {
	open      Opener
	version   string
	jsonOut   bool
	colorMode string
	verbose   bool
	printer   *output.Printer
}

// NewRootCmd builds the inkctl command tree around open.
func NewRootCmd(open Opener, version string) *cobra.Command {
	c := &cli{open: open, version: version}

	root := &cobra.Command{
		Use:   "inkctl",
		Short: "Operate an inkwell storefront",
		Long: `inkctl inspects and manages an inkwell storefront from the shell.

It reads the same environment as the API server and talks to the same
content store and local state.

Example usage:
  inkctl check                       # Test the content store connection
  inkctl articles list               # List bundled and stored articles
  inkctl sales stats                 # Show revenue and sales figures
  inkctl credentials set --url ...   # Override the store credentials`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}

	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&c.colorMode, "color", "auto", "color output: auto, always, or never")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "show service logs")

	root.AddCommand(
		c.checkCmd(),
		c.articlesCmd(),
		c.salesCmd(),
		c.credentialsCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	mode, err := output.ParseColorMode(c.colorMode)
	if err != nil {
		return err
	}
	c.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		output.ResolveColors(mode, !color.NoColor))

	// Service logs would interleave with command output.
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// withApp opens the services for the duration of fn.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// fail prints msg and returns an error that main does not print again.
func (c *cli) fail(format string, args ...any) error {
	c.printer.Error(format, args...)
	return errReported
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inkctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOut {
				return c.printer.JSON(map[string]string{"version": c.version})
			}
			c.printer.Print("inkctl %s", c.version)
			return nil
		},
	}
}
