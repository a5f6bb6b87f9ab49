// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/credentials"
)

type credentialsResult struct {
	Credentials credentials.Masked `json:"credentials"`
	Problem     string             `json:"problem,omitempty"`
}

func (c *cli) credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		Aliases: []string{"creds"},
		Short:   "Show or override the content store credentials",
		Long: `Credentials resolve from a saved override first, then the environment.
An override is kept in local state and shared with the API server.`,
	}
	cmd.AddCommand(c.credentialsShowCmd(), c.credentialsSetCmd(), c.credentialsClearCmd())
	return cmd
}

func (c *cli) credentialsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective credentials, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return c.printCredentials(a.Credentials.Current())
			})
		},
	}
}

func (c *cli) credentialsSetCmd() *cobra.Command {
	var url, key string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save a credentials override",
		Long: `Save a project URL, an anon key or both. A field left out keeps its
current resolved value.

Examples:
  inkctl credentials set --url https://abc.supabase.co
  inkctl credentials set --url https://abc.supabase.co --key eyJhbGci...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				creds, err := a.Credentials.Set(ctx, url, key)
				if errors.Is(err, credentials.ErrNothingToSave) {
					return c.fail("give --url, --key or both")
				}
				if err != nil {
					return c.fail("saving credentials failed: %v", err)
				}
				if !c.jsonOut {
					c.printer.Success("credentials saved")
				}
				return c.printCredentials(creds)
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "project URL")
	cmd.Flags().StringVar(&key, "key", "", "anon key")
	return cmd
}

func (c *cli) credentialsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the override and fall back to the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				creds, err := a.Credentials.Clear(ctx)
				if err != nil {
					return c.fail("clearing credentials failed: %v", err)
				}
				if !c.jsonOut {
					c.printer.Success("override cleared")
				}
				return c.printCredentials(creds)
			})
		},
	}
}

func (c *cli) printCredentials(creds credentials.Credentials) error {
	res := credentialsResult{Credentials: creds.Masked(), Problem: creds.Problem()}
	if c.jsonOut {
		return c.printer.JSON(res)
	}

	c.printer.Header("Credentials")
	c.printer.Field("URL", 3, res.Credentials.URL)
	c.printer.Field("Key", 3, res.Credentials.Key)
	if res.Problem != "" {
		c.printer.Warning("%s", res.Problem)
	}
	return nil
}
