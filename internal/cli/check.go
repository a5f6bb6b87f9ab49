// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/contentstore"
	"inkwell/internal/credentials"
)

type checkResult struct {
	contentstore.Diagnosis
	Backend     string             `json:"backend"`
	Credentials credentials.Masked `json:"credentials"`
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the content store connection",
		Long: `Run a live connectivity check against the configured content store and
show the masked credentials it used. Exits non-zero when the check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, c.runCheck)
		},
	}
}

func (c *cli) runCheck(ctx context.Context, a *app.App) error {
	res := checkResult{
		Diagnosis:   a.Store.CheckConnection(ctx),
		Backend:     a.Config.StoreBackend,
		Credentials: a.Credentials.Current().Masked(),
	}

	if c.jsonOut {
		if err := c.printer.JSON(res); err != nil {
			return err
		}
		if !res.Success {
			return errReported
		}
		return nil
	}

	c.printer.Header("Content store")
	c.printer.Field("Backend", 8, res.Backend)
	c.printer.Field("URL", 8, res.Credentials.URL)
	c.printer.Field("Key", 8, res.Credentials.Key)
	c.printer.Field("Status", 8, c.printer.Badge(res.Success)+" "+res.Message)

	if !res.Success {
		return c.fail("connection check failed")
	}
	c.printer.Success("content store reachable")
	return nil
}
