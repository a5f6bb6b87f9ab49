// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/contentstore"
	"inkwell/internal/models"
	"inkwell/internal/output"
	"inkwell/internal/sales"
)

func (c *cli) salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Inspect recorded sales",
	}
	cmd.AddCommand(c.salesListCmd(), c.salesStatsCmd())
	return cmd
}

func (c *cli) salesListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded sales, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return c.runSalesList(ctx, a, limit)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n sales (0 for all)")
	return cmd
}

func (c *cli) runSalesList(ctx context.Context, a *app.App, limit int) error {
	list, err := a.Ledger.List(ctx)
	if err != nil {
		return c.fail("listing sales failed: %s", contentstore.MessageOf(err))
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	if list == nil {
		list = []models.Sale{}
	}

	if c.jsonOut {
		return c.printer.JSON(map[string]any{"sales": list})
	}
	if len(list) == 0 {
		c.printer.Info("no sales recorded yet")
		return nil
	}
	return c.salesTable(list)
}

func (c *cli) salesTable(list []models.Sale) error {
	t := output.NewTable(c.printer.Out(), "ORDER", "ITEM", "NAME", "PRICE", "TIME")
	for _, s := range list {
		t.AddRow(s.OrderID, s.ItemID, s.ItemName, formatPrice(&s.Price), s.CreatedAt.Local().Format(time.DateTime))
	}
	return t.Render()
}

type statsResult struct {
	sales.Stats
	Error string `json:"error,omitempty"`
}

func (c *cli) salesStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show revenue and sales figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, c.runSalesStats)
		},
	}
}

func (c *cli) runSalesStats(ctx context.Context, a *app.App) error {
	st := a.Ledger.Stats(ctx)

	if c.jsonOut {
		res := statsResult{Stats: st}
		if st.Err != nil {
			res.Error = contentstore.MessageOf(st.Err)
		}
		return c.printer.JSON(res)
	}

	if st.Err != nil {
		c.printer.Warning("sales unavailable (%s), figures are incomplete", contentstore.MessageOf(st.Err))
	}

	c.printer.Header("Sales")
	c.printer.Field("Revenue", 9, formatPrice(&st.Revenue))
	c.printer.Field("Sales", 9, strconv.Itoa(st.SalesCount))
	c.printer.Field("Sold", 9, strconv.Itoa(st.SoldItems))
	c.printer.Field("Unsold", 9, strconv.Itoa(st.UnsoldItems))
	c.printer.Field("Articles", 9, strconv.Itoa(st.TotalArticles))

	if len(st.Recent) == 0 {
		return nil
	}
	c.printer.Header("Recent")
	return c.salesTable(st.Recent)
}
