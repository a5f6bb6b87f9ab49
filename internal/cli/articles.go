// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/catalog"
	"inkwell/internal/contentstore"
	"inkwell/internal/models"
	"inkwell/internal/output"
)

func (c *cli) articlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "List, publish and delete articles",
	}
	cmd.AddCommand(c.articlesListCmd(), c.articlesPublishCmd(), c.articlesDeleteCmd())
	return cmd
}

type articleListing struct {
	Articles []models.Article `json:"articles"`
	Outcome  catalog.Outcome  `json:"outcome"`
	Error    string           `json:"error,omitempty"`
}

func (c *cli) articlesListCmd() *cobra.Command {
	var newest bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bundled and stored articles",
		Long: `List the bundled articles followed by those in the content store.
When the store cannot be read the bundled articles are still listed and a
warning explains why.

Examples:
  inkctl articles list            # Bundled first, then stored
  inkctl articles list --newest   # Most recent first
  inkctl articles list --json     # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return c.runArticlesList(ctx, a, newest)
			})
		},
	}
	cmd.Flags().BoolVar(&newest, "newest", false, "most recent first")
	return cmd
}

func (c *cli) runArticlesList(ctx context.Context, a *app.App, newest bool) error {
	l := a.Catalog.List(ctx)
	articles := l.Articles
	if newest {
		articles = l.Newest()
	}

	if c.jsonOut {
		res := articleListing{Articles: articles, Outcome: l.Outcome}
		if l.Err != nil {
			res.Error = contentstore.MessageOf(l.Err)
		}
		return c.printer.JSON(res)
	}

	switch l.Outcome {
	case catalog.OutcomeUnconfigured:
		c.printer.Warning("content store not configured, showing bundled articles only")
	case catalog.OutcomeFailed:
		c.printer.Warning("content store unavailable (%s), showing bundled articles only", contentstore.MessageOf(l.Err))
	}

	t := output.NewTable(c.printer.Out(), "ID", "TITLE", "CATEGORY", "PRICE", "PLR", "SOURCE")
	for _, art := range articles {
		source := "stored"
		if catalog.IsStatic(art.ID) {
			source = "bundled"
		}
		t.AddRow(art.ID, art.Title, string(art.Category), formatPrice(art.Price), yesNo(art.PLR()), source)
	}
	return t.Render()
}

type publishFlags struct {
	draft       catalog.Draft
	contentFile string
	price       float64
	plr         bool
}

func (c *cli) articlesPublishCmd() *cobra.Command {
	var f publishFlags
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a new article to the content store",
		Long: `Publish a new article. The body is HTML, given inline with --content or
read from a file with --content-file ("-" reads standard input).

Examples:
  inkctl articles publish --title "Cold Starts" --excerpt "Why they happen" \
    --category "Serverless" --content-file cold-starts.html
  inkctl articles publish --title "Free Guide" --excerpt "..." \
    --category "Tech Tips" --content "<p>Hi</p>" --plr=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.complete(cmd); err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return c.runPublish(ctx, a, f.draft)
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.draft.ID, "id", "", "article id (generated when empty)")
	fl.StringVar(&f.draft.Title, "title", "", "article title")
	fl.StringVar(&f.draft.Excerpt, "excerpt", "", "short excerpt shown in listings")
	fl.StringVar(&f.draft.IntroText, "intro", "", "intro paragraph")
	fl.StringVar(&f.draft.Content, "content", "", "HTML body")
	fl.StringVar(&f.contentFile, "content-file", "", "read the HTML body from a file")
	fl.StringVar((*string)(&f.draft.Category), "category", "", "category, e.g. \"Serverless\"")
	fl.StringVar(&f.draft.ReadTime, "read-time", "", "read time, e.g. \"7 min\"")
	fl.StringVar(&f.draft.Image, "image", "", "cover image URL")
	fl.Float64Var(&f.price, "price", catalog.DefaultPrice, "price in dollars")
	fl.BoolVar(&f.plr, "plr", true, "sell with resale rights")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

// complete copies the flags that need presence checks into the draft.
func (f *publishFlags) complete(cmd *cobra.Command) error {
	if cmd.Flags().Changed("price") {
		f.draft.Price = models.Float(f.price)
	}
	if cmd.Flags().Changed("plr") {
		f.draft.IsPLR = models.Bool(f.plr)
	}
	if f.contentFile == "" {
		return nil
	}

	var (
		body []byte
		err  error
	)
	if f.contentFile == "-" {
		body, err = io.ReadAll(cmd.InOrStdin())
	} else {
		body, err = os.ReadFile(f.contentFile)
	}
	if err != nil {
		return err
	}
	f.draft.Content = string(body)
	return nil
}

func (c *cli) runPublish(ctx context.Context, a *app.App, d catalog.Draft) error {
	art, err := a.Catalog.Publish(ctx, d)
	switch {
	case errors.Is(err, catalog.ErrInvalidDraft), errors.Is(err, catalog.ErrStaticID):
		return c.fail("%v", err)
	case err != nil:
		return c.fail("publishing failed: %s", contentstore.MessageOf(err))
	}

	if c.jsonOut {
		return c.printer.JSON(art)
	}
	c.printer.Success("published %s (%s, %s)", art.ID, art.Title, formatPrice(art.Price))
	return nil
}

func (c *cli) articlesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored article",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if catalog.IsStatic(id) {
				return c.fail("article %s is bundled and cannot be deleted", id)
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Catalog.Delete(ctx, id); err != nil {
					return c.fail("deleting %s failed: %s", id, contentstore.MessageOf(err))
				}
				a.Summaries.Forget(id)
				if c.jsonOut {
					return c.printer.JSON(map[string]any{"success": true, "id": id})
				}
				c.printer.Success("deleted %s", id)
				return nil
			})
		},
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*p, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
