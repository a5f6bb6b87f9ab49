// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog merges the bundled seed articles with the articles
// published to the content store, and owns the rules for publishing and
// pricing. Listing never fails: when the store is unconfigured or
// unreachable the seed articles are returned on their own together with an
// outcome telling the caller why.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/godruoyi/go-snowflake"

	"inkwell/internal/contentstore"
	"inkwell/internal/models"
)

// Publishing defaults for fields the admin leaves blank.
const (
	IDPrefix        = "art-"
	DateLayout      = "Jan 02, 2006"
	DefaultReadTime = "5 min"
	DefaultPrice    = 45.0
)

var (
	ErrStaticID       = errors.New("catalog: id belongs to a bundled article")
	ErrInvalidDraft   = errors.New("catalog: invalid article")
	ErrUnknownItem    = errors.New("catalog: unknown item")
	ErrNotPurchasable = errors.New("catalog: item is not for sale")
)

// Outcome says how a listing was produced.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeUnconfigured Outcome = "unconfigured"
	OutcomeFailed       Outcome = "failed"
)

// Listing is the result of List. Articles always holds at least the seed
// articles. Err is set when Outcome is OutcomeFailed.
type Listing struct {
	Articles []models.Article
	Outcome  Outcome
	Err      error
}

// Newest returns the articles most recent first. Seed articles come first
// in Articles and stored ones in insertion order, so this is a reversal.
func (l Listing) Newest() []models.Article {
	out := slices.Clone(l.Articles)
	slices.Reverse(out)
	return out
}

// Draft is the admin input for a new article.
type Draft struct {
	ID        string          `json:"id"`
	Title     string          `json:"title" validate:"required,max=200"`
	Excerpt   string          `json:"excerpt" validate:"required,max=500"`
	IntroText string          `json:"introText"`
	Content   string          `json:"content" validate:"required"`
	Category  models.Category `json:"category" validate:"required,category"`
	ReadTime  string          `json:"readTime" validate:"max=20"`
	Image     string          `json:"image" validate:"omitempty,url"`
	Price     *float64        `json:"price" validate:"omitempty,gte=0"`
	IsPLR     *bool           `json:"isPLR"`
}

// Catalog reads and writes articles through a content store backend.
type Catalog struct {
	store    contentstore.Backend
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// New creates a catalog over store.
func New(store contentstore.Backend) *Catalog {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	return &Catalog{
		store:    store,
		validate: v,
		now:      time.Now,
		newID: func() string {
			return IDPrefix + strconv.FormatUint(snowflake.ID(), 10)
		},
	}
}

// Static returns a copy of the seed articles.
func (c *Catalog) Static() []models.Article {
	out := make([]models.Article, len(seedArticles))
	for i, a := range seedArticles {
		out[i] = clone(a)
	}
	return out
}

// IsStatic returns true if id belongs to a seed article.
func IsStatic(id string) bool {
	return findSeed(id) != nil
}

// List returns the seed articles followed by the stored ones. An
// unconfigured store is not contacted.
func (c *Catalog) List(ctx context.Context) Listing {
	l := Listing{Articles: c.Static(), Outcome: OutcomeOK}

	if !c.store.Configured() {
		l.Outcome = OutcomeUnconfigured
		return l
	}

	stored, err := c.store.ListArticles(ctx)
	if err != nil {
		slog.Warn("listing stored articles failed, serving seed articles only",
			"kind", contentstore.KindOf(err), "error", err)
		l.Outcome, l.Err = OutcomeFailed, err
		return l
	}

	for _, a := range stored {
		if IsStatic(a.ID) {
			slog.Warn("stored article shadows a bundled article, skipping", "id", a.ID)
			continue
		}
		l.Articles = append(l.Articles, a)
	}
	return l
}

// Get returns the article with id, or nil, nil if it does not exist. An
// unconfigured store is treated as empty.
func (c *Catalog) Get(ctx context.Context, id string) (*models.Article, error) {
	if a := findSeed(id); a != nil {
		cp := clone(*a)
		return &cp, nil
	}
	if !c.store.Configured() {
		return nil, nil
	}
	a, err := c.store.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return a, nil
}

// Publish validates a draft, fills in defaults and stores it. On failure
// nothing is stored anywhere else.
func (c *Catalog) Publish(ctx context.Context, d Draft) (*models.Article, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Excerpt = strings.TrimSpace(d.Excerpt)
	d.ID = strings.TrimSpace(d.ID)

	if err := c.validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDraft, DescribeValidation(err))
	}
	if d.ID != "" && IsStatic(d.ID) {
		return nil, ErrStaticID
	}

	a := models.Article{
		ID:        d.ID,
		Title:     d.Title,
		Excerpt:   d.Excerpt,
		IntroText: strings.TrimSpace(d.IntroText),
		Content:   d.Content,
		Category:  d.Category,
		Date:      c.now().Format(DateLayout),
		ReadTime:  strings.TrimSpace(d.ReadTime),
		Image:     strings.TrimSpace(d.Image),
		Price:     d.Price,
		IsPLR:     d.IsPLR,
	}
	if a.ID == "" {
		a.ID = c.newID()
	}
	if a.ReadTime == "" {
		a.ReadTime = DefaultReadTime
	}
	if a.Image == "" {
		a.Image = "https://picsum.photos/seed/" + a.ID + "/800/600"
	}
	if a.Price == nil {
		a.Price = models.Float(DefaultPrice)
	}
	if a.IsPLR == nil {
		a.IsPLR = models.Bool(true)
	}

	if err := c.store.InsertArticle(ctx, a); err != nil {
		slog.Error("publishing article failed", "id", a.ID, "kind", contentstore.KindOf(err), "error", err)
		return nil, err
	}
	slog.Info("article published", "id", a.ID, "title", a.Title)
	return &a, nil
}

// Delete removes a stored article. Seed articles live in the binary and are
// unaffected whatever the store does with the id.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteArticle(ctx, id); err != nil {
		slog.Error("deleting article failed", "id", id, "kind", contentstore.KindOf(err), "error", err)
		return err
	}
	slog.Info("article deleted", "id", id)
	return nil
}

// Services returns a copy of the fixed-price services.
func (c *Catalog) Services() []models.Service {
	out := make([]models.Service, len(services))
	for i, s := range services {
		s.Features = slices.Clone(s.Features)
		out[i] = s
	}
	return out
}

// FindItem resolves a checkout item: a service or a priced article.
func (c *Catalog) FindItem(ctx context.Context, id string) (*models.Item, error) {
	for _, s := range services {
		if s.ID == id {
			return &models.Item{ID: s.ID, Name: s.Name, Price: s.Price}, nil
		}
	}

	a, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrUnknownItem
	}
	if !a.Purchasable() {
		return nil, ErrNotPurchasable
	}
	return &models.Item{ID: a.ID, Name: a.Title, Price: a.PriceValue()}, nil
}

func findSeed(id string) *models.Article {
	for i := range seedArticles {
		if seedArticles[i].ID == id {
			return &seedArticles[i]
		}
	}
	return nil
}

// clone copies the optional fields so callers cannot modify the seed list.
func clone(a models.Article) models.Article {
	if a.Price != nil {
		a.Price = models.Float(*a.Price)
	}
	if a.IsPLR != nil {
		a.IsPLR = models.Bool(*a.IsPLR)
	}
	return a
}

// DescribeValidation flattens validator failures into "field: rule" pairs.
// Any other error is returned as its message.
func DescribeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
