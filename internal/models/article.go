// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records exchanged between the storefront,
// the admin panel and the content store: articles, services, sales and
// pending payments.
package models

// Category groups articles on the blog. The values are stored verbatim in
// the remote table, so they must not change.
type Category string

const (
	CategoryServerless Category = "Serverless"
	CategoryCloud      Category = "Cloud Computing"
	CategorySaaS       Category = "SaaS"
	CategoryTechTips   Category = "Tech Tips"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryServerless, CategoryCloud, CategorySaaS, CategoryTechTips}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a publishable piece of writing. Bundled seed articles and
// articles stored remotely share this shape. A non-nil Price makes the
// article purchasable; IsPLR marks it as sold with resale rights.
type Article struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	IntroText string   `json:"introText,omitempty"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	Date      string   `json:"date"`
	ReadTime  string   `json:"readTime"`
	Image     string   `json:"image"`
	Price     *float64 `json:"price,omitempty"`
	IsPLR     *bool    `json:"isPLR,omitempty"`
}

// Purchasable returns true if the article carries a price.
func (a *Article) Purchasable() bool {
	return a.Price != nil
}

// PriceValue returns the article price, or 0 if it has none.
func (a *Article) PriceValue() float64 {
	if a.Price == nil {
		return 0
	}
	return *a.Price
}

// PLR returns true if the article is labelled with resale rights.
func (a *Article) PLR() bool {
	return a.IsPLR != nil && *a.IsPLR
}

// Service is a fixed-price writing service offered on the storefront.
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Features     []string `json:"features"`
	DeliveryTime string   `json:"deliveryTime"`
}

// Item is anything that can go through checkout.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Float returns a pointer to v. Used for optional article prices.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v. Used for the optional PLR flag.
func Bool(v bool) *bool { return &v }
