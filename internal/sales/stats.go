// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sales

import (
	"context"

	"inkwell/internal/models"
)

// RecentLimit is how many sales the dashboard shows.
const RecentLimit = 5

// Stats are the admin dashboard figures.
type Stats struct {
	Revenue       float64       `json:"revenue"`
	SalesCount    int           `json:"salesCount"`
	SoldItems     int           `json:"soldItems"`
	UnsoldItems   int           `json:"unsoldItems"`
	TotalArticles int           `json:"totalArticles"`
	Recent        []models.Sale `json:"recent"`
	Err           error         `json:"-"`
}

// Stats computes dashboard figures over every recorded sale and the current
// article listing. A store failure yields zero sales figures with Err set.
func (l *Ledger) Stats(ctx context.Context) Stats {
	articles := l.catalog.List(ctx).Articles

	sales, err := l.List(ctx)
	if err != nil {
		return Stats{TotalArticles: len(articles), UnsoldItems: len(articles), Recent: []models.Sale{}, Err: err}
	}
	return Summarize(sales, len(articles))
}

// Summarize computes stats from sales ordered newest first.
func Summarize(sales []models.Sale, totalArticles int) Stats {
	st := Stats{TotalArticles: totalArticles, SalesCount: len(sales)}

	sold := make(map[string]struct{})
	for _, s := range sales {
		st.Revenue += s.Price
		sold[s.ItemID] = struct{}{}
	}
	st.SoldItems = len(sold)
	st.UnsoldItems = max(totalArticles-st.SoldItems, 0)

	n := min(len(sales), RecentLimit)
	st.Recent = append([]models.Sale{}, sales[:n]...)
	return st
}
