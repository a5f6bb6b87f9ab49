// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "inkwell/internal/models"

// seedArticles ship with the binary and are always listed first. They are
// never written to or deleted from the content store.
var seedArticles = []models.Article{
	{
		ID:       "1",
		Title:    "Mastering AWS Lambda: A Beginner's Guide to Serverless",
		Excerpt:  "Explore how to build scalable applications without managing servers using AWS Lambda and the Serverless Framework.",
		Content:  "Full article content about AWS Lambda...",
		Category: models.CategoryServerless,
		Date:     "Oct 12, 2023",
		ReadTime: "8 min",
		Image:    "https://picsum.photos/seed/lambda/800/600",
		Price:    models.Float(45),
		IsPLR:    models.Bool(true),
	},
	{
		ID:       "2",
		Title:    "Why SaaS is the Future of Enterprise Software",
		Excerpt:  "Analyzing the shift from on-premise solutions to Software as a Service and what it means for modern businesses.",
		Content:  "Full article content about SaaS...",
		Category: models.CategorySaaS,
		Date:     "Nov 05, 2023",
		ReadTime: "6 min",
		Image:    "https://picsum.photos/seed/saas/800/600",
		Price:    models.Float(35),
	},
	{
		ID:       "3",
		Title:    "Multi-Cloud vs Hybrid Cloud: Which One to Choose?",
		Excerpt:  "Deciding on a cloud strategy can be daunting. We break down the differences between multi-cloud and hybrid environments.",
		Content:  "Full article content about Cloud strategies...",
		Category: models.CategoryCloud,
		Date:     "Dec 01, 2023",
		ReadTime: "10 min",
		Image:    "https://picsum.photos/seed/cloud/800/600",
		Price:    models.Float(50),
		IsPLR:    models.Bool(true),
	},
	{
		ID:       "4",
		Title:    "Top 10 Productivity Tips for Remote Tech Teams",
		Excerpt:  "How to keep your development team synchronized and productive across different time zones.",
		Content:  "Full article content about remote work...",
		Category: models.CategoryTechTips,
		Date:     "Jan 15, 2024",
		ReadTime: "5 min",
		Image:    "https://picsum.photos/seed/tips/800/600",
	},
	{
		ID:       "5",
		Title:    "Edge Computing: Bringing Logic Closer to the User",
		Excerpt:  "Understand why edge computing is essential for latency-sensitive applications in 2024.",
		Content:  "Full article content about Edge computing...",
		Category: models.CategoryCloud,
		Date:     "Feb 10, 2024",
		ReadTime: "7 min",
		Image:    "https://picsum.photos/seed/edge/800/600",
		Price:    models.Float(40),
	},
}

var services = []models.Service{
	{
		ID:           "custom-article",
		Name:         "Custom Tech Article",
		Description:  "Deep-dive technical content tailored to your specific audience and keywords.",
		Price:        120,
		Features:     []string{"1000+ Words", "SEO Optimization", "2 Rounds of Edits", "Custom Research"},
		DeliveryTime: "3 Days",
	},
	{
		ID:           "plr-package",
		Name:         "PLR / Full Rights Bundle",
		Description:  "Get exclusive ownership of high-quality tech articles ready for your blog.",
		Price:        250,
		Features:     []string{"5 Pre-written Articles", "Full Ownership Rights", "Ready to Publish", "Metadata Included"},
		DeliveryTime: "Instant",
	},
	{
		ID:           "seo-audit",
		Name:         "Keyword Research & Strategy",
		Description:  "Don't just write, rank. I find the best topics for your niche.",
		Price:        80,
		Features:     []string{"Target Keywords", "Competitor Analysis", "Content Roadmap", "Meta Descriptions"},
		DeliveryTime: "2 Days",
	},
}
