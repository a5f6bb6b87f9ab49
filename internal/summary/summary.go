// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package summary produces short TL;DR summaries of articles with an LLM.
// Summarize never fails: readers get a fixed fallback sentence instead.
package summary

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"

	"inkwell/internal/models"
)

const (
	systemPrompt = "You are a professional tech editor."
	userPrompt   = "Summarize the following tech article content into a concise 3-sentence TL;DR for a blog reader: \n\n"

	// FallbackEmpty is returned when the model answers with no text.
	FallbackEmpty = "Summary unavailable at the moment."
	// FallbackError is returned when the model call fails.
	FallbackError = "Could not generate a summary."

	// DefaultCacheSize is the number of summaries kept in memory.
	DefaultCacheSize = 256

	maxInputChars = 20000
)

// Generator is the subset of ai.Registry the service needs.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service summarizes articles and caches the results by article id.
type Service struct {
	gen    Generator
	cache  *lru.Cache[string, string]
	policy *bluemonday.Policy
}

// New creates a summary service. gen may be nil, in which case every call
// returns FallbackError.
func New(gen Generator, cacheSize int) *Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, string](cacheSize) // only fails for size <= 0
	return &Service{
		gen:    gen,
		cache:  cache,
		policy: bluemonday.StrictPolicy(),
	}
}

// Summarize returns a summary of the article body. Only successful
// summaries are cached, so a transient failure is retried next time.
func (s *Service) Summarize(ctx context.Context, a *models.Article) string {
	if cached, ok := s.cache.Get(a.ID); ok {
		return cached
	}
	if s.gen == nil {
		return FallbackError
	}

	text := s.plainText(a.Content)
	out, err := s.gen.Generate(ctx, systemPrompt, userPrompt+text)
	if err != nil {
		slog.Warn("summary generation failed", "article_id", a.ID, "error", err)
		return FallbackError
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return FallbackEmpty
	}
	s.cache.Add(a.ID, out)
	return out
}

// Forget drops a cached summary, e.g. after the article was deleted.
func (s *Service) Forget(id string) {
	s.cache.Remove(id)
}

// plainText strips markup so the prompt carries only the article words.
func (s *Service) plainText(content string) string {
	text := html.UnescapeString(s.policy.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")
	return truncate(text, maxInputChars)
}

// truncate cuts text to at most n bytes without splitting a rune.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
