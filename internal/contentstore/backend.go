// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contentstore talks to the store that holds dynamically published
// articles and recorded sales. The primary implementation is a REST client
// for a hosted PostgREST endpoint; a self-hosted Postgres implementation
// lives in the pgstore package. Both satisfy Backend and report failures as
// *Error values with a Kind, so callers can degrade without parsing text.
package contentstore

import (
	"context"
	"errors"

	"inkwell/internal/models"
)

// Backend is the data-access contract shared by every store implementation.
// Methods never panic. Lookups return (nil, nil) when the record is absent.
type Backend interface {
	// Configured reports whether the backend has what it needs to issue
	// requests. An unconfigured backend fails fast with KindConfig.
	Configured() bool

	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	InsertArticle(ctx context.Context, a models.Article) error
	DeleteArticle(ctx context.Context, id string) error

	ListSales(ctx context.Context) ([]models.Sale, error)
	FindSale(ctx context.Context, orderID string) (*models.Sale, error)
	// InsertSale returns ErrDuplicateSale when the order already has a sale.
	InsertSale(ctx context.Context, s models.Sale) error

	// CheckConnection is advisory: nothing else consults it before running.
	CheckConnection(ctx context.Context) Diagnosis
}

// ErrDuplicateSale reports that a sale for the order is already stored, so
// nothing was written.
var ErrDuplicateSale = errors.New("contentstore: sale already recorded")

// codeUniqueViolation is the Postgres code for a unique constraint clash.
const codeUniqueViolation = "23505"

// Diagnosis is the outcome of a connectivity check.
type Diagnosis struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DiagnosisFrom converts a probe error into a Diagnosis.
func DiagnosisFrom(err error) Diagnosis {
	if err == nil {
		return Diagnosis{Success: true, Message: "Connected"}
	}
	return Diagnosis{Success: false, Message: MessageOf(err)}
}
