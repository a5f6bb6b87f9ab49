// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/contentstore"
	"inkwell/internal/models"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements contentstore.Backend on PostgreSQL.
type Store struct {
	db DB
}

var _ contentstore.Backend = (*Store)(nil)

// New creates a store on db.
func New(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Configured() bool { return s.db != nil }

const articleColumns = `id, title, excerpt, intro_text, content, category, date, read_time, image, price, is_plr`

// CheckConnection pings the database and probes the articles table.
func (s *Store) CheckConnection(ctx context.Context) contentstore.Diagnosis {
	if s.db == nil {
		return contentstore.Diagnosis{Message: "Missing database connection"}
	}
	if err := s.db.Ping(ctx); err != nil {
		return contentstore.DiagnosisFrom(mapError("check", err))
	}
	rows, err := s.db.Query(ctx, `SELECT id FROM articles LIMIT 1`)
	if err != nil {
		return contentstore.DiagnosisFrom(mapError("check", err))
	}
	rows.Close()
	return contentstore.DiagnosisFrom(mapError("check", rows.Err()))
}

func (s *Store) ListArticles(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_at ASC`)
	if err != nil {
		return nil, mapError("list articles", err)
	}
	defer rows.Close()

	var out []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, mapError("list articles", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list articles", err)
	}
	return out, nil
}

func (s *Store) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get article", err)
	}
	return &a, nil
}

func (s *Store) InsertArticle(ctx context.Context, a models.Article) error {
	var intro *string
	if a.IntroText != "" {
		intro = &a.IntroText
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, a.ID, a.Title, a.Excerpt, intro, a.Content, string(a.Category), a.Date, a.ReadTime, a.Image, a.Price, a.IsPLR)
	if err != nil {
		return mapError("insert article", err)
	}
	return nil
}

func (s *Store) DeleteArticle(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return mapError("delete article", err)
	}
	return nil
}

func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	rows, err := s.db.Query(ctx, `
		SELECT order_id, item_id, item_name, price, created_at
		FROM sales ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	defer rows.Close()

	var out []models.Sale
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.OrderID, &sale.ItemID, &sale.ItemName, &sale.Price, &sale.CreatedAt); err != nil {
			return nil, mapError("list sales", err)
		}
		out = append(out, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list sales", err)
	}
	return out, nil
}

func (s *Store) FindSale(ctx context.Context, orderID string) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.QueryRow(ctx, `
		SELECT order_id, item_id, item_name, price, created_at
		FROM sales WHERE order_id = $1
	`, orderID).Scan(&sale.OrderID, &sale.ItemID, &sale.ItemName, &sale.Price, &sale.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("find sale", err)
	}
	return &sale, nil
}

// InsertSale never writes a second sale for the same order; the conflict is
// reported as contentstore.ErrDuplicateSale.
func (s *Store) InsertSale(ctx context.Context, sale models.Sale) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO sales (order_id, item_id, item_name, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
	`, sale.OrderID, sale.ItemID, sale.ItemName, sale.Price, sale.CreatedAt)
	if err != nil {
		return mapError("insert sale", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert sale %s: %w", sale.OrderID, contentstore.ErrDuplicateSale)
	}
	return nil
}

func scanArticle(row pgx.Row) (models.Article, error) {
	var (
		a        models.Article
		intro    *string
		category string
	)
	err := row.Scan(&a.ID, &a.Title, &a.Excerpt, &intro, &a.Content, &category,
		&a.Date, &a.ReadTime, &a.Image, &a.Price, &a.IsPLR)
	if err != nil {
		return a, err
	}
	if intro != nil {
		a.IntroText = *intro
	}
	a.Category = models.Category(category)
	return a, nil
}

// Postgres error codes with a dedicated kind.
const (
	codeUndefinedTable   = "42P01"
	codeInvalidPassword  = "28P01"
	codeInvalidAuth      = "28000"
	codeInsufficientPriv = "42501"
)

// mapError converts a pgx error into the content store taxonomy.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return &contentstore.Error{Kind: contentstore.KindNetwork, Op: op, Message: contentstore.MsgConnectionFailed, Err: err}
	}

	e := &contentstore.Error{Op: op, Code: pgErr.Code, Err: err}
	switch {
	case pgErr.Code == codeUndefinedTable:
		e.Kind, e.Message = contentstore.KindNotFound, contentstore.MsgTableNotFound
	case pgErr.Code == codeInvalidPassword || pgErr.Code == codeInvalidAuth || pgErr.Code == codeInsufficientPriv:
		e.Kind, e.Message = contentstore.KindUnauthorized, "Invalid database credentials"
	case contentstore.IsSchemaCode(pgErr.Code):
		e.Kind = contentstore.KindSchema
		e.Message = fmt.Sprintf("%s: %s", contentstore.MsgSchemaMismatch, pgErr.Message)
	default:
		e.Kind, e.Message = contentstore.KindRemote, pgErr.Message
	}
	return e
}
