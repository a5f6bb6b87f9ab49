// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pgstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/contentstore"
	"inkwell/internal/models"
)

var articleCols = []string{"id", "title", "excerpt", "intro_text", "content", "category", "date", "read_time", "image", "price", "is_plr"}

func strPtr(s string) *string { return &s }

func TestListArticles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(articleCols).
		AddRow("art-1", "Edge Functions", "Short", strPtr("Hook"), "<p>Body</p>", "Serverless",
			"Mar 07, 2026", "5 min", "https://picsum.photos/seed/art-1/800/600", models.Float(45), models.Bool(true)).
		AddRow("art-2", "Multi-tenant SaaS", "Tenancy", strPtr(""), "<p>More</p>", "SaaS",
			"Mar 08, 2026", "7 min", "https://img.example/2.png", models.Float(60), models.Bool(false))
	mock.ExpectQuery("SELECT id, title, .* FROM articles ORDER BY created_at ASC").WillReturnRows(rows)

	got, err := New(mock).ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "art-1", got[0].ID)
	assert.Equal(t, "Hook", got[0].IntroText)
	assert.Equal(t, models.CategoryServerless, got[0].Category)
	assert.Equal(t, 45.0, got[0].PriceValue())
	assert.True(t, got[0].PLR())
	assert.Equal(t, models.CategorySaaS, got[1].Category)
	assert.False(t, got[1].PLR())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArticle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(articleCols).
			AddRow("art-9", "Cold Starts", "Why", strPtr("Intro"), "<p>x</p>", "Cloud Computing",
				"Mar 07, 2026", "5 min", "https://img.example/9.png", models.Float(45), models.Bool(true))
		mock.ExpectQuery("FROM articles WHERE id = \\$1").WithArgs("art-9").WillReturnRows(rows)

		got, err := New(mock).GetArticle(context.Background(), "art-9")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Cold Starts", got.Title)
		assert.Equal(t, models.CategoryCloud, got.Category)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM articles WHERE id = \\$1").WithArgs("art-404").WillReturnError(pgx.ErrNoRows)

		got, err := New(mock).GetArticle(context.Background(), "art-404")
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertArticle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a := models.Article{
		ID: "art-123", Title: "T", Excerpt: "E", Content: "<p>C</p>", Category: models.CategoryTechTips,
		Date: "Mar 07, 2026", ReadTime: "5 min", Image: "https://img.example/x.png",
		Price: models.Float(45), IsPLR: models.Bool(true),
	}
	mock.ExpectExec("INSERT INTO articles").
		WithArgs("art-123", "T", "E", pgxmock.AnyArg(), "<p>C</p>", "Tech Tips",
			"Mar 07, 2026", "5 min", "https://img.example/x.png", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, New(mock).InsertArticle(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArticle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM articles WHERE id = \\$1").WithArgs("art-5").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, New(mock).DeleteArticle(context.Background(), "art-5"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSales(t *testing.T) {
	at := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	t.Run("insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		sale := models.Sale{OrderID: "ord-1", ItemID: "seo-audit", ItemName: "SEO Audit", Price: 80, CreatedAt: at}
		mock.ExpectExec("INSERT INTO sales .* ON CONFLICT \\(order_id\\) DO NOTHING").
			WithArgs("ord-1", "seo-audit", "SEO Audit", 80.0, at).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, New(mock).InsertSale(context.Background(), sale))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert reports duplicates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		sale := models.Sale{OrderID: "ord-1", ItemID: "seo-audit", ItemName: "SEO Audit", Price: 80, CreatedAt: at}
		mock.ExpectExec("INSERT INTO sales .* ON CONFLICT \\(order_id\\) DO NOTHING").
			WithArgs("ord-1", "seo-audit", "SEO Audit", 80.0, at).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err = New(mock).InsertSale(context.Background(), sale)
		assert.ErrorIs(t, err, contentstore.ErrDuplicateSale)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"order_id", "item_id", "item_name", "price", "created_at"}).
			AddRow("ord-1", "seo-audit", "SEO Audit", 80.0, at).
			AddRow("ord-2", "1", "Serverless 101", 45.0, at.Add(time.Hour))
		mock.ExpectQuery("FROM sales ORDER BY created_at ASC").WillReturnRows(rows)

		got, err := New(mock).ListSales(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ord-2", got[1].OrderID)
		assert.Equal(t, 45.0, got[1].Price)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM sales WHERE order_id = \\$1").WithArgs("ord-x").WillReturnError(pgx.ErrNoRows)

		got, err := New(mock).FindSale(context.Background(), "ord-x")
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQueryErrorsAreClassified(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM articles ORDER BY").
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "articles" does not exist`})

	_, err = New(mock).ListArticles(context.Background())
	require.Error(t, err)
	assert.Equal(t, contentstore.KindNotFound, contentstore.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind contentstore.Kind
		wantMsg  string
	}{
		{"missing table", &pgconn.PgError{Code: "42P01"}, contentstore.KindNotFound, contentstore.MsgTableNotFound},
		{"bad password", &pgconn.PgError{Code: "28P01"}, contentstore.KindUnauthorized, "Invalid database credentials"},
		{"no privilege", &pgconn.PgError{Code: "42501"}, contentstore.KindUnauthorized, "Invalid database credentials"},
		{"unknown column", &pgconn.PgError{Code: "42703", Message: `column "is_plr" does not exist`}, contentstore.KindSchema,
			contentstore.MsgSchemaMismatch + `: column "is_plr" does not exist`},
		{"other server error", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, contentstore.KindRemote, "duplicate key"},
		{"network", errors.New("dial tcp: connection refused"), contentstore.KindNetwork, contentstore.MsgConnectionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", tt.err)
			assert.Equal(t, tt.wantKind, contentstore.KindOf(err))
			assert.Equal(t, tt.wantMsg, contentstore.MessageOf(err))
		})
	}

	assert.NoError(t, mapError("op", nil))
}

func TestCheckConnection(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectPing()
		mock.ExpectQuery("SELECT id FROM articles LIMIT 1").WillReturnRows(pgxmock.NewRows([]string{"id"}))

		got := New(mock).CheckConnection(context.Background())
		assert.Equal(t, contentstore.Diagnosis{Success: true, Message: "Connected"}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		got := New(mock).CheckConnection(context.Background())
		assert.False(t, got.Success)
		assert.Equal(t, contentstore.MsgConnectionFailed, got.Message)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no database", func(t *testing.T) {
		got := New(nil).CheckConnection(context.Background())
		assert.False(t, got.Success)
	})
}
