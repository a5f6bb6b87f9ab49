// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"inkwell/internal/credentials"
	"inkwell/internal/models"
)

// DefaultTimeout bounds every request when no HTTP client is supplied.
const DefaultTimeout = 15 * time.Second

const restPrefix = "/rest/v1/"

// Client is a Backend for a hosted PostgREST endpoint. The credentials are
// fixed for the lifetime of the client; a credential change builds a new
// client (see Swappable). Client does not retry.
type Client struct {
	creds credentials.Credentials
	http  *http.Client
}

// NewClient creates a REST client. If hc is nil a client with
// DefaultTimeout is used.
func NewClient(creds credentials.Credentials, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{creds: creds, http: hc}
}

// Credentials returns the pair this client was built with.
func (c *Client) Credentials() credentials.Credentials { return c.creds }

// Configured returns true if the credentials are present and well-formed.
func (c *Client) Configured() bool {
	return c.creds.Valid()
}

// CheckConnection probes the articles endpoint with a one-row query.
func (c *Client) CheckConnection(ctx context.Context) Diagnosis {
	if msg := c.creds.Problem(); msg != "" {
		return Diagnosis{Success: false, Message: msg}
	}
	q := url.Values{"select": {"id"}, "limit": {"1"}}
	var rows []json.RawMessage
	return DiagnosisFrom(c.do(ctx, "check", http.MethodGet, "articles", q, nil, &rows))
}

func (c *Client) ListArticles(ctx context.Context) ([]models.Article, error) {
	var rows []articleRow
	if err := c.do(ctx, "list articles", http.MethodGet, "articles", url.Values{"select": {"*"}}, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Article, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.article())
	}
	return out, nil
}

func (c *Client) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	q := url.Values{"select": {"*"}, "id": {"eq." + id}, "limit": {"1"}}
	var rows []articleRow
	if err := c.do(ctx, "get article", http.MethodGet, "articles", q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	a := rows[0].article()
	return &a, nil
}

func (c *Client) InsertArticle(ctx context.Context, a models.Article) error {
	return c.do(ctx, "insert article", http.MethodPost, "articles", nil, rowFromArticle(a), nil)
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, "delete article", http.MethodDelete, "articles", url.Values{"id": {"eq." + id}}, nil, nil)
}

func (c *Client) ListSales(ctx context.Context) ([]models.Sale, error) {
	q := url.Values{"select": {"*"}, "order": {"created_at.asc"}}
	var rows []saleRow
	if err := c.do(ctx, "list sales", http.MethodGet, "sales", q, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Sale, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.sale())
	}
	return out, nil
}

func (c *Client) FindSale(ctx context.Context, orderID string) (*models.Sale, error) {
	q := url.Values{"select": {"*"}, "order_id": {"eq." + orderID}, "limit": {"1"}}
	var rows []saleRow
	if err := c.do(ctx, "find sale", http.MethodGet, "sales", q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	s := rows[0].sale()
	return &s, nil
}

func (c *Client) InsertSale(ctx context.Context, s models.Sale) error {
	err := c.do(ctx, "insert sale", http.MethodPost, "sales", nil, rowFromSale(s), nil)
	var se *Error
	if errors.As(err, &se) && se.Code == codeUniqueViolation {
		return fmt.Errorf("insert sale %s: %w", s.OrderID, ErrDuplicateSale)
	}
	return err
}

// do performs one request. body is JSON-encoded when non-nil; out receives
// the decoded response when non-nil.
func (c *Client) do(ctx context.Context, op, method, table string, query url.Values, body, out any) error {
	if msg := c.creds.Problem(); msg != "" {
		return configError(op, msg)
	}

	endpoint := c.creds.URL + restPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindRemote, Op: op, Message: "could not encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return configError(op, fmt.Sprintf("%s: %v", credentials.MsgInvalidURL, err))
	}
	req.Header.Set("apikey", c.creds.Key)
	req.Header.Set("Authorization", "Bearer "+c.creds.Key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("content store unreachable", "op", op, "error", err)
		return networkError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := classify(op, resp.StatusCode, respBody)
		slog.Warn("content store request failed",
			"op", op, "status", resp.StatusCode, "kind", se.Kind, "code", se.Code, "message", se.Message)
		return se
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindRemote, Op: op, Status: resp.StatusCode, Message: "unexpected response body", Err: err}
	}
	return nil
}

// articleRow is the remote column layout of an article.
type articleRow struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	IntroText string   `json:"intro_text,omitempty"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Date      string   `json:"date"`
	ReadTime  string   `json:"read_time"`
	Image     string   `json:"image"`
	Price     *float64 `json:"price,omitempty"`
	IsPLR     *bool    `json:"is_plr,omitempty"`
}

func rowFromArticle(a models.Article) articleRow {
	return articleRow{
		ID:        a.ID,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		IntroText: a.IntroText,
		Content:   a.Content,
		Category:  string(a.Category),
		Date:      a.Date,
		ReadTime:  a.ReadTime,
		Image:     a.Image,
		Price:     a.Price,
		IsPLR:     a.IsPLR,
	}
}

func (r articleRow) article() models.Article {
	return models.Article{
		ID:        r.ID,
		Title:     r.Title,
		Excerpt:   r.Excerpt,
		IntroText: r.IntroText,
		Content:   r.Content,
		Category:  models.Category(r.Category),
		Date:      r.Date,
		ReadTime:  r.ReadTime,
		Image:     r.Image,
		Price:     r.Price,
		IsPLR:     r.IsPLR,
	}
}

// saleRow is the remote column layout of a sale.
type saleRow struct {
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func rowFromSale(s models.Sale) saleRow {
	return saleRow{
		OrderID:   s.OrderID,
		ItemID:    s.ItemID,
		ItemName:  s.ItemName,
		Price:     s.Price,
		CreatedAt: s.CreatedAt.UTC(),
	}
}

func (r saleRow) sale() models.Sale {
	return models.Sale{
		OrderID:   r.OrderID,
		ItemID:    r.ItemID,
		ItemName:  r.ItemName,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
	}
}
