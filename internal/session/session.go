// Package session keeps the admin panel's browser session. The session is
// a random id in a cookie with a flag stored in local state. It gates
// convenience access to the admin API and is not a security boundary: the
// admin key is a single shared value.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/state"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "inkwell_admin"

	// DefaultTTL is how long a session lives in state before automatic expiry.
	DefaultTTL = 12 * time.Hour

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// ErrDisabled is returned by Login when no admin key is configured.
var ErrDisabled = errors.New("session: admin access is disabled")

// ErrBadKey is returned by Login for a wrong key.
var ErrBadKey = errors.New("session: wrong admin key")

// Store manages admin session lifecycle.
type Store struct {
	state    state.Store
	adminKey string
	ttl      time.Duration
	secure   bool
}

// NewStore creates a session store. An empty adminKey disables login.
// secure controls the cookie's Secure flag.
func NewStore(st state.Store, adminKey string, secure bool) *Store {
	return &Store{
		state:    st,
		adminKey: adminKey,
		ttl:      DefaultTTL,
		secure:   secure,
	}
}

// Enabled returns true if an admin key is configured.
func (s *Store) Enabled() bool {
	return s.adminKey != ""
}

// Login checks key and, if it matches, creates a session and sets the
// cookie. The cookie has no Max-Age, so the browser drops it on close.
func (s *Store) Login(ctx context.Context, w http.ResponseWriter, key string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return ErrBadKey
	}

	id, err := generateID()
	if err != nil {
		return fmt.Errorf("session create: %w", err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := s.state.Set(ctx, state.AdminSessionKey(id), stamp, s.ttl); err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Valid returns true if the request carries a live admin session.
func (s *Store) Valid(ctx context.Context, r *http.Request) bool {
	if !s.Enabled() {
		return false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = s.state.Get(ctx, state.AdminSessionKey(cookie.Value))
	return err == nil
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.state.Delete(ctx, state.AdminSessionKey(cookie.Value)); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
