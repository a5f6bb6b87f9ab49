// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package credentials resolves the URL and access key used to reach the
// remote content store. Values can come from a manually entered override
// kept in local state or from the environment configuration; the first
// non-empty value per field wins. Resolution never fails: a missing source
// just means "try the next one".
package credentials

import (
	"context"
	"strings"
)

// Credentials is the connection pair for the remote content store.
type Credentials struct {
	URL string
	Key string
}

// Empty returns true if neither field is set.
func (c Credentials) Empty() bool {
	return c.URL == "" && c.Key == ""
}

// Complete returns true if both fields are set. It says nothing about
// whether the values are well-formed; see Problem for that.
func (c Credentials) Complete() bool {
	return c.URL != "" && c.Key != ""
}

// Diagnostic messages for malformed configuration.
const (
	MsgMissingURL    = "Missing Project URL"
	MsgMissingKey    = "Missing Anon Key"
	MsgInvalidURL    = "Invalid URL format: the project URL must start with https:// (a postgres:// connection string is not a project URL)"
	secureScheme     = "https://"
	maskedURLLength  = 15
	maskedKeyPresent = "PROVIDED (Masked)"
	maskedMissing    = "MISSING"
)

// Problem classifies a configuration error in priority order: missing URL,
// missing key, then a URL that does not use https. It returns "" when the
// pair is well-formed.
func (c Credentials) Problem() string {
	switch {
	case c.URL == "":
		return MsgMissingURL
	case c.Key == "":
		return MsgMissingKey
	case !strings.HasPrefix(strings.ToLower(c.URL), secureScheme):
		return MsgInvalidURL
	}
	return ""
}

// Valid returns true if the pair is well-formed.
func (c Credentials) Valid() bool {
	return c.Problem() == ""
}

// Masked is a view of the credentials that is safe to show or log.
type Masked struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Masked hides all but the start of the URL and the whole key.
func (c Credentials) Masked() Masked {
	m := Masked{URL: maskedMissing, Key: maskedMissing}
	if c.URL != "" {
		u := c.URL
		if len(u) > maskedURLLength {
			u = u[:maskedURLLength]
		}
		m.URL = u + "..."
	}
	if c.Key != "" {
		m.Key = maskedKeyPresent
	}
	return m
}

// String never prints the key.
func (c Credentials) String() string {
	m := c.Masked()
	return "url=" + m.URL + " key=" + m.Key
}

// quoteChars are stripped from both ends of a candidate value. Pasting a
// value from a .env file or a dashboard often brings its quotes along.
const quoteChars = "\"'`"

// Clean trims whitespace and any surrounding quote characters.
func Clean(s string) string {
	for {
		t := strings.TrimSpace(s)
		t = strings.Trim(t, quoteChars)
		if t == s {
			return t
		}
		s = t
	}
}

// CleanURL cleans a URL candidate and drops trailing slashes so paths
// can be appended directly.
func CleanURL(s string) string {
	return strings.TrimRight(Clean(s), "/")
}

// Source supplies candidate credentials. Either field may be empty.
type Source interface {
	Lookup(ctx context.Context) Credentials
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) Credentials

func (f SourceFunc) Lookup(ctx context.Context) Credentials { return f(ctx) }

// Static is a fixed pair, typically the environment configuration.
type Static Credentials

func (s Static) Lookup(context.Context) Credentials { return Credentials(s) }

// Resolve returns the first non-empty cleaned URL and the first non-empty
// cleaned key across sources, in order. Fields resolve independently, so a
// stored key can be combined with a configured URL.
func Resolve(ctx context.Context, sources ...Source) Credentials {
	var out Credentials
	for _, src := range sources {
		if src == nil {
			continue
		}
		c := lookup(ctx, src)
		if out.URL == "" {
			out.URL = CleanURL(c.URL)
		}
		if out.Key == "" {
			out.Key = Clean(c.Key)
		}
		if out.Complete() {
			break
		}
	}
	return out
}

// lookup shields Resolve from a misbehaving source.
func lookup(ctx context.Context, src Source) (c Credentials) {
	defer func() {
		if recover() != nil {
			c = Credentials{}
		}
	}()
	return src.Lookup(ctx)
}
