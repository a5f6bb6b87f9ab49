// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contentstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a content store failure so callers can pick a
// remediation message without parsing error strings.
type Kind string

const (
	KindConfig       Kind = "config"
	KindUnauthorized Kind = "unauthorized"
	KindSchema       Kind = "schema"
	KindNotFound     Kind = "not_found"
	KindRemote       Kind = "remote"
	KindNetwork      Kind = "network"
)

// Remediation messages shown to operators.
const (
	MsgInvalidKey       = "Invalid API Key"
	MsgTableNotFound    = "table/endpoint not found"
	MsgConnectionFailed = "Connection failed, check URL/connectivity."
	MsgSchemaMismatch   = "Schema mismatch: a column is missing or has the wrong type in the remote table"
)

// Error is returned by every Backend method on failure.
type Error struct {
	Kind    Kind
	Op      string
	Status  int    // HTTP status, 0 when no response was received
	Code    string // remote error code, e.g. PGRST204 or 42703
	Message string // human-readable remediation
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("contentstore")
	if e.Op != "" {
		b.WriteString(" " + e.Op)
	}
	b.WriteString(": " + e.Message)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a content store error, or "" if err is nil or
// not a content store error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// MessageOf returns the remediation message of a content store error, or
// err.Error() for anything else.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func configError(op, msg string) *Error {
	return &Error{Kind: KindConfig, Op: op, Message: msg}
}

func networkError(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: MsgConnectionFailed, Err: err}
}

// schemaCodes are PostgREST and Postgres codes that mean the payload does
// not fit the table definition.
var schemaCodes = map[string]bool{
	"PGRST204": true, // column not found in schema cache
	"PGRST102": true, // invalid body
	"42703":    true, // undefined_column
	"23502":    true, // not_null_violation
	"22P02":    true, // invalid_text_representation
}

// remoteBody is the PostgREST error payload.
type remoteBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// IsSchemaCode reports whether a remote or Postgres error code describes a
// schema mismatch.
func IsSchemaCode(code string) bool {
	return schemaCodes[code]
}

// classify turns a non-2xx response into an Error.
func classify(op string, status int, body []byte) *Error {
	var rb remoteBody
	_ = json.Unmarshal(body, &rb)

	text := strings.TrimSpace(rb.Message)
	if text == "" {
		text = strings.TrimSpace(string(body))
	}

	e := &Error{Op: op, Status: status, Code: rb.Code}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind, e.Message = KindUnauthorized, MsgInvalidKey
	case status == http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, MsgTableNotFound
	case IsSchemaCode(rb.Code) || mentionsColumn(text):
		e.Kind, e.Message = KindSchema, MsgSchemaMismatch
		if text != "" {
			e.Message += ": " + text
		}
	default:
		e.Kind = KindRemote
		e.Message = text
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
	}
	return e
}

func mentionsColumn(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "column") &&
		(strings.Contains(m, "does not exist") || strings.Contains(m, "could not find") || strings.Contains(m, "violates not-null"))
}
