// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkwell/internal/catalog"
)

// maxBodyBytes caps every JSON request body. Article bodies are HTML and
// the largest thing the API accepts.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type checkoutRequest struct {
	ItemID string `json:"itemId" validate:"required,max=64"`
}

type loginRequest struct {
	Key string `json:"key" validate:"required,max=512"`
}

type credentialsRequest struct {
	URL string `json:"url" validate:"max=2048"`
	Key string `json:"key" validate:"max=4096"`
}

// decodeJSON reads a single JSON object into dst and validates it. The
// returned error is safe to show to the caller.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := readJSON(w, r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %s", catalog.DescribeValidation(err))
	}
	return nil
}

// readJSON reads a single JSON object into dst without validating it, for
// types whose owner package validates them.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errors.New("request body too large")
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return errors.New("request body is not valid JSON")
		}
	}
	return nil
}
