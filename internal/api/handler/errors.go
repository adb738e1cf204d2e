package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/cluegame-go/internal/api/apierr"
)

// maxBodyBytes caps request bodies; the largest is a three-card combination
const maxBodyBytes = 4 << 10

// WriteError writes err as a JSON error response
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewNotMovedError reports a pawn move the board refused
func NewNotMovedError() error {
	return apierr.NewNotMovedError()
}

// decodeBody reads a JSON request body into v. An empty body is reported
// with io.EOF so callers that accept one can tell it apart.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}
