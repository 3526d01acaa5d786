package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// Every error response from the API has the same one-field shape:
//
//	{"message": "Dog already adopted"}
//
// so clients always know what to parse, regardless of status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pawhaus/dog-adoption/internal/apperror"
)

// MessageResponse is the standard body for errors and for operations whose
// only payload is a confirmation ("User registered successfully").
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code must be set BEFORE writing the body. Once
// Encode() writes the first byte, the headers are on the wire and any
// later changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code.
//
// This is the single place where the apperror taxonomy meets HTTP. The
// service layer returns apperror values; nothing below this function knows
// a status code exists.
//
// NOTE THE CONFLICT MAPPING: state conflicts ("Dog already adopted",
// duplicate username, self-adoption) return 400, NOT 409. That is the
// API's long-standing observable contract — changing it would break
// existing clients, so it stays 400 on purpose.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	// errors.As walks the wrap chain and extracts the *AppError if one is
	// anywhere inside — services wrap with %w, so this always finds it for
	// domain errors.
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest // contract: conflicts are 400
		}

		writeJSON(w, status, MessageResponse{Message: appErr.Message})
		return
	}

	// Unknown error — log it, return a generic 500. The raw message might
	// contain SQL fragments or file paths; it never reaches the client.
	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, MessageResponse{
		Message: "Something went wrong!",
	})
}
