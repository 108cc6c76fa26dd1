// Package http exposes the gallery search service as a JSON API and
// provides a client that implements gallery.SearchService against it.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/gallery"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	gallery.ECONFLICT:    http.StatusConflict,
	gallery.EINVALID:     http.StatusBadRequest,
	gallery.ENOTFOUND:    http.StatusNotFound,
	gallery.EUNAVAILABLE: http.StatusServiceUnavailable,
	gallery.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// FromErrorStatusCode returns the application error code for a status code.
func FromErrorStatusCode(status int) string {
	if status == http.StatusTooManyRequests {
		return gallery.EUNAVAILABLE
	}
	for k, v := range codes {
		if v == status {
			return k
		}
	}
	return gallery.EINTERNAL
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported to the caller with a generic message.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := gallery.ErrorCode(err), gallery.ErrorMessage(err)
	if code == gallery.EINTERNAL {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
	}
	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
