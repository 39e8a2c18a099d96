// internal/middleware/debug_body.go
package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Header values that must never reach the logs.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

// RequestBodyLogger logs method, headers and body of incoming requests at
// debug level. Bodies are re-wrapped so downstream handlers still read them.
// When the logger is not in debug, requests pass through untouched.
func RequestBodyLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !logger.Enabled(r.Context(), slog.LevelDebug) {
				next.ServeHTTP(w, r)
				return
			}

			headers := make([]any, 0, len(r.Header)*2)
			for name, values := range r.Header {
				value := strings.Join(values, ", ")
				if sensitiveHeaders[strings.ToLower(name)] {
					value = "[masked]"
				}
				headers = append(headers, slog.String(name, value))
			}

			var body string
			if r.Body != nil && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				data, err := io.ReadAll(r.Body)
				if err == nil {
					body = string(data)
					r.Body = io.NopCloser(bytes.NewReader(data))
				}
			}

			logger.LogAttrs(r.Context(), slog.LevelDebug, "Request detail",
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Group("headers", headers...),
				slog.String("body", body),
			)
			next.ServeHTTP(w, r)
		})
	}
}
