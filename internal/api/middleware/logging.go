package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

const RequestIDHeader = "X-Request-ID"

// RequestLogger attaches a request scoped logrus entry to the context and logs
// every completed request with its status and latency.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		w.Header().Set(RequestIDHeader, requestID)
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerKey, entry)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry.WithFields(logrus.Fields{
			"status":  status,
			"latency": time.Since(start).String(),
		}).Info("Request completed")
	})
}

// Logger returns the request scoped entry, or the standard logger outside a request.
func Logger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
