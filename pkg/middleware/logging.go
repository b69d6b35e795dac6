package middleware

import (
	"net/http"
	"time"

	"github.com/Dauren914/Reminder_Manager/pkg/logger"
	"github.com/google/uuid"
)

// LoggingMiddleware logs every request with a generated request id.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		next.ServeHTTP(w, r)

		logger.Log.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("Request handled")
	})
}
