package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/reflora/server/internal/logger"
)

// Logging logs one line per request with a generated request ID.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a Logging middleware.
func NewLogging(l *logger.Logger) *Logging {
	return &Logging{logger: l}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Log records method, path, status and duration of each request.
func (m *Logging) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		m.logger.Info("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start),
		)
	})
}
