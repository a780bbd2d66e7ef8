package log

import (
	"time"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	Method     string
	Path       string
	Query      string
	Status     int
	Duration   time.Duration
	Size       int64
	RemoteAddr string
	UserAgent  string
	Cycle      string
}

// LogHTTPRequest writes one structured access-log line per request.
// Server errors are logged at error level.
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []interface{}{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}
	if e.Query != "" {
		fields = append(fields, "query", e.Query)
	}
	if e.Cycle != "" {
		fields = append(fields, "cycle", e.Cycle)
	}

	if e.Status >= 500 {
		log.Errorw("http request", fields...)
		return
	}
	log.Infow("http request", fields...)
}
