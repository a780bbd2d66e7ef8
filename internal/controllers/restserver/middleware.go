package restserver

import (
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"

	"github.com/chrissnell/bikeshare/internal/log"
)

// CycleHeader carries the dashboard cycle id of a response
const CycleHeader = "X-Dashboard-Cycle"

// requestLogger writes one access log line per request
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		log.LogHTTPRequest(log.HTTPLogEntry{
			Method:     r.Method,
			Path:       r.URL.Path,
			Query:      r.URL.RawQuery,
			Status:     m.Code,
			Duration:   m.Duration,
			Size:       m.Written,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
			Cycle:      w.Header().Get(CycleHeader),
		})
	})
}

// recoveryLogger adapts the package logger to gorilla's RecoveryHandlerLogger
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Errorf("panic serving request: %s", fmt.Sprint(v...))
}
