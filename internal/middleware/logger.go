package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("epiq.http")

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request with its status and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		reqID := chimw.GetReqID(r.Context())
		elapsed := time.Since(start).Round(time.Millisecond)
		if sw.status >= http.StatusInternalServerError {
			logger.Warningf("[%s] %s %s %d %s", reqID, r.Method, r.URL.Path, sw.status, elapsed)
			return
		}
		logger.Infof("[%s] %s %s %d %s", reqID, r.Method, r.URL.Path, sw.status, elapsed)
	})
}
