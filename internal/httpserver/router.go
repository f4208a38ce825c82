package httpserver

import (
	"log"
	"net/http"
	"time"

	"archject/internal/httpserver/handlers"
	"archject/internal/idgen"
)

func NewRouter(api *API, logger *log.Logger, debug bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Health)
	mux.HandleFunc("GET /v1/version", handlers.Version)
	api.RegisterRoutes(mux)

	return withRequestLog(logger, debug, withJSONContentType(mux))
}

func withJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// newRequestID is swapped in tests.
var newRequestID = func() (string, error) { return idgen.New("req") }

// noRequestID stands in for the id in log lines when generation fails.
const noRequestID = "-"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags every response with X-Request-ID and writes one access
// line per request. Bodies are never logged; they carry passwords.
func withRequestLog(logger *log.Logger, debug bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id, err := newRequestID()
		if err != nil {
			id = noRequestID
			if logger != nil {
				logger.Printf("request id generation failed: %v", err)
			}
		} else {
			w.Header().Set("X-Request-ID", id)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if logger == nil || (r.URL.Path == "/healthz" && !debug) {
			return
		}
		logger.Printf(
			"request id=%s method=%s path=%s status=%d duration=%s",
			id, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond),
		)
	})
}
