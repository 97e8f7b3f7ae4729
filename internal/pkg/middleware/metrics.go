package middleware

import (
	"net/http"
	"strconv"
	"time"

	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush mantém o streaming SSE a funcionar através do wrapper.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// Metrics mede cada pedido por método, rota e estado, e regista-o no log.
// A rota é o padrão do ServeMux, para não explodir a cardinalidade com IDs.
func Metrics(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), elapsed.Seconds())
			log.Debug("Requisição concluída.", map[string]interface{}{
				"method": r.Method, "path": r.URL.Path, "status": rec.status, "duration_ms": elapsed.Milliseconds(),
			})
		})
	}
}
