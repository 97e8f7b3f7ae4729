package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/cache"
	"lojasocial/internal/pkg/logger"
)

// RateLimiter aplica uma janela fixa por cliente com um contador Redis.
// O cliente é o utilizador autenticado, ou o IP quando não há sessão.
// Falhas do Redis deixam o pedido passar.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + clientKey(r)

			count, err := client.Incr(r.Context(), key, window)
			if err != nil {
				log.Warn("Rate limit indisponível.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(domain.ErrorResponse{
					Code: http.StatusTooManyRequests, Category: "RATE_LIMITED", Message: "Limite de pedidos excedido.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if session, ok := SessionFromContext(r.Context()); ok && session.UserID != "" {
		return "user:" + session.UserID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
