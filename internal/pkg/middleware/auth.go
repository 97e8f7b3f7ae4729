package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
)

// ContextKey é um tipo próprio para as chaves de contexto deste pacote.
type ContextKey int

const (
	SessionKey ContextKey = iota
)

// Authenticator resolve um bearer token na sessão do utilizador.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (domain.Session, error)
}

// NewAuthMiddleware valida o JWT e anexa a sessão ao contexto da requisição.
// Os handlers leem a sessão com SessionFromContext e passam-na aos serviços.
func NewAuthMiddleware(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			session, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extrai a sessão anexada pelo middleware de autenticação.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(domain.Session)
	return session, ok
}

// RequireRole só deixa passar sessões com um dos papéis indicados.
func RequireRole(roles ...domain.UserRole) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				writeError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		})
	}
}

// bearerToken lê o token do header Authorization. Pedidos EventSource não enviam headers,
// por isso o parâmetro access_token também é aceite.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		tok := strings.TrimSpace(header[len("Bearer "):])
		return tok, tok != ""
	}
	if header == "" {
		if tok := r.URL.Query().Get("access_token"); tok != "" {
			return tok, true
		}
	}
	return "", false
}

func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
