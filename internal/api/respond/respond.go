// Package respond padroniza as respostas JSON e o tratamento de erros dos handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/middleware"
)

// Responder guarda o logger usado por todas as respostas de um handler.
type Responder struct {
	Logger logger.Logger
}

// JSON processa erros de serviço e envia respostas padronizadas ao cliente.
// Sem erro, data é codificado com successStatus; com erro, o AppError define estado e corpo.
func (rs Responder) JSON(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
			rs.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		rs.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		rs.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Decode lê o corpo JSON do pedido.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// Session devolve a sessão anexada pelo middleware de autenticação.
func Session(r *http.Request) (domain.Session, error) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return domain.Session{}, apperror.NewUnauthorizedError("Autorização necessária.")
	}
	return session, nil
}
