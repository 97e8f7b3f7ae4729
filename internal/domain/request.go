package domain

import (
	"encoding/json"
	"strings"
	"time"

	apperror "lojasocial/internal/errors"
)

// RequestStatus é o estado de um pedido de um beneficiário.
type RequestStatus string

// Ciclo de vida canónico de um pedido.
const (
	RequestNew        RequestStatus = "NOVO"
	RequestInProgress RequestStatus = "EM_ANDAMENTO"
	RequestDone       RequestStatus = "TERMINADO"
	RequestRefused    RequestStatus = "RECUSADO"
)

// Valores antigos encontrados em documentos; normalizados na leitura.
const (
	legacyRequestReady     = "PRONTO"
	legacyRequestDelivered = "ENTREGUE"
)

// requestTransitions lista, por estado de origem, os estados de destino permitidos.
// NOVO só sai por aceitação ou recusa; EM_ANDAMENTO só termina quando a entrega associada termina.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestNew:        {RequestInProgress, RequestRefused},
	RequestInProgress: {RequestDone},
}

// ParseRequestStatus valida s como estado de pedido, aceitando os valores antigos.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RequestNew):
		return RequestNew, nil
	case string(RequestInProgress), legacyRequestReady:
		return RequestInProgress, nil
	case string(RequestDone), legacyRequestDelivered:
		return RequestDone, nil
	case string(RequestRefused):
		return RequestRefused, nil
	}
	return "", apperror.NewValidationError("Estado de pedido desconhecido: " + s)
}

// HasLegacyValues indica se documentos antigos podem guardar s com outro valor.
func (s RequestStatus) HasLegacyValues() bool {
	return s == RequestInProgress || s == RequestDone
}

func (s *RequestStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseRequestStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal indica se o estado não admite mais transições.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// CanTransitionTo indica se a máquina de estados permite s -> to.
func (s RequestStatus) CanTransitionTo(to RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Request (Pedido) é o pedido de bens de um beneficiário, à espera de decisão da equipa.
type Request struct {
	ID            string        `json:"id,omitempty"`
	BeneficiaryID string        `json:"beneficiarioId"`
	Text          string        `json:"descricao"`
	Status        RequestStatus `json:"estado"`
	RefusalReason string        `json:"motivoRecusa,omitempty"`
	CreatedAt     time.Time     `json:"criadoEm"`
	UpdatedAt     time.Time     `json:"atualizadoEm"`
}

func (r *Request) transition(to RequestStatus) error {
	if !r.Status.CanTransitionTo(to) {
		return apperror.NewInvalidTransitionError(string(r.Status), string(to))
	}
	r.Status = to
	return nil
}

// Accept move o pedido de NOVO para EM_ANDAMENTO. Não cria a entrega.
func (r *Request) Accept() error {
	if r.Status != RequestNew {
		return apperror.NewInvalidTransitionError(string(r.Status), string(RequestInProgress))
	}
	return r.transition(RequestInProgress)
}

// Refuse move o pedido de NOVO para RECUSADO e guarda o motivo, que é obrigatório.
// Em caso de erro o pedido fica inalterado.
func (r *Request) Refuse(reason string) error {
	if r.Status != RequestNew {
		return apperror.NewInvalidTransitionError(string(r.Status), string(RequestRefused))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperror.NewValidationError("O motivo da recusa é obrigatório.")
	}
	if err := r.transition(RequestRefused); err != nil {
		return err
	}
	r.RefusalReason = reason
	return nil
}

// Complete move o pedido de EM_ANDAMENTO para TERMINADO quando a entrega associada termina.
func (r *Request) Complete() error {
	return r.transition(RequestDone)
}
