package requestservice

import (
	"context"
	"strings"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
)

// RequestRepository define o contrato que o Serviço de Pedidos espera da camada de Persistência.
type RequestRepository interface {
	Create(ctx context.Context, req domain.Request) (domain.Request, error)
	FindByID(ctx context.Context, id string) (domain.Request, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, req domain.Request) error
	SubscribeByStatus(ctx context.Context, status domain.RequestStatus, onSnapshot func([]domain.Request), onError func(error)) (docstore.Subscription, error)
}

// BeneficiaryLookup resolve o beneficiário de um pedido.
type BeneficiaryLookup interface {
	GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error)
}

// Service aplica a máquina de estados dos pedidos.
type Service struct {
	repo          RequestRepository
	beneficiaries BeneficiaryLookup
	logger        logger.Logger
}

func NewService(repo RequestRepository, beneficiaries BeneficiaryLookup, logger logger.Logger) *Service {
	return &Service{repo: repo, beneficiaries: beneficiaries, logger: logger}
}

// CreateRequest regista um pedido novo de um beneficiário existente. O estado inicial é sempre NOVO.
func (s *Service) CreateRequest(ctx context.Context, req domain.Request) (domain.Request, error) {
	req.BeneficiaryID = strings.TrimSpace(req.BeneficiaryID)
	req.Text = strings.TrimSpace(req.Text)
	if req.BeneficiaryID == "" {
		return domain.Request{}, apperror.NewValidationError("O ID do beneficiário é obrigatório.")
	}
	if req.Text == "" {
		return domain.Request{}, apperror.NewValidationError("A descrição do pedido é obrigatória.")
	}
	if _, err := s.beneficiaries.GetBeneficiaryByID(ctx, req.BeneficiaryID); err != nil {
		return domain.Request{}, err
	}

	req.Status = domain.RequestNew
	req.RefusalReason = ""
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return domain.Request{}, err
	}
	s.logger.Info("Pedido criado.", map[string]interface{}{"id": created.ID, "beneficiario_id": created.BeneficiaryID})
	return created, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (domain.Request, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Request{}, apperror.NewValidationError("O ID do pedido é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// ListRequests devolve os pedidos de um estado, mais recentes primeiro. status vazio devolve todos.
func (s *Service) ListRequests(ctx context.Context, status string) ([]domain.Request, error) {
	if strings.TrimSpace(status) == "" {
		return s.repo.ListAll(ctx)
	}
	parsed, err := domain.ParseRequestStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, parsed)
}

// Accept passa o pedido de NOVO a EM_ANDAMENTO. A entrega é criada à parte.
func (s *Service) Accept(ctx context.Context, session domain.Session, id string) (domain.Request, error) {
	return s.transition(ctx, session, id, "aceitar", func(r *domain.Request) error { return r.Accept() })
}

// Refuse passa o pedido de NOVO a RECUSADO com o motivo indicado.
func (s *Service) Refuse(ctx context.Context, session domain.Session, id, reason string) (domain.Request, error) {
	return s.transition(ctx, session, id, "recusar", func(r *domain.Request) error { return r.Refuse(reason) })
}

// Complete termina um pedido EM_ANDAMENTO quando a entrega associada termina.
func (s *Service) Complete(ctx context.Context, session domain.Session, id string) (domain.Request, error) {
	return s.transition(ctx, session, id, "terminar", func(r *domain.Request) error { return r.Complete() })
}

func (s *Service) transition(ctx context.Context, session domain.Session, id, action string, apply func(*domain.Request) error) (domain.Request, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return domain.Request{}, err
	}
	if err := apply(&req); err != nil {
		s.logger.Warn("Transição de pedido rejeitada.", map[string]interface{}{
			"id": id, "acao": action, "estado": req.Status, "utilizador": session.Email, "error": err.Error(),
		})
		return domain.Request{}, err
	}
	if err := s.repo.UpdateStatus(ctx, req); err != nil {
		return domain.Request{}, err
	}
	s.logger.Info("Estado do pedido atualizado.", map[string]interface{}{
		"id": id, "acao": action, "estado": req.Status, "utilizador": session.Email,
	})
	return req, nil
}

// Subscribe entrega a fila de pedidos de um estado em cada alteração, até Cancel.
func (s *Service) Subscribe(ctx context.Context, status string, onSnapshot func([]domain.Request), onError func(error)) (docstore.Subscription, error) {
	parsed, err := domain.ParseRequestStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.SubscribeByStatus(ctx, parsed, onSnapshot, onError)
}
