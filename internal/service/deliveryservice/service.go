package deliveryservice

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// DraftRepository guarda as entregas em construção.
type DraftRepository interface {
	Save(ctx context.Context, draft domain.DeliveryDraft) error
	Get(ctx context.Context, id string) (domain.DeliveryDraft, error)
	Delete(ctx context.Context, id string) error
}

// DeliveryRepository define o contrato que o Serviço de Entregas espera da camada de Persistência.
type DeliveryRepository interface {
	Create(ctx context.Context, d domain.Delivery) (domain.Delivery, error)
	FindByID(ctx context.Context, id string) (domain.Delivery, error)
	List(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error)
	Update(ctx context.Context, d domain.Delivery) error
	Delete(ctx context.Context, id string) error
}

// ProductCatalog lista os produtos que podem entrar numa entrega.
type ProductCatalog interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// StockService é a parte do Serviço de Stock usada pelas entregas.
type StockService interface {
	ConsumableByProduct(ctx context.Context) (map[string][]domain.StockLot, error)
	ValidateConsumption(ctx context.Context, byLot map[string]int) error
	ApplyConsumption(ctx context.Context, byLot map[string]int) error
}

// RequestService resolve e termina o pedido de origem de uma entrega.
type RequestService interface {
	GetRequest(ctx context.Context, id string) (domain.Request, error)
	Complete(ctx context.Context, session domain.Session, id string) (domain.Request, error)
}

// BeneficiaryLookup resolve o beneficiário de uma entrega.
type BeneficiaryLookup interface {
	GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error)
}

// Metrics recebe os eventos de entrega relevantes para observabilidade.
type Metrics interface {
	DeliverySaved()
	CapacityRejected(kind string)
}

type nopMetrics struct{}

func (nopMetrics) DeliverySaved()          {}
func (nopMetrics) CapacityRejected(string) {}

// NewDraftInput indica a origem de um rascunho: um pedido aceite ou uma entrega manual.
type NewDraftInput struct {
	RequestID     string `json:"pedidoId"`
	BeneficiaryID string `json:"beneficiarioId"`
}

// DraftView é o rascunho acompanhado dos produtos que ainda lhe podem ser juntados.
type DraftView struct {
	Draft      domain.DeliveryDraft `json:"rascunho"`
	Candidates []Candidate          `json:"candidatos"`
}

// Service orquestra a construção, gravação e conclusão de entregas.
type Service struct {
	drafts        DraftRepository
	deliveries    DeliveryRepository
	products      ProductCatalog
	stock         StockService
	requests      RequestService
	beneficiaries BeneficiaryLookup
	metrics       Metrics
	now           func() time.Time
	logger        logger.Logger
}

func NewService(
	drafts DraftRepository,
	deliveries DeliveryRepository,
	products ProductCatalog,
	stock StockService,
	requests RequestService,
	beneficiaries BeneficiaryLookup,
	logger logger.Logger,
) *Service {
	return &Service{
		drafts:        drafts,
		deliveries:    deliveries,
		products:      products,
		stock:         stock,
		requests:      requests,
		beneficiaries: beneficiaries,
		metrics:       nopMetrics{},
		now:           time.Now,
		logger:        logger,
	}
}

// WithMetrics liga as métricas de entregas.
func (s *Service) WithMetrics(m Metrics) *Service {
	if m != nil {
		s.metrics = m
	}
	return s
}

// WithClock substitui o relógio. Usado nos testes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// NewDraft abre uma entrega em construção. A partir de um pedido, o pedido tem de estar
// EM_ANDAMENTO e o beneficiário fica bloqueado.
func (s *Service) NewDraft(ctx context.Context, session domain.Session, in NewDraftInput) (DraftView, error) {
	draft := domain.DeliveryDraft{
		ID:    uuid.NewString(),
		Owner: session.UserID,
		Delivery: domain.Delivery{
			Status: domain.DeliveryInProgress,
			Items:  []domain.LineItem{},
		},
	}

	if requestID := strings.TrimSpace(in.RequestID); requestID != "" {
		req, err := s.requests.GetRequest(ctx, requestID)
		if err != nil {
			return DraftView{}, err
		}
		if req.Status != domain.RequestInProgress {
			return DraftView{}, apperror.NewConflictError("Só é possível criar a entrega de um pedido em andamento.")
		}
		draft.Delivery.RequestID = req.ID
		draft.Delivery.BeneficiaryID = req.BeneficiaryID
		draft.BeneficiaryLocked = true
	} else if beneficiaryID := strings.TrimSpace(in.BeneficiaryID); beneficiaryID != "" {
		if err := s.checkBeneficiary(ctx, beneficiaryID); err != nil {
			return DraftView{}, err
		}
		draft.Delivery.BeneficiaryID = beneficiaryID
	}

	b, err := s.builder(ctx, draft)
	if err != nil {
		return DraftView{}, err
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return DraftView{}, err
	}
	s.logger.Info("Rascunho de entrega criado.", map[string]interface{}{
		"id": draft.ID, "pedido_id": draft.Delivery.RequestID, "utilizador": session.Email,
	})
	return DraftView{Draft: draft, Candidates: b.Candidates()}, nil
}

// GetDraft devolve o rascunho com os candidatos recalculados sobre o stock atual.
func (s *Service) GetDraft(ctx context.Context, session domain.Session, id string) (DraftView, error) {
	draft, err := s.loadDraft(ctx, session, id)
	if err != nil {
		return DraftView{}, err
	}
	b, err := s.builder(ctx, draft)
	if err != nil {
		return DraftView{}, err
	}
	return DraftView{Draft: draft, Candidates: b.Candidates()}, nil
}

// SetBeneficiary escolhe o beneficiário de um rascunho manual. O beneficiário tem de estar ativo.
func (s *Service) SetBeneficiary(ctx context.Context, session domain.Session, id, beneficiaryID string) (DraftView, error) {
	beneficiaryID = strings.TrimSpace(beneficiaryID)
	if beneficiaryID == "" {
		return DraftView{}, apperror.NewValidationError("O ID do beneficiário é obrigatório.")
	}
	return s.edit(ctx, session, id, func(b *Builder) error {
		if err := b.SetBeneficiary(beneficiaryID); err != nil {
			return err
		}
		return s.checkBeneficiary(ctx, beneficiaryID)
	})
}

func (s *Service) AddItem(ctx context.Context, session domain.Session, id, productID string) (DraftView, error) {
	return s.edit(ctx, session, id, func(b *Builder) error { return b.AddItem(productID) })
}

func (s *Service) IncreaseQuantity(ctx context.Context, session domain.Session, id, productID string) (DraftView, error) {
	return s.edit(ctx, session, id, func(b *Builder) error { return b.IncreaseQuantity(productID) })
}

func (s *Service) DecreaseQuantity(ctx context.Context, session domain.Session, id, productID string) (DraftView, error) {
	return s.edit(ctx, session, id, func(b *Builder) error { return b.DecreaseQuantity(productID) })
}

func (s *Service) RemoveItem(ctx context.Context, session domain.Session, id, productID string) (DraftView, error) {
	return s.edit(ctx, session, id, func(b *Builder) error {
		b.RemoveItem(productID)
		return nil
	})
}

// DiscardDraft abandona o rascunho sem tocar no stock. Um rascunho cuja entrega já foi
// criada não pode ser abandonado: só falta concluir o desconto de stock.
func (s *Service) DiscardDraft(ctx context.Context, session domain.Session, id string) error {
	draft, err := s.loadDraft(ctx, session, id)
	if err != nil {
		return err
	}
	if draft.IsSaved() {
		return errSavedDraft(draft)
	}
	return s.drafts.Delete(ctx, id)
}

// SaveDraft grava a entrega: valida o rascunho e o stock atual, cria a entrega EM_ANDAMENTO
// e só depois desconta os lotes consumidos, um lote de cada vez.
//
// O progresso fica no rascunho. Se o desconto falhar a meio, voltar a gravar o mesmo
// rascunho retoma nos lotes em falta sem criar outra entrega.
func (s *Service) SaveDraft(ctx context.Context, session domain.Session, id string) (domain.Delivery, error) {
	draft, err := s.loadDraft(ctx, session, id)
	if err != nil {
		return domain.Delivery{}, err
	}
	if draft.IsSaved() {
		return s.resumeSave(ctx, session, draft)
	}
	b, err := s.builder(ctx, draft)
	if err != nil {
		return domain.Delivery{}, err
	}
	if err := b.Validate(); err != nil {
		return domain.Delivery{}, err
	}

	delivery := b.Delivery()
	if delivery.RequestID != "" {
		req, err := s.requests.GetRequest(ctx, delivery.RequestID)
		if err != nil {
			return domain.Delivery{}, err
		}
		if req.Status != domain.RequestInProgress {
			return domain.Delivery{}, apperror.NewConflictError("O pedido de origem já não está em andamento.")
		}
	} else if err := s.checkBeneficiary(ctx, delivery.BeneficiaryID); err != nil {
		return domain.Delivery{}, err
	}

	byLot := delivery.CommittedByLot()
	if err := s.stock.ValidateConsumption(ctx, byLot); err != nil {
		s.recordCapacity(err)
		return domain.Delivery{}, err
	}

	delivery.Status = domain.DeliveryInProgress
	delivery.CreatedBy = session.Email
	delivery.CreatedAt = s.now().UTC()
	created, err := s.deliveries.Create(ctx, delivery)
	if err != nil {
		return domain.Delivery{}, err
	}

	draft.Delivery = delivery
	draft.SavedDeliveryID = created.ID
	draft.ConsumedLots = nil
	draft.UpdatedAt = delivery.CreatedAt
	if err := s.drafts.Save(ctx, draft); err != nil {
		// Sem o rascunho marcado, uma nova gravação criaria outra entrega.
		if derr := s.deliveries.Delete(ctx, created.ID); derr != nil {
			s.logger.Error("Falha ao anular entrega sem rascunho gravado.", derr)
		}
		return domain.Delivery{}, err
	}

	if err := s.consume(ctx, &draft); err != nil {
		return domain.Delivery{}, err
	}
	s.finishSave(ctx, session, draft, created)
	return created, nil
}

// resumeSave conclui o desconto de stock de uma entrega já criada.
func (s *Service) resumeSave(ctx context.Context, session domain.Session, draft domain.DeliveryDraft) (domain.Delivery, error) {
	created, err := s.deliveries.FindByID(ctx, draft.SavedDeliveryID)
	if err != nil {
		return domain.Delivery{}, err
	}
	s.logger.Info("A retomar o desconto de stock da entrega.", map[string]interface{}{
		"id": created.ID, "lotes_descontados": len(draft.ConsumedLots), "utilizador": session.Email,
	})
	if err := s.consume(ctx, &draft); err != nil {
		return domain.Delivery{}, err
	}
	s.finishSave(ctx, session, draft, created)
	return created, nil
}

// consume desconta os lotes ainda não descontados e regista cada um no rascunho.
func (s *Service) consume(ctx context.Context, draft *domain.DeliveryDraft) error {
	done := make(map[string]bool, len(draft.ConsumedLots))
	for _, lotID := range draft.ConsumedLots {
		done[lotID] = true
	}
	byLot := draft.Delivery.CommittedByLot()
	lotIDs := make([]string, 0, len(byLot))
	for lotID := range byLot {
		lotIDs = append(lotIDs, lotID)
	}
	sort.Strings(lotIDs)

	for _, lotID := range lotIDs {
		if done[lotID] {
			continue
		}
		if err := s.stock.ApplyConsumption(ctx, map[string]int{lotID: byLot[lotID]}); err != nil {
			s.logger.Error("Entrega gravada mas o desconto de stock falhou.", err)
			return apperror.NewInternalError("Falha ao descontar o stock da entrega "+draft.SavedDeliveryID+". Volte a gravar o rascunho para concluir.", err)
		}
		draft.ConsumedLots = append(draft.ConsumedLots, lotID)
		if err := s.drafts.Save(ctx, *draft); err != nil {
			s.logger.Error("Falha ao registar o lote descontado no rascunho.", err)
			return apperror.NewInternalError("Falha ao registar o desconto do lote "+lotID+".", err)
		}
	}
	return nil
}

func (s *Service) finishSave(ctx context.Context, session domain.Session, draft domain.DeliveryDraft, created domain.Delivery) {
	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		s.logger.Warn("Falha ao apagar rascunho gravado.", map[string]interface{}{"id": draft.ID, "error": err.Error()})
	}
	s.metrics.DeliverySaved()
	s.logger.Info("Entrega gravada.", map[string]interface{}{
		"id": created.ID, "pedido_id": created.RequestID, "itens": len(created.Items), "utilizador": session.Email,
	})
}

func (s *Service) GetDelivery(ctx context.Context, id string) (domain.Delivery, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Delivery{}, apperror.NewValidationError("O ID da entrega é obrigatório.")
	}
	return s.deliveries.FindByID(ctx, id)
}

// ListDeliveries lista as entregas de um estado, mais recentes primeiro. status vazio devolve todas.
func (s *Service) ListDeliveries(ctx context.Context, status string) ([]domain.Delivery, error) {
	var parsed domain.DeliveryStatus
	if strings.TrimSpace(status) != "" {
		var err error
		if parsed, err = domain.ParseDeliveryStatus(strings.TrimSpace(status)); err != nil {
			return nil, err
		}
	}
	return s.deliveries.List(ctx, parsed)
}

// FinishDelivery termina a entrega e, se veio de um pedido, termina também o pedido.
func (s *Service) FinishDelivery(ctx context.Context, session domain.Session, id string) (domain.Delivery, error) {
	delivery, err := s.GetDelivery(ctx, id)
	if err != nil {
		return domain.Delivery{}, err
	}
	if err := delivery.Finish(s.now().UTC()); err != nil {
		return domain.Delivery{}, err
	}
	if err := s.deliveries.Update(ctx, delivery); err != nil {
		return domain.Delivery{}, err
	}

	if delivery.RequestID != "" {
		if _, err := s.requests.Complete(ctx, session, delivery.RequestID); err != nil {
			var transition *apperror.InvalidTransitionError
			if !errors.As(err, &transition) {
				return domain.Delivery{}, err
			}
			s.logger.Warn("Pedido da entrega não estava em andamento.", map[string]interface{}{
				"entrega_id": id, "pedido_id": delivery.RequestID, "error": err.Error(),
			})
		}
	}

	s.logger.Info("Entrega terminada.", map[string]interface{}{"id": id, "utilizador": session.Email})
	return delivery, nil
}

// edit aplica op ao rascunho e só o grava se op tiver sucesso.
func (s *Service) edit(ctx context.Context, session domain.Session, id string, op func(*Builder) error) (DraftView, error) {
	draft, err := s.loadDraft(ctx, session, id)
	if err != nil {
		return DraftView{}, err
	}
	if draft.IsSaved() {
		return DraftView{}, errSavedDraft(draft)
	}
	b, err := s.builder(ctx, draft)
	if err != nil {
		return DraftView{}, err
	}
	if err := op(b); err != nil {
		s.recordCapacity(err)
		return DraftView{}, err
	}
	draft.Delivery = b.Delivery()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return DraftView{}, err
	}
	return DraftView{Draft: draft, Candidates: b.Candidates()}, nil
}

func (s *Service) loadDraft(ctx context.Context, session domain.Session, id string) (domain.DeliveryDraft, error) {
	if strings.TrimSpace(id) == "" {
		return domain.DeliveryDraft{}, apperror.NewValidationError("O ID do rascunho é obrigatório.")
	}
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return domain.DeliveryDraft{}, err
	}
	if draft.Owner != session.UserID && !session.IsAdmin() {
		return domain.DeliveryDraft{}, apperror.NewForbiddenError("O rascunho pertence a outro utilizador.")
	}
	return draft, nil
}

func errSavedDraft(draft domain.DeliveryDraft) error {
	return apperror.NewConflictError("A entrega " + draft.SavedDeliveryID + " já foi criada a partir deste rascunho. Volte a gravar para concluir o desconto de stock.")
}

func (s *Service) builder(ctx context.Context, draft domain.DeliveryDraft) (*Builder, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	lots, err := s.stock.ConsumableByProduct(ctx)
	if err != nil {
		return nil, err
	}
	return NewBuilder(draft.Delivery, draft.BeneficiaryLocked, products, lots), nil
}

func (s *Service) checkBeneficiary(ctx context.Context, id string) error {
	b, err := s.beneficiaries.GetBeneficiaryByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.Active {
		return apperror.NewValidationError("O beneficiário " + b.Name + " não está ativo.")
	}
	return nil
}

func (s *Service) recordCapacity(err error) {
	var ce *apperror.CapacityError
	if errors.As(err, &ce) {
		s.metrics.CapacityRejected(ce.Kind)
	}
}
