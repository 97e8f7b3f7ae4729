package auth

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
)

// AuthService define o contrato para login, logout e gestão de contas.
type AuthService interface {
	Register(ctx context.Context, session domain.Session, reg domain.UserRegistration) (domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, session domain.Session) error
	CurrentUser(ctx context.Context, session domain.Session) (domain.User, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse é a resposta de um login com sucesso.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler agrupa todos os métodos de Handler de autenticação.
type Handler struct {
	Service AuthService
	respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um membro da equipa e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais (email e senha)"
// @Success 200 {object} TokenResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}

	token, err := h.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	h.JSON(w, r, TokenResponse{Token: token}, nil, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /v1/logout.
// @Summary Termina a sessão atual
// @Tags auth
// @Success 204 "Sessão terminada"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Security ApiKeyAuth
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := respond.Session(r)
	if err == nil {
		err = h.Service.SignOut(r.Context(), session)
	}
	h.JSON(w, r, nil, err, http.StatusNoContent)
}

// MeHandler lida com a requisição GET /v1/me.
// @Summary Devolve o utilizador da sessão
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Security ApiKeyAuth
// @Router /me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session, err := respond.Session(r)
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	user, err := h.Service.CurrentUser(r.Context(), session)
	h.JSON(w, r, user, err, http.StatusOK)
}

// RegisterHandler lida com a requisição POST /v1/utilizadores.
// @Summary Regista um membro da equipa
// @Description Só administradores. A senha é guardada com bcrypt.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados da conta"
// @Success 201 {object} domain.User "Utilizador criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Sem permissão"
// @Failure 409 {object} domain.ErrorResponse "Email já registado"
// @Security ApiKeyAuth
// @Router /utilizadores [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	session, err := respond.Session(r)
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}
	var reg domain.UserRegistration
	if err := respond.Decode(r, &reg); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}

	user, err := h.Service.Register(r.Context(), session, reg)
	h.JSON(w, r, user, err, http.StatusCreated)
}
