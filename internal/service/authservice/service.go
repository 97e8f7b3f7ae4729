package authservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/token"
)

const minPasswordLength = 8

// UserRepository define o contrato que o Serviço de Autenticação espera da persistência de contas.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(user domain.User) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RevocationList guarda os tokens terminados por logout até expirarem.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Service é o fornecedor de identidade da equipa: contas, login, logout e sessão atual.
type Service struct {
	users   UserRepository
	tokens  TokenService
	revoked RevocationList
	now     func() time.Time
	logger  logger.Logger
}

// NewService cria uma nova instância do Service, injetando o Repositório.
func NewService(users UserRepository, tokens TokenService, revoked RevocationList, logger logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, revoked: revoked, now: time.Now, logger: logger}
}

// Register cria uma conta da equipa. Só um administrador pode registar contas.
func (s *Service) Register(ctx context.Context, session domain.Session, reg domain.UserRegistration) (domain.User, error) {
	if !session.IsAdmin() {
		return domain.User{}, apperror.NewForbiddenError("Só administradores podem registar utilizadores.")
	}
	return s.register(ctx, reg)
}

// EnsureAdmin cria a conta de administração inicial se o email ainda não existir.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}
	_, err = s.register(ctx, domain.UserRegistration{
		Email: email, Password: password, DisplayName: "Administrador", Role: domain.RoleAdmin,
	})
	return err
}

func (s *Service) register(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.DisplayName = strings.TrimSpace(reg.DisplayName)
	if reg.Email == "" || reg.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if !strings.Contains(reg.Email, "@") {
		return domain.User{}, apperror.NewValidationError("Email inválido.")
	}
	if len(reg.Password) < minPasswordLength {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", minPasswordLength))
	}
	switch reg.Role {
	case "":
		reg.Role = domain.RoleStaff
	case domain.RoleAdmin, domain.RoleStaff:
	default:
		return domain.User{}, apperror.NewValidationError("Papel desconhecido: " + string(reg.Role))
	}

	// O store de documentos não tem índices únicos; a unicidade do email é verificada aqui.
	if _, err := s.users.FindByEmail(ctx, reg.Email); err == nil {
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", reg.Email))
	} else if !apperror.IsNotFound(err) {
		return domain.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.users.Save(ctx, domain.User{
		Email:        reg.Email,
		DisplayName:  reg.DisplayName,
		PasswordHash: string(hashedPassword),
		Role:         reg.Role,
	})
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("Utilizador registado.", map[string]interface{}{"id": user.ID, "email": user.Email, "role": user.Role})
	return user.Public(), nil
}

// SignIn autentica um membro da equipa e devolve um JWT.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// NotFound passa a 401 para não revelar que contas existem.
		if apperror.IsNotFound(err) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Tentativa de login falhada.", map[string]interface{}{"email": user.Email})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokens.GenerateToken(user)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	s.logger.Info("Login efetuado.", map[string]interface{}{"id": user.ID})
	return tokenString, nil
}

// Authenticate valida o token e resolve a sessão. Tokens revogados são recusados.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (domain.Session, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return domain.Session{}, apperror.NewUnauthorizedError("Token inválido ou expirado.")
	}
	session := claims.Session()
	revoked, err := s.revoked.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return domain.Session{}, err
	}
	if revoked {
		return domain.Session{}, apperror.NewUnauthorizedError("Sessão terminada.")
	}
	return session, nil
}

// SignOut revoga o token da sessão até à sua expiração.
func (s *Service) SignOut(ctx context.Context, session domain.Session) error {
	if session.TokenID == "" {
		return apperror.NewUnauthorizedError("Sessão sem token.")
	}
	if err := s.revoked.Revoke(ctx, session.TokenID, session.ExpiresAt.Sub(s.now())); err != nil {
		return err
	}
	s.logger.Info("Logout efetuado.", map[string]interface{}{"id": session.UserID})
	return nil
}

// CurrentUser devolve a conta da sessão, sem o hash da senha.
func (s *Service) CurrentUser(ctx context.Context, session domain.Session) (domain.User, error) {
	user, err := s.users.FindByID(ctx, session.UserID)
	if apperror.IsNotFound(err) {
		return domain.User{}, apperror.NewUnauthorizedError("A conta da sessão já não existe.")
	}
	if err != nil {
		return domain.User{}, err
	}
	return user.Public(), nil
}
