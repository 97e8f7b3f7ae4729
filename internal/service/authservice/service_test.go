package authservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/token"
	"lojasocial/internal/service/authservice"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockRevocationList struct{ mock.Mock }

func (m *MockRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

var admin = domain.Session{UserID: "a1", Email: "admin@loja.pt", Role: domain.RoleAdmin}

func newService() (*authservice.Service, *MockUserRepository, *MockRevocationList) {
	users := new(MockUserRepository)
	revoked := new(MockRevocationList)
	svc := authservice.NewService(users, token.NewService("segredo", time.Hour), revoked, logger.NewNop())
	return svc, users, revoked
}

func TestRegister_RequiresAdmin(t *testing.T) {
	svc, users, _ := newService()

	_, err := svc.Register(context.Background(), domain.Session{UserID: "u1", Role: domain.RoleStaff},
		domain.UserRegistration{Email: "rui@loja.pt", Password: "12345678"})

	var forbidden *apperror.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "rui@loja.pt").Return(domain.User{}, apperror.NewNotFoundError("x"))
	users.On("Save", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "rui@loja.pt" && u.Role == domain.RoleStaff &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segura123")) == nil
	})).Return(domain.User{ID: "u2", Email: "rui@loja.pt", PasswordHash: "hash", Role: domain.RoleStaff}, nil)

	user, err := svc.Register(ctx, admin, domain.UserRegistration{Email: " Rui@Loja.pt ", Password: "segura123", DisplayName: "Rui"})

	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	users.On("FindByEmail", ctx, "rui@loja.pt").Return(domain.User{ID: "u2"}, nil)

	_, err := svc.Register(ctx, admin, domain.UserRegistration{Email: "rui@loja.pt", Password: "segura123"})

	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), admin, domain.UserRegistration{Email: "rui@loja.pt", Password: "123"})

	assert.True(t, apperror.IsValidation(err))
}

func TestSignIn_AndAuthenticate(t *testing.T) {
	svc, users, revoked := newService()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("segura123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByEmail", ctx, "ana@loja.pt").
		Return(domain.User{ID: "u1", Email: "ana@loja.pt", DisplayName: "Ana", PasswordHash: string(hash), Role: domain.RoleStaff}, nil)
	revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil)

	tok, err := svc.SignIn(ctx, "ana@loja.pt", "segura123")
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "Ana", session.DisplayName)
	assert.NotEmpty(t, session.TokenID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("segura123"), bcrypt.MinCost)
	users.On("FindByEmail", ctx, "ana@loja.pt").Return(domain.User{ID: "u1", PasswordHash: string(hash)}, nil)

	_, err := svc.SignIn(ctx, "ana@loja.pt", "errada")

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestSignIn_UnknownEmailIsUnauthorized(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	users.On("FindByEmail", ctx, "x@loja.pt").Return(domain.User{}, apperror.NewNotFoundError("x"))

	_, err := svc.SignIn(ctx, "x@loja.pt", "qualquer")

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	svc, _, revoked := newService()
	ctx := context.Background()
	tok, err := token.NewService("segredo", time.Hour).GenerateToken(domain.User{ID: "u1"})
	require.NoError(t, err)
	revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil)

	_, err = svc.Authenticate(ctx, tok)

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestSignOut_RevokesUntilExpiry(t *testing.T) {
	svc, _, revoked := newService()
	ctx := context.Background()
	session := domain.Session{UserID: "u1", TokenID: "jti-1", ExpiresAt: time.Now().Add(30 * time.Minute)}
	revoked.On("Revoke", ctx, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 29*time.Minute && ttl <= 30*time.Minute
	})).Return(nil)

	require.NoError(t, svc.SignOut(ctx, session))
	revoked.AssertExpectations(t)
}
