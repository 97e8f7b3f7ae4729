package userrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/repository/docrepo"
)

// Collection é o nome da coleção de utilizadores no store.
const Collection = "utilizadores"

// UserRepository guarda as contas da equipa.
type UserRepository struct {
	docs   *docrepo.Collection[domain.User]
	logger logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o store.
func NewUserRepository(store docstore.Store, log logger.Logger) *UserRepository {
	return &UserRepository{
		docs:   docrepo.New(store, Collection, func(u *domain.User, id string) { u.ID = id }, log),
		logger: log,
	}
}

// Save insere um novo utilizador. O email é guardado em minúsculas.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	user.ID = ""
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	return r.docs.Create(ctx, user)
}

// FindByEmail busca um utilizador pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.logger.Debug("Iniciando FindByEmail de usuário no repositório.", map[string]interface{}{"email_attempt": email})

	email = strings.ToLower(strings.TrimSpace(email))
	users, err := r.docs.Find(ctx, docstore.Query{Field: "email", Value: email, Limit: 1})
	if err != nil {
		return domain.User{}, err
	}
	if len(users) == 0 {
		r.logger.Info("Usuário não encontrado por email.", map[string]interface{}{"email": email})
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	return users[0], nil
}

// FindByID busca um utilizador pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	user, err := r.docs.Get(ctx, id)
	if apperror.IsNotFound(err) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID '%s' não encontrado", id))
	}
	return user, err
}
