package domain

import "time"

// User representa um membro da equipa da Loja Social.
type User struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"nome"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"criadoEm"`
	UpdatedAt    time.Time `json:"atualizadoEm"`
}

// Public devolve uma cópia do utilizador sem o hash da password.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// UserRole é um tipo string para representar o papel do utilizador no sistema.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// UserRegistration representa o payload de entrada para registo de um membro da equipa.
type UserRegistration struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	DisplayName string   `json:"nome"`
	Role        UserRole `json:"role"`
}

// Session identifica o utilizador autenticado de uma operação. É resolvida na fronteira HTTP
// e passada explicitamente aos serviços que precisam do utilizador atual.
type Session struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"nome"`
	Role        UserRole  `json:"role"`
	TokenID     string    `json:"-"`
	ExpiresAt   time.Time `json:"-"`
}

// IsAdmin indica se a sessão tem papel de administração.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
