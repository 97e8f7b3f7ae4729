package domain

import "time"

// Beneficiary representa um destinatário registado da Loja Social.
// O ID é atribuído pelo store na criação; atualizar e apagar exigem ID.
type Beneficiary struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"nome"`
	TaxID     string    `json:"nif"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"criadoEm"`
	UpdatedAt time.Time `json:"atualizadoEm"`
}

// Campaign representa uma campanha de recolha de donativos.
// As datas são textuais (AAAA-MM-DD) e DataFim não pode ser anterior a DataInicio.
type Campaign struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	StartDate   string    `json:"dataInicio"`
	EndDate     string    `json:"dataFim"`
	CreatedAt   time.Time `json:"criadoEm"`
	UpdatedAt   time.Time `json:"atualizadoEm"`
}
