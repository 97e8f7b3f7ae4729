package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"422"`
	Category string `json:"category" example:"LIMIT_REACHED"`
	Message  string `json:"message" example:"Stock: quantidade máxima disponível já atingida."`
}
