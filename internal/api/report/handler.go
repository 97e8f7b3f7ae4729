package report

import (
	"context"
	"net/http"

	"github.com/xuri/excelize/v2"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/pkg/logger"
)

// ReportService gera os relatórios descarregáveis.
type ReportService interface {
	StockWorkbook(ctx context.Context) (*excelize.File, string, error)
}

type Handler struct {
	Service ReportService
	respond.Responder
}

func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// StockReportHandler lida com a requisição GET /v1/relatorios/stock.xlsx.
// @Summary Relatório de stock em Excel
// @Description Folha "Produtos" com totais válidos e expirados; folha "Lotes" com todos os lotes.
// @Tags relatorios
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /relatorios/stock.xlsx [get]
func (h *Handler) StockReportHandler(w http.ResponseWriter, r *http.Request) {
	f, filename, err := h.Service.StockWorkbook(r.Context())
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := f.Write(w); err != nil {
		h.Logger.Error("Falha ao escrever o relatório xlsx", err)
	}
}
