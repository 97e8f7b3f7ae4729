// Package report gera o relatório de stock em xlsx.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/service/stockservice"
)

const (
	productsSheet = "Produtos"
	lotsSheet     = "Lotes"
)

var (
	productHeaders = []string{"Produto", "Descrição", "Quantidade válida", "Quantidade expirada", "Próxima validade"}
	lotHeaders     = []string{"Produto", "Lote", "Quantidade", "Validade", "Data de entrada", "Campanha", "Estado"}
)

// ProductService devolve o catálogo com os totais recalculados.
type ProductService interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// StockService devolve os lotes e a data de referência da validade.
type StockService interface {
	AllLots(ctx context.Context) ([]domain.StockLot, error)
	Today() domain.Date
}

type Service struct {
	products ProductService
	stock    StockService
	logger   logger.Logger
}

func NewService(products ProductService, stock StockService, logger logger.Logger) *Service {
	return &Service{products: products, stock: stock, logger: logger}
}

// StockWorkbook monta o livro com uma folha por produto e uma folha por lote.
// O chamador fecha o ficheiro devolvido.
func (s *Service) StockWorkbook(ctx context.Context) (*excelize.File, string, error) {
	products, err := s.products.GetProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, "", err
	}
	lots, err := s.stock.AllLots(ctx)
	if err != nil {
		return nil, "", err
	}
	today := s.stock.Today()

	f, err := Build(products, lots, today)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("Relatório de stock gerado.", map[string]interface{}{"produtos": len(products), "lotes": len(lots)})
	return f, fmt.Sprintf("stock_%s.xlsx", today), nil
}

// Build escreve o relatório para a data today.
func Build(products []domain.Product, lots []domain.StockLot, today domain.Date) (*excelize.File, error) {
	byProduct := make(map[string][]domain.StockLot)
	for _, lot := range lots {
		byProduct[lot.ProductID] = append(byProduct[lot.ProductID], lot)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(lotsSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	writeHeaders(f, productsSheet, productHeaders, headerStyle)
	writeHeaders(f, lotsSheet, lotHeaders, headerStyle)

	names := make(map[string]string, len(products))
	for i, p := range products {
		names[p.ID] = p.Name
		productLots := byProduct[p.ID]
		if err := stockservice.SortFEFO(productLots); err != nil {
			f.Close()
			return nil, err
		}

		expired := 0
		nearest := ""
		for _, lot := range productLots {
			valid, err := stockservice.IsValid(lot, today)
			if err != nil {
				f.Close()
				return nil, err
			}
			if !valid {
				expired += lot.Quantity
				continue
			}
			// FEFO: o primeiro lote válido com validade é o que expira primeiro.
			if nearest == "" && lot.HasExpiry() {
				nearest = lot.ExpiryDate
			}
		}

		row := i + 2
		f.SetCellValue(productsSheet, fmt.Sprintf("A%d", row), p.Name)
		f.SetCellValue(productsSheet, fmt.Sprintf("B%d", row), p.Description)
		f.SetCellValue(productsSheet, fmt.Sprintf("C%d", row), p.TotalQuantity)
		f.SetCellValue(productsSheet, fmt.Sprintf("D%d", row), expired)
		f.SetCellValue(productsSheet, fmt.Sprintf("E%d", row), nearest)
	}

	if err := stockservice.SortFEFO(lots); err != nil {
		f.Close()
		return nil, err
	}
	for i, lot := range lots {
		state := "Válido"
		if valid, _ := stockservice.IsValid(lot, today); !valid {
			state = "Expirado"
		}
		row := i + 2
		f.SetCellValue(lotsSheet, fmt.Sprintf("A%d", row), names[lot.ProductID])
		f.SetCellValue(lotsSheet, fmt.Sprintf("B%d", row), lot.ID)
		f.SetCellValue(lotsSheet, fmt.Sprintf("C%d", row), lot.Quantity)
		f.SetCellValue(lotsSheet, fmt.Sprintf("D%d", row), lot.ExpiryDate)
		f.SetCellValue(lotsSheet, fmt.Sprintf("E%d", row), lot.EntryDate)
		f.SetCellValue(lotsSheet, fmt.Sprintf("F%d", row), lot.CampaignID)
		f.SetCellValue(lotsSheet, fmt.Sprintf("G%d", row), state)
	}

	f.SetColWidth(productsSheet, "A", "B", 28)
	f.SetColWidth(productsSheet, "C", "E", 18)
	f.SetColWidth(lotsSheet, "A", "B", 28)
	f.SetColWidth(lotsSheet, "C", "G", 16)
	return f, nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
