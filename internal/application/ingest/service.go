package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"terradash/internal/domain/dataset"
)

// Rounding slack allowed between a stated line total and unit price times
// quantity before the row is flagged.
var arithmeticTolerance = decimal.NewFromFloat(0.1)

// Service validates and parses an uploaded CSV feed and replaces the
// stored collection with its rows. Either the whole file is accepted or
// nothing changes: header validation happens before any row is parsed and
// the repository swap is the last step.
type Service interface {
	Ingest(r io.Reader, kind dataset.Kind) (int, error)
}

type service struct {
	repo dataset.Repository
	log  *logrus.Logger
}

// NewService creates a new ingestion service.
func NewService(repo dataset.Repository, log *logrus.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Ingest(r io.Reader, kind dataset.Kind) (int, error) {
	if !kind.Valid() {
		return 0, dataset.ErrInvalidKind
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}

	reader := csv.NewReader(decodeReader(data))
	reader.Comma = ';'

	header, err := reader.Read()
	if err == io.EOF {
		return 0, &dataset.SchemaValidationError{Kind: kind, Missing: requiredColumns(kind)}
	}
	if err != nil {
		return 0, fmt.Errorf("parse CSV header: %w", err)
	}
	for i := range header {
		header[i] = trimmed(header[i])
	}

	if missing := missingColumns(header, requiredColumns(kind)); len(missing) > 0 {
		return 0, &dataset.SchemaValidationError{Kind: kind, Missing: missing}
	}
	index := columnIndex(header)

	if kind == dataset.KindOrders {
		return s.ingestOrders(reader, index)
	}
	return s.ingestCampaigns(reader, index)
}

func (s *service) ingestOrders(reader *csv.Reader, index map[string]int) (int, error) {
	var records []dataset.OrderRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed data lines (wrong field count, broken quoting)
			// are fatal for the whole batch.
			return 0, fmt.Errorf("parse orders CSV: %w", err)
		}

		rec := dataset.OrderRecord{
			OrderID:   field(row, index, "pedido_id"),
			Date:      field(row, index, "pedido_data"),
			Time:      field(row, index, "pedido_hora"),
			Status:    field(row, index, "pedido_status"),
			ShipState: field(row, index, "envio_estado"),
			Product:   field(row, index, "produto_nome"),
			UnitPrice: field(row, index, "produto_valor_unitario"),
			Quantity:  field(row, index, "produto_quantidade"),
			LineTotal: field(row, index, "produto_valor_total"),
		}
		s.checkArithmetic(rec)
		records = append(records, rec)
	}

	if err := s.repo.ReplaceOrders(records); err != nil {
		return 0, fmt.Errorf("save orders: %w", err)
	}
	s.log.WithFields(logrus.Fields{"kind": dataset.KindOrders, "rows": len(records)}).Info("dataset replaced")
	return len(records), nil
}

func (s *service) ingestCampaigns(reader *csv.Reader, index map[string]int) (int, error) {
	var records []dataset.CampaignRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("parse campaigns CSV: %w", err)
		}

		records = append(records, dataset.CampaignRecord{
			ReportStart:         field(row, index, "Início dos relatórios"),
			ReportEnd:           field(row, index, "Término dos relatórios"),
			Name:                field(row, index, "Nome da campanha"),
			Reach:               field(row, index, "Alcance"),
			Impressions:         field(row, index, "Impressões"),
			CPM:                 field(row, index, "CPM (custo por 1.000 impressões) (BRL)"),
			LinkClicks:          field(row, index, "Cliques no link"),
			CPC:                 field(row, index, "CPC (custo por clique no link) (BRL)"),
			PageViews:           field(row, index, "Visualizações da página de destino"),
			CostPerPageView:     field(row, index, "Custo por visualização da página de destino (BRL)"),
			CartAdds:            field(row, index, "Adições ao carrinho"),
			CostPerCartAdd:      field(row, index, "Custo por adição ao carrinho (BRL)"),
			CartConversionValue: field(row, index, "Valor de conversão de adições ao carrinho"),
			AmountSpent:         field(row, index, "Valor usado (BRL)"),
		})
	}

	if err := s.repo.ReplaceCampaigns(records); err != nil {
		return 0, fmt.Errorf("save campaigns: %w", err)
	}
	s.log.WithFields(logrus.Fields{"kind": dataset.KindAds, "rows": len(records)}).Info("dataset replaced")
	return len(records), nil
}

// checkArithmetic verifies that the stated line total matches unit price
// times quantity within the tolerance. Mismatches are an observability
// signal only and never block ingestion.
func (s *service) checkArithmetic(o dataset.OrderRecord) {
	unit := dataset.ParseCurrency(o.UnitPrice)
	qty := decimal.NewFromInt(int64(dataset.ParseCount(o.Quantity)))
	stated := dataset.ParseCurrency(o.LineTotal)

	expected := unit.Mul(qty)
	if expected.Sub(stated).Abs().GreaterThan(arithmeticTolerance) {
		s.log.WithFields(logrus.Fields{
			"pedido_id": o.OrderID,
			"expected":  expected.String(),
			"stated":    stated.String(),
		}).Warn("line total does not match unit price times quantity")
	}
}
