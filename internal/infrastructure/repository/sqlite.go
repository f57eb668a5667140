package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"terradash/internal/domain/dataset"
	"terradash/internal/infrastructure/database"
)

// orderRow mirrors the orders table. Columns keep the raw locale strings
// exactly as uploaded; normalization happens on read, not in storage.
type orderRow struct {
	ID        uint   `gorm:"primaryKey"`
	PedidoID  string `gorm:"column:pedido_id;not null"`
	Data      string `gorm:"column:pedido_data;not null"`
	Hora      string `gorm:"column:pedido_hora;not null"`
	Status    string `gorm:"column:pedido_status;not null"`
	Estado    string `gorm:"column:envio_estado;not null"`
	Nome      string `gorm:"column:produto_nome;not null"`
	Unitario  string `gorm:"column:produto_valor_unitario;not null"`
	Qtd       string `gorm:"column:produto_quantidade;not null"`
	Total     string `gorm:"column:produto_valor_total;not null"`
	CreatedAt time.Time
}

func (orderRow) TableName() string { return "orders" }

// campaignRow mirrors the campaigns table.
type campaignRow struct {
	ID             uint   `gorm:"primaryKey"`
	Inicio         string `gorm:"column:inicio_relatorios;not null"`
	Termino        string `gorm:"column:termino_relatorios;not null"`
	Nome           string `gorm:"column:nome_campanha;not null"`
	Alcance        string `gorm:"column:alcance;not null"`
	Impressoes     string `gorm:"column:impressoes;not null"`
	CPM            string `gorm:"column:cpm_brl;not null"`
	Cliques        string `gorm:"column:cliques_link;not null"`
	CPC            string `gorm:"column:cpc_brl;not null"`
	Visualizacoes  string `gorm:"column:visualizacoes_pagina;not null"`
	CustoVis       string `gorm:"column:custo_visualizacao_brl;not null"`
	Adicoes        string `gorm:"column:adicoes_carrinho;not null"`
	CustoAdicao    string `gorm:"column:custo_adicao_carrinho_brl;not null"`
	ValorConversao string `gorm:"column:valor_conversao_adicoes;not null"`
	ValorUsado     string `gorm:"column:valor_usado_brl;not null"`
	CreatedAt      time.Time
}

func (campaignRow) TableName() string { return "campaigns" }

// SQLiteRepository stores both collections in a relational database via
// the ORM. A replace runs in one transaction: delete everything, insert
// the new rows.
type SQLiteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository migrates the schema and returns the repository.
func NewSQLiteRepository(db *database.DB) (*SQLiteRepository, error) {
	if err := db.AutoMigrate(&orderRow{}, &campaignRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLiteRepository{db: db.DB}, nil
}

func (r *SQLiteRepository) Orders() ([]dataset.OrderRecord, error) {
	var rows []orderRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	out := make([]dataset.OrderRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, dataset.OrderRecord{
			OrderID:   row.PedidoID,
			Date:      row.Data,
			Time:      row.Hora,
			Status:    row.Status,
			ShipState: row.Estado,
			Product:   row.Nome,
			UnitPrice: row.Unitario,
			Quantity:  row.Qtd,
			LineTotal: row.Total,
		})
	}
	return out, nil
}

func (r *SQLiteRepository) Campaigns() ([]dataset.CampaignRecord, error) {
	var rows []campaignRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	out := make([]dataset.CampaignRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, dataset.CampaignRecord{
			ReportStart:         row.Inicio,
			ReportEnd:           row.Termino,
			Name:                row.Nome,
			Reach:               row.Alcance,
			Impressions:         row.Impressoes,
			CPM:                 row.CPM,
			LinkClicks:          row.Cliques,
			CPC:                 row.CPC,
			PageViews:           row.Visualizacoes,
			CostPerPageView:     row.CustoVis,
			CartAdds:            row.Adicoes,
			CostPerCartAdd:      row.CustoAdicao,
			CartConversionValue: row.ValorConversao,
			AmountSpent:         row.ValorUsado,
		})
	}
	return out, nil
}

func (r *SQLiteRepository) ReplaceOrders(orders []dataset.OrderRecord) error {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			PedidoID: o.OrderID,
			Data:     o.Date,
			Hora:     o.Time,
			Status:   o.Status,
			Estado:   o.ShipState,
			Nome:     o.Product,
			Unitario: o.UnitPrice,
			Qtd:      o.Quantity,
			Total:    o.LineTotal,
		})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&orderRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return fmt.Errorf("replace orders: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceCampaigns(campaigns []dataset.CampaignRecord) error {
	rows := make([]campaignRow, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, campaignRow{
			Inicio:         c.ReportStart,
			Termino:        c.ReportEnd,
			Nome:           c.Name,
			Alcance:        c.Reach,
			Impressoes:     c.Impressions,
			CPM:            c.CPM,
			Cliques:        c.LinkClicks,
			CPC:            c.CPC,
			Visualizacoes:  c.PageViews,
			CustoVis:       c.CostPerPageView,
			Adicoes:        c.CartAdds,
			CustoAdicao:    c.CostPerCartAdd,
			ValorConversao: c.CartConversionValue,
			ValorUsado:     c.AmountSpent,
		})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&campaignRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return fmt.Errorf("replace campaigns: %w", err)
	}
	return nil
}
