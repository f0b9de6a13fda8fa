package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// OccurredAt é opcional; default é o momento do commit.
type RegisterMovementRequest struct {
	Kind       string     `json:"kind" validate:"required"`
	Quantity   int64      `json:"quantity" validate:"required,gt=0"`
	ProductID  string     `json:"product_id" validate:"required"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// MovementResponse saída de uma movimentação.
type MovementResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Quantity   int64     `json:"quantity"`
	ProductID  string    `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterMovementResponse resposta de criação: a movimentação mais o
// estoque atualizado do produto.
type RegisterMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	CurrentStock int64            `json:"current_stock"`
}

// ConsistencyEntryDTO resultado da auditoria fold-vs-contador de um produto.
type ConsistencyEntryDTO struct {
	ProductID  string `json:"product_id"`
	SKU        string `json:"sku"`
	Stock      int64  `json:"stock"`       // contador mantido
	LedgerSum  int64  `json:"ledger_sum"`  // Σ entradas - Σ saídas
	Consistent bool   `json:"consistent"`  // Stock == LedgerSum
}

// ConsistencyReportDTO resposta de GET /api/stock/consistency.
type ConsistencyReportDTO struct {
	Consistent bool                  `json:"consistent"`
	Products   []ConsistencyEntryDTO `json:"products"`
}
