package repository

import (
	"time"

	"github.com/stocksync/stocksync-api/internal/domain/entity"
)

// MovementFilter filtros para listagem de movimentações.
// From/To são limites inclusivos sobre occurred_at.
type MovementFilter struct {
	Kind      string
	ProductID string
	From      *time.Time
	To        *time.Time
}

// StockMovementRepository define o porto do ledger de movimentações.
// Create é a única mutação além de Delete; registros nunca são editados.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List retorna movimentações do mais recente para o mais antigo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	Delete(id string) error
	// SumByProduct calcula o estoque por fold sobre o ledger:
	// Σ entradas - Σ saídas. É o oráculo de consistência do contador mantido.
	SumByProduct(productID string) (int64, error)
	CountByKind() (entries, exits int64, err error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
