package entity

import "time"

// Product representa um produto rastreado pelo estoque.
// Stock é o contador mantido: avança junto com o ledger de movimentações,
// sempre dentro da mesma transação. A soma das movimentações é o oráculo
// de consistência (ver stock.UseCase.CheckConsistency).
type Product struct {
	ID         string
	SKU        string // código único: letras maiúsculas, números e hífens
	Name       string
	MinStock   int64 // limiar de alerta de estoque baixo (>= 0)
	SupplierID string
	Stock      int64 // contador mantido; igual a Σ entradas - Σ saídas
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock indica se o produto está abaixo do estoque mínimo.
// Igualdade não dispara alerta.
func (p *Product) LowStock() bool {
	return p.Stock < p.MinStock
}
