package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementKindEntry = "entry" // entrada
	MovementKindExit  = "exit"  // saída
)

// ValidMovementKind informa se o tipo é um dos aceitos.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindEntry || kind == MovementKindExit
}

// StockMovement é um registro imutável do ledger de movimentações.
// Nunca é editado após criado; a única correção possível é a exclusão,
// que aplica o delta inverso no contador do produto.
type StockMovement struct {
	ID         string
	Kind       string
	Quantity   int64 // estritamente positivo
	ProductID  string
	OccurredAt time.Time // default: momento do commit; pode ser informada
	CreatedAt  time.Time
	CreatedBy  string
}

// Delta é o efeito da movimentação sobre o estoque: +Quantity para
// entrada, -Quantity para saída.
func (m *StockMovement) Delta() int64 {
	if m.Kind == MovementKindExit {
		return -m.Quantity
	}
	return m.Quantity
}
