package stock

import (
	"context"

	"github.com/stocksync/stocksync-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de DB, passando
// repositórios atados a essa tx. Garante que append/delete no ledger e a
// atualização do contador de estoque sejam uma unidade atômica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
