package repository

import "github.com/stocksync/stocksync-api/internal/domain/entity"

// ProductRepository define o porto de persistência para Product (DIP).
// Stock não é editável via Update: só avança pelo motor de movimentações.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloqueia a linha do produto (SELECT FOR UPDATE) para
	// serializar validação + commit de movimentações por produto.
	GetForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock grava o contador mantido. Usar apenas dentro da mesma
	// transação do append/delete no ledger.
	UpdateStock(productID string, stock int64) error
	// Delete retorna domain.ErrConflict se o produto ainda possui
	// movimentações (política: rejeitar, nunca cascatear).
	Delete(id string) error
	Count() (int64, error)
	// ListLowStock retorna produtos com stock < min_stock, ordenados por id
	// para resultado determinístico.
	ListLowStock() ([]*entity.Product, error)
}
