package repository

import "github.com/stocksync/stocksync-api/internal/domain/entity"

// SupplierRepository define o porto de persistência para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByCNPJ(cnpj string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// Delete retorna domain.ErrConflict se o fornecedor ainda é referenciado
	// por produtos (política: rejeitar, nunca cascatear).
	Delete(id string) error
	Count() (int64, error)
}
