package dto

import "time"

// CreateProductRequest entrada para criar um produto.
// Stock inicia em 0; só avança via movimentações.
type CreateProductRequest struct {
	SKU        string `json:"sku" validate:"required,min=3,max=50"`
	Name       string `json:"name" validate:"required,min=3,max=200"`
	MinStock   int64  `json:"min_stock" validate:"min=0"`
	SupplierID string `json:"supplier_id" validate:"required"`
}

// UpdateProductRequest entrada para atualizar um produto (sem Stock).
type UpdateProductRequest struct {
	SKU        *string `json:"sku" validate:"omitempty,min=3,max=50"`
	Name       *string `json:"name" validate:"omitempty,min=3,max=200"`
	MinStock   *int64  `json:"min_stock" validate:"omitempty,min=0"`
	SupplierID *string `json:"supplier_id"`
}

// ProductResponse saída de um produto com o estoque atual.
type ProductResponse struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	MinStock   int64     `json:"min_stock"`
	SupplierID string    `json:"supplier_id"`
	Stock      int64     `json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
