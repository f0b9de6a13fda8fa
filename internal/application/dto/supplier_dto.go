package dto

import "time"

// CreateSupplierRequest entrada para criar um fornecedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Contact string `json:"contact" validate:"required"` // (XX) XXXXX-XXXX
	CNPJ    string `json:"cnpj" validate:"required"`    // XXXXXXXX/XXXX-XX
}

// UpdateSupplierRequest entrada para atualizar um fornecedor (campos opcionais).
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=100"`
	Contact *string `json:"contact"`
	CNPJ    *string `json:"cnpj"`
}

// SupplierResponse saída de um fornecedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CNPJ      string    `json:"cnpj"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
