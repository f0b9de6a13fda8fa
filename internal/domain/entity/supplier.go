package entity

import "time"

// Supplier representa um fornecedor de produtos.
// CNPJ é chave de negócio única; produtos referenciam o fornecedor via FK obrigatória.
type Supplier struct {
	ID        string
	Name      string
	Contact   string // telefone no formato (XX) XXXXX-XXXX
	CNPJ      string // formato XXXXXXXX/XXXX-XX, único
	CreatedAt time.Time
	UpdatedAt time.Time
}
