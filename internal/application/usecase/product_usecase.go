package usecase

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/stocksync/stocksync-api/internal/application/dto"
	"github.com/stocksync/stocksync-api/internal/domain"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
	"github.com/stocksync/stocksync-api/internal/domain/repository"
)

// SKU: letras maiúsculas, números e hífens, 3 a 50 caracteres.
var skuRe = regexp.MustCompile(`^[A-Z0-9-]{3,50}$`)

// ProductUseCase casos de uso CRUD para produtos. Stock não é editável
// aqui: só avança pelo motor de movimentações.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers}
}

// Create cria um produto com estoque zero. SKU duplicado retorna
// ErrDuplicate; fornecedor inexistente retorna ErrNotFound.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !skuRe.MatchString(in.SKU) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Name) < 3 || len(in.Name) > 200 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		MinStock:   in.MinStock,
		SupplierID: in.SupplierID,
		Stock:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtém um produto por ID com o estoque atual. Devolve nil se não existir.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista todos os produtos, cada um com o estoque atual.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update atualiza um produto (sem Stock). SKU alterado para um existente
// retorna ErrDuplicate; fornecedor alterado para inexistente, ErrNotFound.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		if !skuRe.MatchString(*in.SKU) {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		if len(*in.Name) < 3 || len(*in.Name) > 200 {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.SupplierID != nil {
		supplier, err := uc.suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		product.SupplierID = *in.SupplierID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete exclui um produto. Se ainda possui movimentações no ledger, o
// repositório devolve ErrConflict (rejeitar, nunca orfanar o histórico).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		MinStock:   p.MinStock,
		SupplierID: p.SupplierID,
		Stock:      p.Stock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
