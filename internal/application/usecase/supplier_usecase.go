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

// Formatos aceitos: telefone (XX) XXXXX-XXXX e CNPJ XXXXXXXX/XXXX-XX.
var (
	phoneRe = regexp.MustCompile(`^\(\d{2}\)\s?\d{4,5}-?\d{4}$`)
	cnpjRe  = regexp.MustCompile(`^\d{8}/\d{4}-\d{2}$`)
)

// SupplierUseCase casos de uso CRUD para fornecedores (somente admin).
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create cria um fornecedor. CNPJ duplicado retorna ErrDuplicate.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if len(in.Name) < 3 || len(in.Name) > 100 {
		return nil, domain.ErrInvalidInput
	}
	if !phoneRe.MatchString(in.Contact) {
		return nil, domain.ErrInvalidInput
	}
	if !cnpjRe.MatchString(in.CNPJ) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCNPJ(in.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		CNPJ:      in.CNPJ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtém um fornecedor por ID. Devolve nil se não existir.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// List lista todos os fornecedores.
func (uc *SupplierUseCase) List() ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Update atualiza um fornecedor. CNPJ alterado para um já cadastrado retorna ErrDuplicate.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		if len(*in.Name) < 3 || len(*in.Name) > 100 {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = *in.Name
	}
	if in.Contact != nil {
		if !phoneRe.MatchString(*in.Contact) {
			return nil, domain.ErrInvalidInput
		}
		supplier.Contact = *in.Contact
	}
	if in.CNPJ != nil && *in.CNPJ != supplier.CNPJ {
		if !cnpjRe.MatchString(*in.CNPJ) {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByCNPJ(*in.CNPJ)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		supplier.CNPJ = *in.CNPJ
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete exclui um fornecedor. Se ainda referenciado por produtos, o
// repositório devolve ErrConflict (política: rejeitar, nunca cascatear).
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		CNPJ:      s.CNPJ,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
