package usecase_test

import (
	"github.com/stocksync/stocksync-api/internal/domain"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
)

// Fakes em memória para os testes de CRUD. Sem mutex: os casos de uso de
// cadastro não são exercitados concorrentemente aqui.

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
	// referenced simula produtos apontando para o fornecedor (FK RESTRICT).
	referenced map[string]bool
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{
		suppliers:  make(map[string]*entity.Supplier),
		referenced: make(map[string]bool),
	}
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) GetByCNPJ(cnpj string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.CNPJ == cnpj {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	if r.referenced[id] {
		return domain.ErrConflict
	}
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) Count() (int64, error) {
	return int64(len(r.suppliers)), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	// withMovements simula movimentações no ledger do produto (FK RESTRICT).
	withMovements map[string]bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:      make(map[string]*entity.Product),
		withMovements: make(map[string]bool),
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	stored, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = stored.Stock // Update nunca toca o contador
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int64) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if r.withMovements[id] {
		return domain.ErrConflict
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Stock < p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
