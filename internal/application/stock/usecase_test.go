package stock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/stocksync-api/internal/application/dto"
	"github.com/stocksync/stocksync-api/internal/application/stock"
	"github.com/stocksync/stocksync-api/internal/domain"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
	"github.com/stocksync/stocksync-api/internal/domain/repository"
	"github.com/stocksync/stocksync-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate no fake é igual a GetByID: a serialização vem do fakeTxRunner,
// que segura um mutex global durante a transação inteira.
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, s int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = s
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.Stock < p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{}
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.From != nil && m.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.OccurredAt.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.movements {
		if m.ID == id {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.Delta()
		}
	}
	return sum, nil
}

func (r *fakeMovementRepo) CountByKind() (entries, exits int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.Kind == entity.MovementKindEntry {
			entries++
		} else {
			exits++
		}
	}
	return entries, exits, nil
}

func (r *fakeMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.movements)
	if limit > n {
		limit = n
	}
	out := make([]*entity.StockMovement, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *r.movements[i]
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTxRunner serializa transações com um mutex global, emulando o bloqueio
// de linha do PostgreSQL: validar + commitar nunca se intercalam.
type fakeTxRunner struct {
	mu       sync.Mutex
	movRepo  *fakeMovementRepo
	products *fakeProductRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(tx.movRepo, tx.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *stock.UseCase
	products *fakeProductRepo
	movRepo  *fakeMovementRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := newFakeProductRepo()
	movRepo := newFakeMovementRepo()
	tx := &fakeTxRunner{movRepo: movRepo, products: products}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return &fixture{
		uc:       stock.NewUseCase(tx, movRepo, products, log),
		products: products,
		movRepo:  movRepo,
	}
}

func (f *fixture) addProduct(t *testing.T, minStock, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:       uuid.New().String(),
		SKU:      "PRD-" + uuid.New().String()[:8],
		Name:     "Produto de teste",
		MinStock: minStock,
		Stock:    stock,
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func register(t *testing.T, f *fixture, kind string, qty int64, productID string) *dto.RegisterMovementResponse {
	t.Helper()
	out, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		Kind:      kind,
		Quantity:  qty,
		ProductID: productID,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_KindInvalido(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		Kind: "transfer", Quantity: 5, ProductID: p.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	sum, _ := f.movRepo.SumByProduct(p.ID)
	assert.Zero(t, sum, "nada deve ser gravado no ledger")
}

func TestRegisterMovement_QuantidadeInvalida(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 10)

	for _, qty := range []int64{0, -5} {
		_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
			Kind: entity.MovementKindEntry, Quantity: qty, ProductID: p.ID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	sum, _ := f.movRepo.SumByProduct(p.ID)
	assert.Zero(t, sum, "quantidade inválida não pode tocar o ledger")
}

func TestRegisterMovement_ProdutoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		Kind: entity.MovementKindEntry, Quantity: 5, ProductID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas, saídas e estoque insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaAvancaEstoque(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)

	out := register(t, f, entity.MovementKindEntry, 50, p.ID)
	assert.Equal(t, int64(50), out.CurrentStock)

	qty, err := f.uc.QuantityOf(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), qty)
}

func TestRegisterMovement_SaidaMaiorQueEstoque(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 10)

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		Kind: entity.MovementKindExit, Quantity: 11, ProductID: p.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualError(t, err, "estoque insuficiente. Estoque atual: 10",
		"a mensagem deve incluir o estoque atual")

	qty, _ := f.uc.QuantityOf(context.Background(), p.ID)
	assert.Equal(t, int64(10), qty, "rejeição não pode alterar o estoque")
}

func TestRegisterMovement_SaidaExataZeraEstoque(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 10)

	out := register(t, f, entity.MovementKindExit, 10, p.ID)
	assert.Equal(t, int64(0), out.CurrentStock, "saída igual ao estoque é válida")
}

func TestRegisterMovement_OccurredAtOpcional(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)
	past := time.Now().Add(-48 * time.Hour)

	out, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		Kind: entity.MovementKindEntry, Quantity: 5, ProductID: p.ID, OccurredAt: &past,
	})
	require.NoError(t, err)
	assert.True(t, out.Movement.OccurredAt.Equal(past))
}

// ──────────────────────────────────────────────────────────────────────────────
// Exclusão com reversão do contador
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteMovement_RevertEEstoque(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)

	register(t, f, entity.MovementKindEntry, 50, p.ID)
	out := register(t, f, entity.MovementKindExit, 20, p.ID)

	require.NoError(t, f.uc.DeleteMovement(context.Background(), out.Movement.ID))

	qty, _ := f.uc.QuantityOf(context.Background(), p.ID)
	assert.Equal(t, int64(50), qty, "excluir a saída devolve a quantidade ao estoque")
}

func TestDeleteMovement_EntradaJaConsumida(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)

	entry := register(t, f, entity.MovementKindEntry, 50, p.ID)
	register(t, f, entity.MovementKindExit, 45, p.ID)

	// Reverter a entrada deixaria o estoque em -45: rejeitar.
	err := f.uc.DeleteMovement(context.Background(), entry.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	qty, _ := f.uc.QuantityOf(context.Background(), p.ID)
	assert.Equal(t, int64(5), qty, "rejeição não pode alterar o estoque")

	mov, err := f.uc.GetMovement(context.Background(), entry.Movement.ID)
	require.NoError(t, err)
	assert.NotNil(t, mov, "a movimentação rejeitada permanece no ledger")
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.DeleteMovement(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário completo: threshold de alerta e ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompleto_AlertaDeEstoqueBaixo(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 10, 0)

	// Entrada de 50: acima do mínimo, sem alerta.
	register(t, f, entity.MovementKindEntry, 50, p.ID)
	low, err := f.products.ListLowStock()
	require.NoError(t, err)
	assert.Empty(t, low)

	// Saída de 45: estoque 5 < mínimo 10 -> alerta.
	register(t, f, entity.MovementKindExit, 45, p.ID)
	low, err = f.products.ListLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p.ID, low[0].ID)

	// Excluir a saída: estoque volta a 50, alerta some.
	movs, err := f.uc.ListMovements(context.Background(), repository.MovementFilter{Kind: entity.MovementKindExit})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	require.NoError(t, f.uc.DeleteMovement(context.Background(), movs[0].ID))

	low, err = f.products.ListLowStock()
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestAlerta_EstoqueIgualAoMinimoNaoAlerta(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 10, 0)
	register(t, f, entity.MovementKindEntry, 10, p.ID)

	low, err := f.products.ListLowStock()
	require.NoError(t, err)
	assert.Empty(t, low, "o limiar é estrito: stock == min_stock não alerta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consistência contador vs ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckConsistency_ContadorIgualAoFold(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)

	register(t, f, entity.MovementKindEntry, 30, p.ID)
	register(t, f, entity.MovementKindExit, 12, p.ID)
	register(t, f, entity.MovementKindEntry, 7, p.ID)

	report, err := f.uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	require.Len(t, report.Products, 1)
	assert.Equal(t, int64(25), report.Products[0].Stock)
	assert.Equal(t, int64(25), report.Products[0].LedgerSum)
}

func TestCheckConsistency_DetectaDivergencia(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)
	register(t, f, entity.MovementKindEntry, 30, p.ID)

	// Corrompe o contador por fora do motor.
	require.NoError(t, f.products.UpdateStock(p.ID, 99))

	report, err := f.uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Products, 1)
	assert.False(t, report.Products[0].Consistent)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concorrência
// ──────────────────────────────────────────────────────────────────────────────

// Duas saídas concorrentes de 30 contra um estoque de 40: exatamente uma deve
// passar. O bloqueio de linha (emulado aqui pelo mutex do fakeTxRunner)
// garante que a validação de suficiência veja sempre o estoque pós-commit.
func TestRegisterMovement_SaidasConcorrentes(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)
	register(t, f, entity.MovementKindEntry, 40, p.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
				Kind: entity.MovementKindExit, Quantity: 30, ProductID: p.ID,
			})
		}(i)
	}
	wg.Wait()

	var okCount, rejectedCount int
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejectedCount++
		}
	}
	assert.Equal(t, 1, okCount, "exatamente uma saída deve passar")
	assert.Equal(t, 1, rejectedCount)

	qty, _ := f.uc.QuantityOf(context.Background(), p.ID)
	assert.Equal(t, int64(10), qty)

	sum, _ := f.movRepo.SumByProduct(p.ID)
	assert.Equal(t, qty, sum, "contador e fold devem coincidir após concorrência")
}

// Mistura de entradas e saídas concorrentes: ao final, contador == fold e
// estoque nunca negativo.
func TestRegisterMovement_CargaConcorrenteMista(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, 0, 0)
	register(t, f, entity.MovementKindEntry, 100, p.ID)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		kind := entity.MovementKindEntry
		if i%2 == 0 {
			kind = entity.MovementKindExit
		}
		go func(kind string) {
			defer wg.Done()
			// Saídas podem falhar por insuficiência; só importa o invariante.
			_, _ = f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
				Kind: kind, Quantity: 15, ProductID: p.ID,
			})
		}(kind)
	}
	wg.Wait()

	qty, err := f.uc.QuantityOf(context.Background(), p.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, qty, int64(0), "estoque nunca fica negativo")

	sum, _ := f.movRepo.SumByProduct(p.ID)
	assert.Equal(t, qty, sum, "contador mantido deve coincidir com o fold do ledger")
}
