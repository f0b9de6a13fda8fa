package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocksync/stocksync-api/internal/application/dto"
	"github.com/stocksync/stocksync-api/internal/domain"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
	"github.com/stocksync/stocksync-api/internal/domain/repository"
	"github.com/stocksync/stocksync-api/pkg/logger"
)

// UseCase registra e exclui movimentações de estoque de forma transacional,
// com bloqueio de linha (SELECT FOR UPDATE) no produto e Commit/Rollback.
//
// Estratégia de estoque: contador mantido em products.stock, avançado na
// mesma transação do ledger. A soma do ledger (fold) fica como oráculo de
// auditoria em CheckConsistency.
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	products repository.ProductRepository
	log      *logger.Logger
}

// NewUseCase constrói o caso de uso do motor de estoque.
func NewUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, products: products, log: log}
}

// RegisterMovement valida e registra uma movimentação (entrada ou saída).
//
// Regras de validação, em ordem, com curto-circuito:
//  1. kind ∈ {entry, exit}            -> ErrInvalidKind
//  2. quantity > 0                    -> ErrInvalidQuantity
//  3. produto existe                  -> ErrNotFound
//  4. saída: estoque >= quantidade    -> InsufficientStockError{Current}
//
// A validação é somente leitura; nada é gravado antes do commit. A regra 4
// é reavaliada dentro da transação sobre a linha bloqueada, então duas
// saídas concorrentes nunca passam ambas com uma leitura obsoleta.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidKind
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Pré-checagem fora da tx: responde 404 cedo sem abrir transação.
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		Kind:       in.Kind,
		Quantity:   in.Quantity,
		ProductID:  in.ProductID,
		OccurredAt: occurredAt,
		CreatedAt:  now,
		CreatedBy:  userID,
	}

	var currentStock int64
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloqueia a linha do produto; serializa validar+commit por produto.
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if mov.Kind == entity.MovementKindExit && locked.Stock < mov.Quantity {
			return &domain.InsufficientStockError{Current: locked.Stock}
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		currentStock = locked.Stock + mov.Delta()
		return productRepo.UpdateStock(locked.ID, currentStock)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("kind", mov.Kind).
		Int64("quantity", mov.Quantity).
		Int64("current_stock", currentStock).
		Msg("movimentação registrada")

	return &dto.RegisterMovementResponse{
		Movement:     toMovementResponse(mov),
		CurrentStock: currentStock,
	}, nil
}

// DeleteMovement exclui uma movimentação e reverte seu efeito no contador
// mantido (delta inverso), na mesma transação. Se a reversão deixaria o
// estoque negativo (excluir uma entrada já consumida), rejeita com
// ErrConflict em vez de quebrar o invariante estoque >= 0.
func (uc *UseCase) DeleteMovement(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		locked, err := productRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock := locked.Stock - mov.Delta()
		if newStock < 0 {
			return domain.ErrConflict
		}
		if err := movRepo.Delete(mov.ID); err != nil {
			return err
		}
		return productRepo.UpdateStock(locked.ID, newStock)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("movement_id", id).Msg("movimentação excluída, estoque revertido")
	return nil
}

// GetMovement obtém uma movimentação por ID.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, nil
	}
	out := toMovementResponse(mov)
	return &out, nil
}

// ListMovements lista movimentações com filtros, da mais recente para a
// mais antiga. Sem filtros devolve o histórico completo.
func (uc *UseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return items, nil
}

// QuantityOf devolve o estoque atual de um produto (contador mantido).
func (uc *UseCase) QuantityOf(ctx context.Context, productID string) (int64, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.Stock, nil
}

// CheckConsistency audita todos os produtos comparando o contador mantido
// com o fold sobre o ledger. Divergência é um bug interno de consistência:
// registrado como erro, nunca corrigido silenciosamente.
func (uc *UseCase) CheckConsistency(ctx context.Context) (*dto.ConsistencyReportDTO, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	report := &dto.ConsistencyReportDTO{Consistent: true}
	for _, p := range products {
		sum, err := uc.movRepo.SumByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		ok := sum == p.Stock
		if !ok {
			report.Consistent = false
			uc.log.Error().
				Str("product_id", p.ID).
				Str("sku", p.SKU).
				Int64("stock", p.Stock).
				Int64("ledger_sum", sum).
				Msg("contador de estoque divergente do ledger")
		}
		report.Products = append(report.Products, dto.ConsistencyEntryDTO{
			ProductID:  p.ID,
			SKU:        p.SKU,
			Stock:      p.Stock,
			LedgerSum:  sum,
			Consistent: ok,
		})
	}
	return report, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		ProductID:  m.ProductID,
		OccurredAt: m.OccurredAt,
		CreatedAt:  m.CreatedAt,
	}
}
