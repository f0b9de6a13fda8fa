// Package analytics contém os casos de uso do dashboard de estoque:
// contagens, alertas de estoque baixo e o relatório em PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/stocksync/stocksync-api/internal/application/dto"
	"github.com/stocksync/stocksync-api/internal/domain/entity"
	"github.com/stocksync/stocksync-api/internal/domain/repository"
)

const recentMovementsLimit = 10 // tamanho do widget de atividade recente

// DashboardUseCase monta o resumo do dashboard.
//
// Semântica das contagens: todo o histórico (não janelado); vale sempre
// movement_count == entry_count + exit_count. O widget de movimentações
// recentes é apenas presentacional e não altera as contagens.
type DashboardUseCase struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	movements repository.StockMovementRepository
	reports   ReportGenerator
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	reports ReportGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, suppliers: suppliers, movements: movements, reports: reports}
}

// GetSummary constrói o DashboardSummaryDTO.
//
// Quatro consultas em paralelo:
//  1. contagens de produtos e fornecedores
//  2. contagens de movimentações por tipo
//  3. produtos abaixo do estoque mínimo (ordem por id, determinística)
//  4. últimas movimentações
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		products  int64
		suppliers int64
		err       error
	}
	type movCountsResult struct {
		entries int64
		exits   int64
		err     error
	}
	type alertsResult struct {
		products []*entity.Product
		err      error
	}
	type recentResult struct {
		movements []*entity.StockMovement
		err       error
	}

	countsCh := make(chan countsResult, 1)
	movCh := make(chan movCountsResult, 1)
	alertsCh := make(chan alertsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		products, err := uc.products.Count()
		if err != nil {
			countsCh <- countsResult{err: err}
			return
		}
		suppliers, err := uc.suppliers.Count()
		countsCh <- countsResult{products: products, suppliers: suppliers, err: err}
	}()
	go func() {
		entries, exits, err := uc.movements.CountByKind()
		movCh <- movCountsResult{entries: entries, exits: exits, err: err}
	}()
	go func() {
		low, err := uc.products.ListLowStock()
		alertsCh <- alertsResult{products: low, err: err}
	}()
	go func() {
		recent, err := uc.movements.ListRecent(recentMovementsLimit)
		recentCh <- recentResult{movements: recent, err: err}
	}()

	counts := <-countsCh
	movs := <-movCh
	alerts := <-alertsCh
	recent := <-recentCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: contagens: %w", counts.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimentações: %w", movs.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimentações recentes: %w", recent.err)
	}

	summary := &dto.DashboardSummaryDTO{
		ProductCount:    counts.products,
		SupplierCount:   counts.suppliers,
		MovementCount:   movs.entries + movs.exits,
		EntryCount:      movs.entries,
		ExitCount:       movs.exits,
		Alerts:          make([]dto.LowStockAlertDTO, 0, len(alerts.products)),
		RecentMovements: make([]dto.MovementResponse, 0, len(recent.movements)),
	}
	for _, p := range alerts.products {
		summary.Alerts = append(summary.Alerts, dto.LowStockAlertDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			CurrentStock: p.Stock,
			MinStock:     p.MinStock,
		})
	}
	for _, m := range recent.movements {
		summary.RecentMovements = append(summary.RecentMovements, dto.MovementResponse{
			ID:         m.ID,
			Kind:       m.Kind,
			Quantity:   m.Quantity,
			ProductID:  m.ProductID,
			OccurredAt: m.OccurredAt,
			CreatedAt:  m.CreatedAt,
		})
	}
	return summary, nil
}

// GetLowStockReport gera o PDF do relatório de estoque baixo.
func (uc *DashboardUseCase) GetLowStockReport(ctx context.Context) ([]byte, error) {
	low, err := uc.products.ListLowStock()
	if err != nil {
		return nil, fmt.Errorf("relatório: alertas: %w", err)
	}
	alerts := make([]dto.LowStockAlertDTO, 0, len(low))
	for _, p := range low {
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			CurrentStock: p.Stock,
			MinStock:     p.MinStock,
		})
	}
	return uc.reports.GenerateLowStockReport(ctx, time.Now(), alerts)
}
