package analytics

import (
	"context"
	"time"

	"github.com/stocksync/stocksync-api/internal/application/dto"
)

// ReportGenerator gera a representação em PDF do relatório de estoque baixo.
// Implementado em infrastructure/pdf (Maroto).
type ReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, generatedAt time.Time, alerts []dto.LowStockAlertDTO) ([]byte, error)
}
