package dto

// DashboardSummaryDTO resposta de GET /api/dashboard.
// Contagens são cardinalidades de todo o histórico (não janeladas);
// vale sempre movement_count == entry_count + exit_count.
type DashboardSummaryDTO struct {
	ProductCount  int64 `json:"product_count"`
	SupplierCount int64 `json:"supplier_count"`
	MovementCount int64 `json:"movement_count"`
	EntryCount    int64 `json:"entry_count"`
	ExitCount     int64 `json:"exit_count"`

	// Produtos com stock < min_stock, ordenados por id (determinístico).
	Alerts []LowStockAlertDTO `json:"alerts"`

	// Widget de atividade: últimas 10 movimentações, mais recentes primeiro.
	// Não participa das contagens acima.
	RecentMovements []MovementResponse `json:"recent_movements"`
}

// LowStockAlertDTO alerta de estoque baixo de um produto.
type LowStockAlertDTO struct {
	ProductID    string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
}
