package dto

import "github.com/shopspring/decimal"

// ConsumptionDTO consumible en el ranking de salidas del mes.
type ConsumptionDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	Quantity  int    `json:"quantity"`
}

// DashboardSummaryDTO resumen del inventario de TI.
type DashboardSummaryDTO struct {
	AssetsByStatus   map[string]int   `json:"assets_by_status"`
	TotalAssets      int              `json:"total_assets"`
	AssetParkValue   decimal.Decimal  `json:"asset_park_value"`
	PendingRepairs   int              `json:"pending_repairs"`
	LowStockProducts int              `json:"low_stock_products"`
	MonthlyMovements map[string]int   `json:"monthly_movements"`
	TopConsumed      []ConsumptionDTO `json:"top_consumed"`
	DateLabel        string           `json:"date_label"` // ej: "Octubre 2026"
}
