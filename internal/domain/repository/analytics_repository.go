package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionResult cantidad retirada de un consumible en un período.
type ConsumptionResult struct {
	ProductID string
	Name      string
	Model     string
	Quantity  int
}

// AnalyticsRepository consultas de solo lectura para el dashboard de inventario.
type AnalyticsRepository interface {
	// AssetCountsByStatus unidades agrupadas por estado.
	AssetCountsByStatus(ctx context.Context) (map[string]int, error)
	// AssetParkValue suma de purchase_cost de las unidades no dadas de baja.
	AssetParkValue(ctx context.Context) (decimal.Decimal, error)
	PendingRepairs(ctx context.Context) (int, error)
	LowStockCount(ctx context.Context) (int, error)
	// MovementCountsByType movimientos con created_at en [from, to].
	MovementCountsByType(ctx context.Context, from, to time.Time) (map[string]int, error)
	// TopConsumed consumibles con más unidades salidas en [from, to], de mayor a menor.
	TopConsumed(ctx context.Context, from, to time.Time, limit int) ([]ConsumptionResult, error)
}
