package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del dashboard sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) AssetCountsByStatus(ctx context.Context) (map[string]int, error) {
	const query = `SELECT status, COUNT(*) FROM asset_units GROUP BY status`
	out, err := r.countBy(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.AssetCountsByStatus: %w", err)
	}
	return out, nil
}

// AssetParkValue el decimal se escanea con el códec de pgx-shopspring-decimal registrado en el pool.
func (r *AnalyticsRepo) AssetParkValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(purchase_cost), 0)
		FROM asset_units
		WHERE status <> 'retired'`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.AssetParkValue: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) PendingRepairs(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM repairs WHERE status = 'pending'`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.PendingRepairs: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) LowStockCount(ctx context.Context) (int, error) {
	const query = `
		SELECT COUNT(*) FROM products
		WHERE type = 'consumable' AND active AND minimum_stock IS NOT NULL AND current_stock <= minimum_stock`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.LowStockCount: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) MovementCountsByType(ctx context.Context, from, to time.Time) (map[string]int, error) {
	const query = `
		SELECT type, COUNT(*) FROM movements
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY type`
	out, err := r.countBy(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.MovementCountsByType: %w", err)
	}
	return out, nil
}

func (r *AnalyticsRepo) TopConsumed(ctx context.Context, from, to time.Time, limit int) ([]repository.ConsumptionResult, error) {
	const query = `
		SELECT p.id, p.name, p.model, SUM(m.quantity)::int AS qty
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = 'exit' AND m.created_at >= $1 AND m.created_at <= $2
		GROUP BY p.id, p.name, p.model
		ORDER BY qty DESC, p.name ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopConsumed: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ConsumptionResult, error) {
		var c repository.ConsumptionResult
		err := row.Scan(&c.ProductID, &c.Name, &c.Model, &c.Quantity)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("analytics.TopConsumed scan: %w", err)
	}
	return out, nil
}

func (r *AnalyticsRepo) countBy(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
