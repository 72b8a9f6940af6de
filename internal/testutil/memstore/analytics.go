package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*analyticsRepo)(nil)

// Analytics devuelve el repositorio de consultas del dashboard.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{s: s}
}

type analyticsRepo struct {
	s *Store
}

func (r *analyticsRepo) AssetCountsByStatus(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := r.s.with(false, func(d *data) error {
		if err := r.s.fault("analytics.assets"); err != nil {
			return err
		}
		for _, a := range d.assets {
			out[a.Status]++
		}
		return nil
	})
	return out, err
}

func (r *analyticsRepo) AssetParkValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.s.with(false, func(d *data) error {
		for _, a := range d.assets {
			if a.Status != entity.AssetStatusRetired && a.PurchaseCost != nil {
				total = total.Add(*a.PurchaseCost)
			}
		}
		return nil
	})
	return total, err
}

func (r *analyticsRepo) PendingRepairs(_ context.Context) (int, error) {
	n := 0
	err := r.s.with(false, func(d *data) error {
		for _, rep := range d.repairs {
			if rep.Status == entity.RepairStatusPending {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *analyticsRepo) LowStockCount(_ context.Context) (int, error) {
	n := 0
	err := r.s.with(false, func(d *data) error {
		for _, p := range d.products {
			if p.IsConsumable() && p.Active && p.MinimumStock != nil && p.CurrentStock <= *p.MinimumStock {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *analyticsRepo) MovementCountsByType(_ context.Context, from, to time.Time) (map[string]int, error) {
	out := map[string]int{}
	err := r.s.with(false, func(d *data) error {
		for _, m := range d.movements {
			if inRange(m.CreatedAt, from, to) {
				out[m.Type]++
			}
		}
		return nil
	})
	return out, err
}

func (r *analyticsRepo) TopConsumed(_ context.Context, from, to time.Time, limit int) ([]repository.ConsumptionResult, error) {
	var out []repository.ConsumptionResult
	err := r.s.with(false, func(d *data) error {
		byProduct := map[string]int{}
		for _, m := range d.movements {
			if m.Type != entity.MovementTypeExit || m.Quantity == nil || !inRange(m.CreatedAt, from, to) {
				continue
			}
			byProduct[m.ProductID] += *m.Quantity
		}
		for id, qty := range byProduct {
			p := d.products[id]
			out = append(out, repository.ConsumptionResult{ProductID: id, Name: p.Name, Model: p.Model, Quantity: qty})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity > out[j].Quantity
			}
			return out[i].Name < out[j].Name
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
