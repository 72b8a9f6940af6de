package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
)

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.with(r.inTx, func(d *data) error {
		for _, other := range d.products {
			if other.Name == p.Name && other.Model == p.Model {
				return domain.ErrConflict
			}
		}
		d.products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.inTx, func(d *data) error {
		if err := r.s.fault("products.get"); err != nil {
			return err
		}
		if p, ok := d.products[id]; ok {
			c := copyProduct(p)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByNameAndModel(_ context.Context, name, model string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(r.inTx, func(d *data) error {
		for _, p := range d.products {
			if p.Name == name && p.Model == model {
				c := copyProduct(p)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update no toca CurrentStock.
func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.with(r.inTx, func(d *data) error {
		cur, ok := d.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, other := range d.products {
			if other.ID != p.ID && other.Name == p.Name && other.Model == p.Model {
				return domain.ErrConflict
			}
		}
		next := copyProduct(*p)
		next.CurrentStock = cur.CurrentStock
		d.products[p.ID] = next
		return nil
	})
}

func (r *productRepo) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	var out int
	err := r.s.with(r.inTx, func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		next, err := lifecycle.ApplyStockDelta(p.CurrentStock, delta)
		if err != nil {
			return err
		}
		p.CurrentStock = next
		d.products[id] = p
		out = next
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.Product, 0, len(d.products))
		for _, p := range d.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.Type != "" && p.Type != f.Type {
				continue
			}
			if f.ActiveOnly && !p.Active {
				continue
			}
			items = append(items, copyProduct(p))
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		for _, p := range page(items, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *productRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.with(r.inTx, func(d *data) error {
		for _, p := range d.products {
			p := copyProduct(p)
			if p.Active && lifecycle.IsBelowThreshold(&p) {
				out = append(out, &p)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.with(false, func(d *data) error {
		for _, other := range d.categories {
			if other.Name == c.Name {
				return domain.ErrConflict
			}
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.with(false, func(d *data) error {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.with(false, func(d *data) error {
		for _, c := range d.categories {
			if c.Name == name {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.s.with(false, func(d *data) error {
		if _, ok := d.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.with(false, func(d *data) error {
		items := make([]entity.Category, 0, len(d.categories))
		for _, c := range d.categories {
			items = append(items, c)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		for _, c := range page(items, limit, offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}
