package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var (
	_ repository.AssetUnitRepository = (*assetRepo)(nil)
	_ repository.RepairRepository    = (*repairRepo)(nil)
)

type assetRepo struct {
	s    *Store
	inTx bool
}

func (r *assetRepo) Create(_ context.Context, u *entity.AssetUnit) error {
	return r.s.with(r.inTx, func(d *data) error {
		for _, other := range d.assets {
			if other.SerialNumber == u.SerialNumber {
				return domain.ErrConflict
			}
		}
		d.assets[u.ID] = *u
		return nil
	})
}

func (r *assetRepo) GetByID(_ context.Context, id string) (*entity.AssetUnit, error) {
	var out *entity.AssetUnit
	err := r.s.with(r.inTx, func(d *data) error {
		if u, ok := d.assets[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *assetRepo) GetForUpdate(ctx context.Context, id string) (*entity.AssetUnit, error) {
	return r.GetByID(ctx, id)
}

func (r *assetRepo) GetBySerial(_ context.Context, serial string) (*entity.AssetUnit, error) {
	var out *entity.AssetUnit
	err := r.s.with(r.inTx, func(d *data) error {
		for _, u := range d.assets {
			if u.SerialNumber == serial {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *assetRepo) UpdateState(_ context.Context, u *entity.AssetUnit) error {
	return r.s.with(r.inTx, func(d *data) error {
		cur, ok := d.assets[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = u.Status
		cur.AssignedUserID = u.AssignedUserID
		cur.EncryptionPass = u.EncryptionPass
		cur.Notes = u.Notes
		cur.UpdatedAt = u.UpdatedAt
		d.assets[u.ID] = cur
		return nil
	})
}

func (r *assetRepo) List(_ context.Context, f repository.AssetFilter) ([]*entity.AssetUnit, error) {
	var out []*entity.AssetUnit
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.AssetUnit, 0, len(d.assets))
		for _, u := range d.assets {
			if f.ProductID != "" && u.ProductID != f.ProductID {
				continue
			}
			if f.Status != "" && u.Status != f.Status {
				continue
			}
			if f.AssignedUserID != "" && u.AssignedUserID != f.AssignedUserID {
				continue
			}
			items = append(items, u)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].SerialNumber < items[j].SerialNumber })
		for _, u := range page(items, f.Limit, f.Offset) {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

type repairRepo struct {
	s    *Store
	inTx bool
}

func (r *repairRepo) Create(_ context.Context, rep *entity.RepairRecord) error {
	return r.s.with(r.inTx, func(d *data) error {
		d.repairs[rep.ID] = *rep
		return nil
	})
}

func (r *repairRepo) GetByID(_ context.Context, id string) (*entity.RepairRecord, error) {
	var out *entity.RepairRecord
	err := r.s.with(r.inTx, func(d *data) error {
		if rep, ok := d.repairs[id]; ok {
			out = &rep
		}
		return nil
	})
	return out, err
}

func (r *repairRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairRecord, error) {
	return r.GetByID(ctx, id)
}

// Close solo actúa sobre reparaciones pendientes, igual que el UPDATE ... WHERE status = 'pending'.
func (r *repairRepo) Close(_ context.Context, rep *entity.RepairRecord) error {
	return r.s.with(r.inTx, func(d *data) error {
		cur, ok := d.repairs[rep.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Status != entity.RepairStatusPending {
			return domain.ErrAlreadyReturned
		}
		d.repairs[rep.ID] = *rep
		return nil
	})
}

func (r *repairRepo) List(_ context.Context, f repository.RepairFilter) ([]*entity.RepairRecord, error) {
	var out []*entity.RepairRecord
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.RepairRecord, 0, len(d.repairs))
		for _, rep := range d.repairs {
			if f.Status != "" && rep.Status != f.Status {
				continue
			}
			if f.AssetUnitID != "" && rep.AssetUnitID != f.AssetUnitID {
				continue
			}
			items = append(items, rep)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].SentDate.After(items[j].SentDate) })
		for _, rep := range page(items, f.Limit, f.Offset) {
			rep := rep
			out = append(out, &rep)
		}
		return nil
	})
	return out, err
}
