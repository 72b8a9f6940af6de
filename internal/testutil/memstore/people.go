package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*userRepo)(nil)
	_ repository.BranchRepository     = (*branchRepo)(nil)
	_ repository.DepartmentRepository = (*departmentRepo)(nil)
)

type userRepo struct {
	s    *Store
	inTx bool
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.with(r.inTx, func(d *data) error {
		for _, other := range d.users {
			if other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.with(r.inTx, func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.with(r.inTx, func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.s.with(r.inTx, func(d *data) error {
		if _, ok := d.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	return r.list(func(entity.User) bool { return true }, limit, offset)
}

func (r *userRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	return r.list(func(u entity.User) bool { return u.Role == role }, 0, 0)
}

func (r *userRepo) list(keep func(entity.User) bool, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.User, 0, len(d.users))
		for _, u := range d.users {
			if keep(u) {
				items = append(items, u)
			}
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
		for _, u := range page(items, limit, offset) {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

type branchRepo struct {
	s    *Store
	inTx bool
}

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	return r.s.with(r.inTx, func(d *data) error {
		d.branches[b.ID] = *b
		return nil
	})
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.s.with(r.inTx, func(d *data) error {
		if b, ok := d.branches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *branchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	var out []*entity.Branch
	err := r.s.with(r.inTx, func(d *data) error {
		for _, b := range d.branches {
			b := b
			out = append(out, &b)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

type departmentRepo struct {
	s    *Store
	inTx bool
}

func (r *departmentRepo) Create(_ context.Context, dep *entity.Department) error {
	return r.s.with(r.inTx, func(d *data) error {
		d.departments[dep.ID] = *dep
		return nil
	})
}

func (r *departmentRepo) GetByID(_ context.Context, id string) (*entity.Department, error) {
	var out *entity.Department
	err := r.s.with(r.inTx, func(d *data) error {
		if dep, ok := d.departments[id]; ok {
			out = &dep
		}
		return nil
	})
	return out, err
}

func (r *departmentRepo) List(_ context.Context, branchID string) ([]*entity.Department, error) {
	var out []*entity.Department
	err := r.s.with(r.inTx, func(d *data) error {
		for _, dep := range d.departments {
			if branchID != "" && dep.BranchID != branchID {
				continue
			}
			dep := dep
			out = append(out, &dep)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}
