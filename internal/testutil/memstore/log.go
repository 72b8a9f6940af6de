package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var (
	_ repository.MovementRepository     = (*movementRepo)(nil)
	_ repository.NotificationRepository = (*notificationRepo)(nil)
)

type movementRepo struct {
	s    *Store
	inTx bool
}

func (r *movementRepo) Append(_ context.Context, m *entity.MovementRecord) error {
	return r.s.with(r.inTx, func(d *data) error {
		if err := r.s.fault("movements.append"); err != nil {
			return err
		}
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.MovementRecord, error) {
	var out *entity.MovementRecord
	err := r.s.with(r.inTx, func(d *data) error {
		for _, m := range d.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List devuelve del más reciente al más antiguo (orden inverso de inserción).
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, error) {
	var out []*entity.MovementRecord
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.MovementRecord, 0, len(d.movements))
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.AssetUnitID != "" && m.AssetUnitID != f.AssetUnitID {
				continue
			}
			if f.UserID != "" && m.CreatedBy != f.UserID && m.AssignedUserID != f.UserID {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			items = append(items, m)
		}
		for _, m := range page(items, f.Limit, f.Offset) {
			m := m
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

// Movements devuelve una copia del log completo en orden de inserción (solo tests).
func (s *Store) Movements() []entity.MovementRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.MovementRecord(nil), s.d.movements...)
}

// Notifications devuelve una copia de todas las notificaciones (solo tests).
func (s *Store) Notifications() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Notification(nil), s.d.notifications...)
}

type notificationRepo struct {
	s    *Store
	inTx bool
}

func visible(n entity.Notification, rc repository.Recipient) bool {
	if n.UserID != "" {
		return n.UserID == rc.UserID
	}
	return n.ForAdmins && rc.IsAdmin
}

func (r *notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	return r.s.with(r.inTx, func(d *data) error {
		if err := r.s.fault("notifications.create"); err != nil {
			return err
		}
		d.notifications = append(d.notifications, *n)
		return nil
	})
}

func (r *notificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	var out *entity.Notification
	err := r.s.with(r.inTx, func(d *data) error {
		for _, n := range d.notifications {
			if n.ID == id {
				n := n
				out = &n
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *notificationRepo) ListFor(_ context.Context, rc repository.Recipient, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	err := r.s.with(r.inTx, func(d *data) error {
		items := make([]entity.Notification, 0)
		for i := len(d.notifications) - 1; i >= 0; i-- {
			n := d.notifications[i]
			if !visible(n, rc) || (unreadOnly && n.Read) {
				continue
			}
			items = append(items, n)
		}
		for _, n := range page(items, limit, offset) {
			n := n
			out = append(out, &n)
		}
		return nil
	})
	return out, err
}

func (r *notificationRepo) MarkAsRead(_ context.Context, id string, at time.Time) error {
	return r.s.with(r.inTx, func(d *data) error {
		for i := range d.notifications {
			if d.notifications[i].ID == id && !d.notifications[i].Read {
				d.notifications[i].Read = true
				d.notifications[i].ReadAt = &at
			}
		}
		return nil
	})
}

func (r *notificationRepo) MarkAllAsRead(_ context.Context, rc repository.Recipient, at time.Time) (int64, error) {
	var n int64
	err := r.s.with(r.inTx, func(d *data) error {
		for i := range d.notifications {
			if !d.notifications[i].Read && visible(d.notifications[i], rc) {
				d.notifications[i].Read = true
				d.notifications[i].ReadAt = &at
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *notificationRepo) CountUnread(_ context.Context, rc repository.Recipient) (int, error) {
	var n int
	err := r.s.with(r.inTx, func(d *data) error {
		for _, item := range d.notifications {
			if !item.Read && visible(item, rc) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *notificationRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.s.with(r.inTx, func(d *data) error {
		kept := d.notifications[:0]
		for _, item := range d.notifications {
			if item.Read && item.CreatedAt.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, item)
		}
		d.notifications = kept
		return nil
	})
	return n, err
}
