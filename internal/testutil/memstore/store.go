// Package memstore implementa todos los puertos de repository en memoria, con un TxRunner
// que serializa transacciones y restaura el estado previo si la función falla.
// Lo usan los tests de casos de uso y de handlers HTTP.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type data struct {
	products      map[string]entity.Product
	categories    map[string]entity.Category
	users         map[string]entity.User
	branches      map[string]entity.Branch
	departments   map[string]entity.Department
	assets        map[string]entity.AssetUnit
	repairs       map[string]entity.RepairRecord
	movements     []entity.MovementRecord
	notifications []entity.Notification
}

func newData() *data {
	return &data{
		products:    map[string]entity.Product{},
		categories:  map[string]entity.Category{},
		users:       map[string]entity.User{},
		branches:    map[string]entity.Branch{},
		departments: map[string]entity.Department{},
		assets:      map[string]entity.AssetUnit{},
		repairs:     map[string]entity.RepairRecord{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.branches {
		c.branches[k] = v
	}
	for k, v := range d.departments {
		c.departments[k] = v
	}
	for k, v := range d.assets {
		c.assets[k] = v
	}
	for k, v := range d.repairs {
		c.repairs[k] = v
	}
	c.movements = append([]entity.MovementRecord(nil), d.movements...)
	c.notifications = append([]entity.Notification(nil), d.notifications...)
	return c
}

// Store base de datos en memoria. El mutex hace las veces de bloqueo de filas:
// una transacción lo toma completo hasta terminar.
type Store struct {
	mu     sync.Mutex
	d      *data
	faults map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{d: newData(), faults: map[string]error{}}
}

// Fail hace que la operación op ("movements.append", "notifications.create", "products.get", "analytics.assets")
// retorne err hasta que se llame Fail(op, nil).
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Repos devuelve repositorios fuera de transacción: cada llamada toma el mutex.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// Categories devuelve el repositorio de categorías (no participa de transacciones).
func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepo{s: s}
}

// Run ejecuta fn con repositorios transaccionales. Si fn falla, se descarta todo lo escrito.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.d.clone()
	if err := fn(s.repos(true)); err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

func (s *Store) repos(inTx bool) repository.Repos {
	return repository.Repos{
		Products:      &productRepo{s: s, inTx: inTx},
		Assets:        &assetRepo{s: s, inTx: inTx},
		Movements:     &movementRepo{s: s, inTx: inTx},
		Repairs:       &repairRepo{s: s, inTx: inTx},
		Users:         &userRepo{s: s, inTx: inTx},
		Branches:      &branchRepo{s: s, inTx: inTx},
		Departments:   &departmentRepo{s: s, inTx: inTx},
		Notifications: &notificationRepo{s: s, inTx: inTx},
	}
}

func (s *Store) with(inTx bool, fn func(d *data) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyProduct(p entity.Product) entity.Product {
	if p.MinimumStock != nil {
		v := *p.MinimumStock
		p.MinimumStock = &v
	}
	return p
}
