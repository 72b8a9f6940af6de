package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// Consumable inserta un consumible con stock y mínimo dados.
func (s *Store) Consumable(t testing.TB, name string, stock, minimum int) *entity.Product {
	t.Helper()
	m := minimum
	return s.product(t, entity.Product{
		Name:         name,
		Model:        "std",
		Type:         entity.ProductTypeConsumable,
		CurrentStock: stock,
		MinimumStock: &m,
	})
}

// AssetProduct inserta un producto tipo asset sin unidades.
func (s *Store) AssetProduct(t testing.TB, name, model string) *entity.Product {
	t.Helper()
	return s.product(t, entity.Product{Name: name, Model: model, Brand: "Lenovo", Type: entity.ProductTypeAsset})
}

func (s *Store) product(t testing.TB, p entity.Product) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CategoryID = s.Category(t, "cat-"+p.ID[:8]).ID
	p.Active = true
	p.CreatedAt, p.UpdatedAt = now, now
	require.NoError(t, s.Repos().Products.Create(context.Background(), &p))
	return &p
}

// Category inserta una categoría activa.
func (s *Store) Category(t testing.TB, name string) *entity.Category {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.New().String(), Name: name, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Categories().Create(context.Background(), c))
	return c
}

// User inserta un usuario activo con el rol dado.
func (s *Store) User(t testing.TB, email, role string) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Repos().Users.Create(context.Background(), u))
	return u
}

// Department inserta un departamento.
func (s *Store) Department(t testing.TB, name string) *entity.Department {
	t.Helper()
	d := &entity.Department{ID: uuid.New().String(), Name: name, Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Repos().Departments.Create(context.Background(), d))
	return d
}

// Branch inserta una sede.
func (s *Store) Branch(t testing.TB, name string) *entity.Branch {
	t.Helper()
	b := &entity.Branch{ID: uuid.New().String(), Name: name, Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Repos().Branches.Create(context.Background(), b))
	return b
}

// Product relee un producto (falla el test si no existe).
func (s *Store) Product(t testing.TB, id string) *entity.Product {
	t.Helper()
	p, err := s.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// Asset relee una unidad (falla el test si no existe).
func (s *Store) Asset(t testing.TB, id string) *entity.AssetUnit {
	t.Helper()
	a, err := s.Repos().Assets.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}
