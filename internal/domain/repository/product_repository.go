package repository

import (
	"context"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	CategoryID string
	Type       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// CurrentStock solo se modifica con AdjustStock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByNameAndModel(ctx context.Context, name, model string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock actual y devuelve el nuevo valor.
	// Retorna domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock devuelve consumibles activos con stock en o bajo el mínimo.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
