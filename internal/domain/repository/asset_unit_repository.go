package repository

import (
	"context"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// AssetFilter filtros del registro de activos.
type AssetFilter struct {
	ProductID      string
	Status         string
	AssignedUserID string
	Limit          int
	Offset         int
}

// AssetUnitRepository define el puerto de persistencia del registro de activos.
type AssetUnitRepository interface {
	// Create retorna domain.ErrConflict si el número de serie ya existe.
	Create(ctx context.Context, unit *entity.AssetUnit) error
	GetByID(ctx context.Context, id string) (*entity.AssetUnit, error)
	// GetForUpdate bloquea la fila de la unidad (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.AssetUnit, error)
	GetBySerial(ctx context.Context, serial string) (*entity.AssetUnit, error)
	// UpdateState persiste status, usuario asignado, clave sellada y notas.
	UpdateState(ctx context.Context, unit *entity.AssetUnit) error
	List(ctx context.Context, filter AssetFilter) ([]*entity.AssetUnit, error)
}
