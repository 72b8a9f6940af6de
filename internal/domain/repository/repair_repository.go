package repository

import (
	"context"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// RepairFilter filtros de listado de reparaciones.
type RepairFilter struct {
	Status      string
	AssetUnitID string
	Limit       int
	Offset      int
}

// RepairRepository define el puerto de persistencia de reparaciones.
// Las reparaciones no se borran.
type RepairRepository interface {
	Create(ctx context.Context, repair *entity.RepairRecord) error
	GetByID(ctx context.Context, id string) (*entity.RepairRecord, error)
	// GetForUpdate bloquea la reparación (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.RepairRecord, error)
	// Close guarda el cierre (estado final, retorno, descripción/motivo) de una reparación pendiente.
	Close(ctx context.Context, repair *entity.RepairRecord) error
	List(ctx context.Context, filter RepairFilter) ([]*entity.RepairRecord, error)
}
