package repository

import (
	"context"
	"time"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// MovementFilter filtros de lectura del log de movimientos.
type MovementFilter struct {
	Type        string
	ProductID   string
	AssetUnitID string
	UserID      string // coincide con creador o usuario asignado
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository es el log de movimientos: solo inserción y lectura.
// No existen operaciones de actualización ni borrado.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.MovementRecord) error
	GetByID(ctx context.Context, id string) (*entity.MovementRecord, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementRecord, error)
}
