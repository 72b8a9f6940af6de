package entity

import "time"

// Tipos de movimiento.
const (
	MovementTypeEntry      = "entry"
	MovementTypeExit       = "exit"
	MovementTypeAssignment = "assignment"
)

// MovementRecord es un registro inmutable del log de movimientos de inventario.
// Solo se inserta dentro de la misma transacción que el cambio de estado que describe.
// Los campos vacíos / nil no aplican al tipo de movimiento.
type MovementRecord struct {
	ID                      string // UUIDv7: ordenable por creación
	Type                    string
	ProductID               string
	AssetUnitID             string
	Quantity                *int
	SourceID                string
	DestinationDepartmentID string
	DestinationBranchID     string
	AssignedUserID          string
	CreatedBy               string
	Notes                   string
	CreatedAt               time.Time
}
