package lifecycle

import (
	"fmt"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// CanAssign: solo una unidad disponible puede asignarse.
func CanAssign(status string) error {
	if status != entity.AssetStatusAvailable {
		return fmt.Errorf("%w: el activo no está disponible (estado %s)", domain.ErrInvalidState, status)
	}
	return nil
}

// CanSendToRepair: solo una unidad disponible puede enviarse a reparación.
// Una unidad asignada debe desasignarse antes.
func CanSendToRepair(status string) error {
	if status != entity.AssetStatusAvailable {
		return fmt.Errorf("%w: el activo no está disponible para enviar a reparación (estado %s)", domain.ErrInvalidState, status)
	}
	return nil
}

// AvailabilityDelta es el ajuste de stock del producto cuando una unidad cambia de estado.
// El stock de un producto tipo asset cuenta unidades disponibles.
func AvailabilityDelta(from, to string) int {
	wasAvailable := from == entity.AssetStatusAvailable
	isAvailable := to == entity.AssetStatusAvailable
	switch {
	case !wasAvailable && isAvailable:
		return 1
	case wasAvailable && !isAvailable:
		return -1
	}
	return 0
}

// OverrideStatus valida un cambio administrativo directo de estado.
// No se puede forzar desde ni hacia in_repair: esas transiciones son de Repairs.
func OverrideStatus(from, to string) error {
	switch to {
	case entity.AssetStatusAvailable, entity.AssetStatusAssigned,
		entity.AssetStatusMaintenance, entity.AssetStatusRetired:
	default:
		return fmt.Errorf("%w: estado %q no permitido", domain.ErrInvalidInput, to)
	}
	if from == entity.AssetStatusInRepair {
		return fmt.Errorf("%w: el activo está en reparación, registre el retorno", domain.ErrInvalidState)
	}
	return nil
}
