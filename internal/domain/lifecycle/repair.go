package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// ReturnOutcome es el resultado de cerrar una reparación.
type ReturnOutcome struct {
	RepairStatus string
	UnitStatus   string
	StockDelta   int
}

// ResolveReturn decide estados finales según si el equipo fue reparado.
func ResolveReturn(wasRepaired bool) ReturnOutcome {
	if wasRepaired {
		return ReturnOutcome{
			RepairStatus: entity.RepairStatusCompleted,
			UnitStatus:   entity.AssetStatusAvailable,
			StockDelta:   1,
		}
	}
	return ReturnOutcome{
		RepairStatus: entity.RepairStatusDisposed,
		UnitStatus:   entity.AssetStatusRetired,
	}
}

// ValidateReturn exige descripción de la reparación o motivo de baja según el caso.
func ValidateReturn(wasRepaired bool, repairDescription, disposalReason string) error {
	if wasRepaired && strings.TrimSpace(repairDescription) == "" {
		return fmt.Errorf("%w: repairDescription es obligatoria si el equipo fue reparado", domain.ErrInvalidInput)
	}
	if !wasRepaired && strings.TrimSpace(disposalReason) == "" {
		return fmt.Errorf("%w: disposalReason es obligatorio si el equipo no fue reparado", domain.ErrInvalidInput)
	}
	return nil
}

// CanClose: una reparación se cierra una sola vez.
func CanClose(r *entity.RepairRecord) error {
	if r.Status != entity.RepairStatusPending {
		return domain.ErrAlreadyReturned
	}
	return nil
}

// ValidateReturnDate rechaza retornos anteriores al envío.
func ValidateReturnDate(sent, returned time.Time) error {
	if returned.Before(sent) {
		return fmt.Errorf("%w: la fecha de retorno es anterior a la de envío", domain.ErrInvalidInput)
	}
	return nil
}
