// Package lifecycle contiene las reglas puras del ciclo de vida de inventario:
// cálculo de stock, transiciones de estado de activos y cierre de reparaciones.
// No conoce persistencia; los casos de uso aplican estas reglas dentro de una transacción.
package lifecycle

import (
	"fmt"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// ValidateQuantity exige cantidades estrictamente positivas en entradas y salidas.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return nil
}

// ApplyStockDelta devuelve el stock resultante o ErrInsufficientStock si quedaría negativo.
func ApplyStockDelta(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// IsBelowThreshold indica si un consumible quedó en o por debajo de su stock mínimo.
// Productos tipo asset o sin mínimo configurado nunca disparan alerta.
func IsBelowThreshold(p *entity.Product) bool {
	if p == nil || !p.IsConsumable() || p.MinimumStock == nil {
		return false
	}
	return p.CurrentStock <= *p.MinimumStock
}

// ValidateMinimumStock: el mínimo solo aplica a consumibles y no puede ser negativo.
func ValidateMinimumStock(productType string, minimum *int) error {
	if minimum == nil {
		return nil
	}
	if productType != entity.ProductTypeConsumable {
		return fmt.Errorf("%w: stock mínimo solo aplica a consumibles", domain.ErrInvalidInput)
	}
	if *minimum < 0 {
		return fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
	}
	return nil
}
