package entity

import "time"

// Tipos de producto.
const (
	ProductTypeAsset      = "asset"      // equipos serializados (notebooks, teléfonos…)
	ProductTypeConsumable = "consumable" // insumos con stock mínimo
)

// Product representa un producto del inventario de TI.
// CurrentStock solo cambia vía movimientos (entradas, salidas, asignaciones y reparaciones).
// Para productos tipo asset, CurrentStock es la cantidad de unidades disponibles.
type Product struct {
	ID           string
	Name         string
	Model        string
	Brand        string
	CategoryID   string
	Type         string
	CurrentStock int
	MinimumStock *int // solo consumibles; nil en activos
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsConsumable indica si el producto maneja stock mínimo.
func (p *Product) IsConsumable() bool {
	return p.Type == ProductTypeConsumable
}

// ValidProductType valida el tipo de producto.
func ValidProductType(t string) bool {
	return t == ProductTypeAsset || t == ProductTypeConsumable
}
