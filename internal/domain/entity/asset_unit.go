package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una unidad de activo.
const (
	AssetStatusAvailable   = "available"
	AssetStatusAssigned    = "assigned"
	AssetStatusInRepair    = "in_repair"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

// AssetUnit es una unidad física serializada de un producto tipo asset.
// AssignedUserID está definido si y solo si Status == assigned.
// EncryptionPass se guarda sellado (ver pkg/secret); nunca en texto plano.
type AssetUnit struct {
	ID                 string
	ProductID          string
	SerialNumber       string
	AssetTag           string
	Status             string
	AssignedUserID     string
	EncryptionPass     string
	PurchaseDate       *time.Time
	WarrantyExpiration *time.Time
	PurchaseCost       *decimal.Decimal
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
