package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest entrada para registrar una unidad física de un producto tipo asset.
type CreateAssetRequest struct {
	ProductID          string           `json:"product_id" validate:"required,uuid"`
	SerialNumber       string           `json:"serial_number" validate:"required,min=1,max=100"`
	AssetTag           string           `json:"asset_tag" validate:"max=50"`
	PurchaseDate       *time.Time       `json:"purchase_date"`
	WarrantyExpiration *time.Time       `json:"warranty_expiration"`
	PurchaseCost       *decimal.Decimal `json:"purchase_cost" validate:"omitempty,min=0"`
	Notes              string           `json:"notes" validate:"max=1000"`
}

// AssignAssetRequest body de POST /api/assets/:id/assign.
type AssignAssetRequest struct {
	AssignedUserID string `json:"assigned_user_id" validate:"required,uuid"`
	EncryptionPass string `json:"encryption_pass" validate:"max=200"`
	Notes          string `json:"notes" validate:"max=1000"`
}

// UpdateAssetStatusRequest body de PATCH /api/assets/:id/status (override administrativo).
type UpdateAssetStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=available assigned maintenance retired"`
	AssignedUserID string `json:"assigned_user_id" validate:"omitempty,uuid"`
}

// AssetQuery filtros de GET /api/assets.
type AssetQuery struct {
	ProductID      string `query:"product_id" validate:"omitempty,uuid"`
	Status         string `query:"status" validate:"omitempty,oneof=available assigned in_repair maintenance retired"`
	AssignedUserID string `query:"assigned_user_id" validate:"omitempty,uuid"`
	PageRequest
}

// AssetResponse salida de una unidad. EncryptionPass solo viaja a administradores.
type AssetResponse struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"product_id"`
	SerialNumber       string           `json:"serial_number"`
	AssetTag           string           `json:"asset_tag,omitempty"`
	Status             string           `json:"status"`
	AssignedUserID     string           `json:"assigned_user_id,omitempty"`
	EncryptionPass     string           `json:"encryption_pass,omitempty"`
	HasEncryptionPass  bool             `json:"has_encryption_pass"`
	PurchaseDate       *time.Time       `json:"purchase_date,omitempty"`
	WarrantyExpiration *time.Time       `json:"warranty_expiration,omitempty"`
	PurchaseCost       *decimal.Decimal `json:"purchase_cost,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AssetListResponse lista paginada de unidades.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AssignmentResponse resultado de una asignación: unidad y movimiento generado.
type AssignmentResponse struct {
	Asset    AssetResponse    `json:"asset"`
	Movement MovementResponse `json:"movement"`
}
