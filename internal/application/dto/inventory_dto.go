package dto

import "time"

// RegisterEntryRequest body de POST /api/inventory/entries.
type RegisterEntryRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	SourceID  string `json:"source_id" validate:"max=100"`
	Notes     string `json:"notes" validate:"max=1000"`
}

// RegisterExitRequest body de POST /api/inventory/exits. Exactamente un destino.
type RegisterExitRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	DepartmentID string `json:"department_id" validate:"omitempty,uuid"`
	BranchID     string `json:"branch_id" validate:"omitempty,uuid"`
	Notes        string `json:"notes" validate:"max=1000"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	Type        string `query:"type" validate:"omitempty,oneof=entry exit assignment"`
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	AssetUnitID string `query:"asset_unit_id" validate:"omitempty,uuid"`
	UserID      string `query:"user_id" validate:"omitempty,uuid"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                      string    `json:"id"`
	Type                    string    `json:"type"`
	ProductID               string    `json:"product_id,omitempty"`
	AssetUnitID             string    `json:"asset_unit_id,omitempty"`
	Quantity                *int      `json:"quantity,omitempty"`
	SourceID                string    `json:"source_id,omitempty"`
	DestinationDepartmentID string    `json:"destination_department_id,omitempty"`
	DestinationBranchID     string    `json:"destination_branch_id,omitempty"`
	AssignedUserID          string    `json:"assigned_user_id,omitempty"`
	CreatedBy               string    `json:"created_by"`
	Notes                   string    `json:"notes,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
