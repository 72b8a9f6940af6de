package dto

import "time"

// SendToRepairRequest body de POST /api/repairs.
type SendToRepairRequest struct {
	AssetUnitID      string     `json:"asset_unit_id" validate:"required,uuid"`
	RepairProvider   string     `json:"repair_provider" validate:"required,min=1,max=200"`
	IssueDescription string     `json:"issue_description" validate:"required,min=1,max=2000"`
	SentDate         *time.Time `json:"sent_date"`
}

// RegisterReturnRequest body de POST /api/repairs/:id/return.
// WasRepaired es puntero para distinguir false de ausente.
type RegisterReturnRequest struct {
	ReturnDate        *time.Time `json:"return_date"`
	WasRepaired       *bool      `json:"was_repaired" validate:"required"`
	RepairDescription string     `json:"repair_description" validate:"max=2000"`
	DisposalReason    string     `json:"disposal_reason" validate:"max=2000"`
}

// RepairQuery filtros de GET /api/repairs.
type RepairQuery struct {
	Status      string `query:"status" validate:"omitempty,oneof=pending completed disposed"`
	AssetUnitID string `query:"asset_unit_id" validate:"omitempty,uuid"`
	PageRequest
}

// RepairResponse salida de una reparación.
type RepairResponse struct {
	ID                string     `json:"id"`
	AssetUnitID       string     `json:"asset_unit_id"`
	RepairProvider    string     `json:"repair_provider"`
	IssueDescription  string     `json:"issue_description"`
	SentDate          time.Time  `json:"sent_date"`
	SentBy            string     `json:"sent_by"`
	ReturnDate        *time.Time `json:"return_date,omitempty"`
	WasRepaired       *bool      `json:"was_repaired,omitempty"`
	RepairDescription string     `json:"repair_description,omitempty"`
	DisposalReason    string     `json:"disposal_reason,omitempty"`
	RegisteredBy      string     `json:"registered_by,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RepairListResponse lista paginada de reparaciones.
type RepairListResponse struct {
	Items []RepairResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
