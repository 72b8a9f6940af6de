package dto

import "time"

// CreateBranchRequest entrada para crear una sede.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=150"`
	Address string `json:"address" validate:"max=300"`
}

// BranchResponse salida de una sede.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=150"`
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BranchID  string    `json:"branch_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
