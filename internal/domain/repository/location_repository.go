package repository

import (
	"context"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// BranchRepository puerto de persistencia para sedes.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context) ([]*entity.Branch, error)
}

// DepartmentRepository puerto de persistencia para departamentos.
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	List(ctx context.Context, branchID string) ([]*entity.Department, error)
}
