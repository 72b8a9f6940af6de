package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// LocationUseCase sedes y departamentos: destinos de las salidas de inventario.
type LocationUseCase struct {
	branches    repository.BranchRepository
	departments repository.DepartmentRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(branches repository.BranchRepository, departments repository.DepartmentRepository) *LocationUseCase {
	return &LocationUseCase{branches: branches, departments: departments}
}

func (uc *LocationUseCase) CreateBranch(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	b := &entity.Branch{ID: uuid.New().String(), Name: name, Address: in.Address, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	out := dto.FromBranch(b)
	return &out, nil
}

func (uc *LocationUseCase) GetBranch(ctx context.Context, id string) (*dto.BranchResponse, error) {
	b, err := uc.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromBranch(b)
	return &out, nil
}

func (uc *LocationUseCase) ListBranches(ctx context.Context) ([]dto.BranchResponse, error) {
	list, err := uc.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromBranch(b))
	}
	return out, nil
}

// CreateDepartment crea un departamento; si indica sede, debe existir.
func (uc *LocationUseCase) CreateDepartment(ctx context.Context, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BranchID != "" {
		b, err := uc.branches.GetByID(ctx, in.BranchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now().UTC()
	d := &entity.Department{ID: uuid.New().String(), Name: name, BranchID: in.BranchID, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.departments.Create(ctx, d); err != nil {
		return nil, err
	}
	out := dto.FromDepartment(d)
	return &out, nil
}

func (uc *LocationUseCase) GetDepartment(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	d, err := uc.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromDepartment(d)
	return &out, nil
}

// ListDepartments lista departamentos, opcionalmente de una sede.
func (uc *LocationUseCase) ListDepartments(ctx context.Context, branchID string) ([]dto.DepartmentResponse, error) {
	list, err := uc.departments.List(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromDepartment(d))
	}
	return out, nil
}
