package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// LedgerUseCase registra entradas, salidas y ajustes de stock de forma transaccional:
// bloqueo de la fila del producto (SELECT FOR UPDATE), ajuste con guarda de stock no negativo
// y registro del movimiento en la misma transacción.
type LedgerUseCase struct {
	txRunner  ports.TxRunner
	publisher events.Publisher
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner ports.TxRunner, publisher events.Publisher) *LedgerUseCase {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &LedgerUseCase{txRunner: txRunner, publisher: publisher}
}

// RegisterEntry suma stock a un consumible y registra un movimiento de entrada.
// Las unidades de activos ingresan con el alta de cada unidad (assets.Create).
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, actorID string, in dto.RegisterEntryRequest) (*dto.MovementResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := lifecycle.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	var mov *entity.MovementRecord
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Type == entity.ProductTypeAsset {
			return fmt.Errorf("%w: los activos ingresan registrando cada unidad", domain.ErrInvalidInput)
		}
		if _, err := r.Products.AdjustStock(ctx, product.ID, in.Quantity); err != nil {
			return err
		}
		qty := in.Quantity
		mov = NewMovement(entity.MovementTypeEntry, actorID)
		mov.ProductID = product.ID
		mov.Quantity = &qty
		mov.SourceID = in.SourceID
		mov.Notes = in.Notes
		return r.Movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromMovement(mov)
	return &out, nil
}

// RegisterExit descuenta stock de un consumible hacia un departamento o una sede.
// Tras el commit publica StockChanged para el watcher de stock mínimo.
func (uc *LedgerUseCase) RegisterExit(ctx context.Context, actorID string, in dto.RegisterExitRequest) (*dto.MovementResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := lifecycle.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	hasDept, hasBranch := in.DepartmentID != "", in.BranchID != ""
	if hasDept == hasBranch {
		return nil, fmt.Errorf("%w: indique department_id o branch_id (solo uno)", domain.ErrInvalidInput)
	}

	var mov *entity.MovementRecord
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Type == entity.ProductTypeAsset {
			return fmt.Errorf("%w: los activos se entregan por asignación", domain.ErrInvalidInput)
		}
		if err := checkDestination(ctx, r, in.DepartmentID, in.BranchID); err != nil {
			return err
		}
		if _, err := lifecycle.ApplyStockDelta(product.CurrentStock, -in.Quantity); err != nil {
			return err
		}
		if _, err := r.Products.AdjustStock(ctx, product.ID, -in.Quantity); err != nil {
			return err
		}
		qty := in.Quantity
		mov = NewMovement(entity.MovementTypeExit, actorID)
		mov.ProductID = product.ID
		mov.Quantity = &qty
		mov.DestinationDepartmentID = in.DepartmentID
		mov.DestinationBranchID = in.BranchID
		mov.Notes = in.Notes
		return r.Movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	events.AfterCommit(ctx, uc.publisher, in.ProductID, events.ReasonExit)
	out := dto.FromMovement(mov)
	return &out, nil
}

// UpdateStock ajusta el stock de un consumible en delta unidades (corrección administrativa).
// No genera movimiento. Publica StockChanged si el stock baja.
func (uc *LedgerUseCase) UpdateStock(ctx context.Context, productID string, delta int) (*dto.StockResponse, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta no puede ser 0", domain.ErrInvalidInput)
	}
	var newStock int
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Type == entity.ProductTypeAsset {
			return fmt.Errorf("%w: el stock de activos se deriva de sus unidades", domain.ErrInvalidInput)
		}
		newStock, err = r.Products.AdjustStock(ctx, product.ID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	if delta < 0 {
		events.AfterCommit(ctx, uc.publisher, productID, events.ReasonAdjustment)
	}
	return &dto.StockResponse{ProductID: productID, CurrentStock: newStock}, nil
}

func checkDestination(ctx context.Context, r repository.Repos, departmentID, branchID string) error {
	if departmentID != "" {
		dept, err := r.Departments.GetByID(ctx, departmentID)
		if err != nil {
			return err
		}
		if dept == nil {
			return fmt.Errorf("%w: departamento", domain.ErrNotFound)
		}
		return nil
	}
	branch, err := r.Branches.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return fmt.Errorf("%w: sede", domain.ErrNotFound)
	}
	return nil
}

// NewMovement arma un registro con ID UUIDv7 (ordenable por creación) y timestamp UTC.
func NewMovement(movementType, actorID string) *entity.MovementRecord {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &entity.MovementRecord{
		ID:        id.String(),
		Type:      movementType,
		CreatedBy: actorID,
		CreatedAt: time.Now().UTC(),
	}
}
