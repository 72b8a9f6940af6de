package repairs

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

// RepairUseCase ciclo de reparación: envío de una unidad disponible y registro de su retorno.
type RepairUseCase struct {
	txRunner  ports.TxRunner
	repairs   repository.RepairRepository
	assets    repository.AssetUnitRepository
	publisher events.Publisher
}

// NewRepairUseCase construye el caso de uso.
func NewRepairUseCase(txRunner ports.TxRunner, repairs repository.RepairRepository, assets repository.AssetUnitRepository, publisher events.Publisher) *RepairUseCase {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &RepairUseCase{txRunner: txRunner, repairs: repairs, assets: assets, publisher: publisher}
}

// SendToRepair crea la reparación pendiente, pasa la unidad a in_repair y descuenta 1 del stock disponible.
func (uc *RepairUseCase) SendToRepair(ctx context.Context, actorID string, in dto.SendToRepairRequest) (*dto.RepairResponse, error) {
	provider := strings.TrimSpace(in.RepairProvider)
	issue := strings.TrimSpace(in.IssueDescription)
	if provider == "" || issue == "" || strings.TrimSpace(in.AssetUnitID) == "" {
		return nil, fmt.Errorf("%w: asset_unit_id, repair_provider e issue_description son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	sent := now
	if in.SentDate != nil {
		sent = in.SentDate.UTC()
	}

	repair := &entity.RepairRecord{
		ID:               uuid.New().String(),
		AssetUnitID:      in.AssetUnitID,
		RepairProvider:   provider,
		IssueDescription: issue,
		SentDate:         sent,
		SentBy:           actorID,
		Status:           entity.RepairStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var productID string
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		unit, err := r.Assets.GetForUpdate(ctx, in.AssetUnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if err := lifecycle.CanSendToRepair(unit.Status); err != nil {
			return err
		}
		if err := r.Repairs.Create(ctx, repair); err != nil {
			return err
		}
		productID = unit.ProductID
		unit.Status = entity.AssetStatusInRepair
		unit.UpdatedAt = now
		if err := r.Assets.UpdateState(ctx, unit); err != nil {
			return err
		}
		_, err = r.Products.AdjustStock(ctx, unit.ProductID, -1)
		return err
	})
	if err != nil {
		return nil, err
	}
	events.AfterCommit(ctx, uc.publisher, productID, events.ReasonRepairSend)
	out := dto.FromRepair(repair)
	return &out, nil
}

// RegisterReturn cierra una reparación pendiente (una sola vez). Reparado: completed y unidad
// disponible (+1 stock). No reparado: disposed y unidad dada de baja.
func (uc *RepairUseCase) RegisterReturn(ctx context.Context, actorID, repairID string, in dto.RegisterReturnRequest) (*dto.RepairResponse, error) {
	if in.WasRepaired == nil {
		return nil, fmt.Errorf("%w: was_repaired es obligatorio", domain.ErrInvalidInput)
	}
	wasRepaired := *in.WasRepaired
	if err := lifecycle.ValidateReturn(wasRepaired, in.RepairDescription, in.DisposalReason); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	returned := now
	if in.ReturnDate != nil {
		returned = in.ReturnDate.UTC()
	}

	var repair *entity.RepairRecord
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		repair, err = r.Repairs.GetForUpdate(ctx, repairID)
		if err != nil {
			return err
		}
		if repair == nil {
			return domain.ErrNotFound
		}
		if err := lifecycle.CanClose(repair); err != nil {
			return err
		}
		if err := lifecycle.ValidateReturnDate(repair.SentDate, returned); err != nil {
			return err
		}

		outcome := lifecycle.ResolveReturn(wasRepaired)
		repair.Status = outcome.RepairStatus
		repair.ReturnDate = &returned
		repair.WasRepaired = &wasRepaired
		repair.RegisteredBy = actorID
		repair.UpdatedAt = now
		if wasRepaired {
			repair.RepairDescription = strings.TrimSpace(in.RepairDescription)
		} else {
			repair.DisposalReason = strings.TrimSpace(in.DisposalReason)
		}
		if err := r.Repairs.Close(ctx, repair); err != nil {
			return err
		}

		unit, err := r.Assets.GetForUpdate(ctx, repair.AssetUnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return fmt.Errorf("%w: unidad de la reparación", domain.ErrNotFound)
		}
		unit.Status = outcome.UnitStatus
		unit.AssignedUserID = ""
		unit.UpdatedAt = now
		if err := r.Assets.UpdateState(ctx, unit); err != nil {
			return err
		}
		if outcome.StockDelta != 0 {
			if _, err := r.Products.AdjustStock(ctx, unit.ProductID, outcome.StockDelta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromRepair(repair)
	return &out, nil
}

// GetByID obtiene una reparación.
func (uc *RepairUseCase) GetByID(ctx context.Context, id string) (*dto.RepairResponse, error) {
	repair, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if repair == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromRepair(repair)
	return &out, nil
}

// List lista reparaciones por estado y/o unidad, más recientes primero.
func (uc *RepairUseCase) List(ctx context.Context, q dto.RepairQuery) (*dto.RepairListResponse, error) {
	q.DefaultPage()
	list, err := uc.repairs.List(ctx, repository.RepairFilter{
		Status:      q.Status,
		AssetUnitID: q.AssetUnitID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RepairResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.FromRepair(r))
	}
	return &dto.RepairListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// ListByAsset historial de reparaciones de una unidad.
func (uc *RepairUseCase) ListByAsset(ctx context.Context, assetID string) (*dto.RepairListResponse, error) {
	unit, err := uc.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return uc.List(ctx, dto.RepairQuery{AssetUnitID: assetID, PageRequest: dto.PageRequest{Limit: 100}})
}
