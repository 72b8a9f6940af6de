package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// MovementQueryUseCase lectura del log de movimientos. No hay escritura fuera de las transacciones del ledger.
type MovementQueryUseCase struct {
	repo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// ListMovements lista movimientos del más reciente al más antiguo.
// From/To son fechas (YYYY-MM-DD); To incluye el día completo.
func (uc *MovementQueryUseCase) ListMovements(ctx context.Context, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()
	filter := repository.MovementFilter{
		Type:        q.Type,
		ProductID:   q.ProductID,
		AssetUnitID: q.AssetUnitID,
		UserID:      q.UserID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if q.From != "" {
		from, err := time.Parse(time.DateOnly, q.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from", domain.ErrInvalidInput)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.DateOnly, q.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to", domain.ErrInvalidInput)
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: rango de fechas", domain.ErrInvalidInput)
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromMovement(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *MovementQueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromMovement(m)
	return &out, nil
}
