package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/testutil/memstore"
)

func TestListMovements_FiltrosYOrden(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ledger, _ := newLedger(store)
	query := inventory.NewMovementQueryUseCase(store.Repos().Movements)
	a := store.Consumable(t, "Tinta negra", 0, 1)
	b := store.Consumable(t, "Tinta color", 0, 1)
	dept := store.Department(t, "Diseño")

	for _, id := range []string{a.ID, b.ID, a.ID} {
		_, err := ledger.RegisterEntry(ctx, actorID, dto.RegisterEntryRequest{ProductID: id, Quantity: 5})
		require.NoError(t, err)
	}
	_, err := ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: a.ID, Quantity: 2, DepartmentID: dept.ID})
	require.NoError(t, err)

	all, err := query.ListMovements(ctx, dto.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 4)
	assert.Equal(t, entity.MovementTypeExit, all.Items[0].Type, "el más reciente primero")
	for i := 1; i < len(all.Items); i++ {
		assert.Greater(t, all.Items[i-1].ID, all.Items[i].ID, "los IDs UUIDv7 respetan el orden de creación")
	}

	onlyA, err := query.ListMovements(ctx, dto.MovementQuery{ProductID: a.ID, Type: entity.MovementTypeEntry})
	require.NoError(t, err)
	assert.Len(t, onlyA.Items, 2)

	today := time.Now().UTC().Format(time.DateOnly)
	ranged, err := query.ListMovements(ctx, dto.MovementQuery{From: today, To: today})
	require.NoError(t, err)
	assert.Len(t, ranged.Items, 4)

	paged, err := query.ListMovements(ctx, dto.MovementQuery{PageRequest: dto.PageRequest{Limit: 3, Offset: 2}})
	require.NoError(t, err)
	assert.Len(t, paged.Items, 2)

	_, err = query.ListMovements(ctx, dto.MovementQuery{From: "2026-05-02", To: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetMovement(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ledger, _ := newLedger(store)
	query := inventory.NewMovementQueryUseCase(store.Repos().Movements)
	p := store.Consumable(t, "Cinta", 0, 1)

	mov, err := ledger.RegisterEntry(ctx, actorID, dto.RegisterEntryRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	got, err := query.GetMovement(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, mov.ID, got.ID)

	_, err = query.GetMovement(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
