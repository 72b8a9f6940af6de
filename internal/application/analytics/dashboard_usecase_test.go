package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/analytics"
	"github.com/jhoicas/activos-ti-api/internal/application/assets"
	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/application/repairs"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/testutil/memstore"
	"github.com/jhoicas/activos-ti-api/pkg/secret"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

func TestGetSummary_InventarioVacio(t *testing.T) {
	store := memstore.New()
	uc := analytics.NewDashboardUseCase(store.Analytics())

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.TotalAssets)
	assert.Len(t, sum.AssetsByStatus, 5, "todos los estados aparecen aunque estén en cero")
	assert.Len(t, sum.MonthlyMovements, 3)
	assert.True(t, sum.AssetParkValue.IsZero())
	assert.Empty(t, sum.TopConsumed)
	assert.NotEmpty(t, sum.DateLabel)
}

func TestGetSummary_ResumeParqueYMovimientos(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repos := store.Repos()
	box, err := secret.NewBox("clave-tests")
	require.NoError(t, err)
	assetUC := assets.NewAssetUseCase(store, repos.Assets, repos.Products, repos.Users, box, nil, nil)
	repairUC := repairs.NewRepairUseCase(store, repos.Repairs, repos.Assets, nil)
	ledger := inventory.NewLedgerUseCase(store, nil)

	laptop := store.AssetProduct(t, "ThinkPad", "T14")
	c1 := decimal.RequireFromString("1000.50")
	c2 := decimal.RequireFromString("2000")
	a1, err := assetUC.Create(ctx, actorID, dto.CreateAssetRequest{ProductID: laptop.ID, SerialNumber: "S-1", PurchaseCost: &c1})
	require.NoError(t, err)
	_, err = assetUC.Create(ctx, actorID, dto.CreateAssetRequest{ProductID: laptop.ID, SerialNumber: "S-2", PurchaseCost: &c2})
	require.NoError(t, err)
	_, err = repairUC.SendToRepair(ctx, actorID, dto.SendToRepairRequest{
		AssetUnitID: a1.ID, RepairProvider: "Servicio técnico", IssueDescription: "no enciende",
	})
	require.NoError(t, err)

	toner := store.Consumable(t, "Tóner", 10, 5)
	mouse := store.Consumable(t, "Mouse", 20, 2)
	dept := store.Department(t, "Contabilidad")
	_, err = ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: toner.ID, Quantity: 6, DepartmentID: dept.ID})
	require.NoError(t, err)
	_, err = ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: mouse.ID, Quantity: 1, DepartmentID: dept.ID})
	require.NoError(t, err)
	_, err = ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: mouse.ID, Quantity: 1, DepartmentID: dept.ID})
	require.NoError(t, err)

	sum, err := analytics.NewDashboardUseCase(store.Analytics()).GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalAssets)
	assert.Equal(t, 1, sum.AssetsByStatus[entity.AssetStatusAvailable])
	assert.Equal(t, 1, sum.AssetsByStatus[entity.AssetStatusInRepair])
	assert.True(t, decimal.RequireFromString("3000.50").Equal(sum.AssetParkValue), "got %s", sum.AssetParkValue)
	assert.Equal(t, 1, sum.PendingRepairs)
	assert.Equal(t, 1, sum.LowStockProducts, "solo el tóner queda bajo el mínimo")
	assert.Equal(t, 2, sum.MonthlyMovements[entity.MovementTypeEntry], "altas de unidades")
	assert.Equal(t, 3, sum.MonthlyMovements[entity.MovementTypeExit])

	require.Len(t, sum.TopConsumed, 2)
	assert.Equal(t, toner.ID, sum.TopConsumed[0].ProductID)
	assert.Equal(t, 6, sum.TopConsumed[0].Quantity)
	assert.Equal(t, 2, sum.TopConsumed[1].Quantity)
}

func TestGetSummary_ErrorDelRepositorio(t *testing.T) {
	store := memstore.New()
	boom := errors.New("conexión perdida")
	store.Fail("analytics.assets", boom)

	_, err := analytics.NewDashboardUseCase(store.Analytics()).GetSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "parque de equipos")
}
