//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/postgres"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

// startPostgres levanta un contenedor, aplica las migraciones y devuelve el pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("activos_test"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func seedConsumable(t *testing.T, pool *pgxpool.Pool, stock, minimum int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	cat := &entity.Category{ID: uuid.NewString(), Name: "Insumos " + uuid.NewString()[:8], Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, cat))

	m := minimum
	p := &entity.Product{
		ID: uuid.NewString(), Name: "Toner " + uuid.NewString()[:8], Model: "TN-1060",
		CategoryID: cat.ID, Type: entity.ProductTypeConsumable,
		CurrentStock: stock, MinimumStock: &m, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Migraciones y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrate_Idempotente(t *testing.T) {
	pool := startPostgres(t)
	assert.NoError(t, postgres.Migrate(context.Background(), pool))
}

func TestAdjustStock_NuncaNegativo(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(pool)
	p := seedConsumable(t, pool, 5, 2)

	stock, err := products.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	_, err = products.AdjustStock(ctx, p.ID, -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = products.AdjustStock(ctx, uuid.NewString(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStock)

	low, err := products.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p.ID, low[0].ID)
}

func TestRegisterExit_ConcurrenteSobrePostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	p := seedConsumable(t, pool, 10, 0)
	dept := &entity.Department{ID: uuid.NewString(), Name: "Soporte", Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, postgres.NewDepartmentRepository(pool).Create(ctx, dept))

	ledger := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), nil)

	var ok, insufficient int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{
				ProductID: p.ID, Quantity: 1, DepartmentID: dept.ID,
			})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				atomic.AddInt32(&insufficient, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok)
	assert.Equal(t, int32(10), insufficient)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStock)

	movs, err := postgres.NewMovementRepository(pool).List(ctx, repository.MovementFilter{
		Type: entity.MovementTypeExit, ProductID: p.ID, Limit: 100,
	})
	require.NoError(t, err)
	assert.Len(t, movs, 10, "una salida por unidad descontada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Restricciones de esquema
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetUnit_AsignadoSinUsuarioRechazado(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cat := &entity.Category{ID: uuid.NewString(), Name: "Notebooks", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, cat))
	prod := &entity.Product{ID: uuid.NewString(), Name: "ThinkPad", Model: "T14", CategoryID: cat.ID,
		Type: entity.ProductTypeAsset, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, prod))

	assets := postgres.NewAssetUnitRepository(pool)
	unit := &entity.AssetUnit{ID: uuid.NewString(), ProductID: prod.ID, SerialNumber: "PF-1",
		Status: entity.AssetStatusAvailable, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, assets.Create(ctx, unit))

	dup := *unit
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, assets.Create(ctx, &dup), domain.ErrConflict, "serie duplicada")

	unit.Status = entity.AssetStatusAssigned
	assert.ErrorIs(t, assets.UpdateState(ctx, unit), domain.ErrInvalidState)
}

func TestNotificaciones_BroadcastSoloAdmins(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repo := postgres.NewNotificationRepository(pool)

	n := &entity.Notification{ID: uuid.NewString(), ForAdmins: true, Title: "Stock bajo",
		Message: "x", Type: entity.NotificationTypeWarning, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, n))

	admin := repository.Recipient{UserID: uuid.NewString(), IsAdmin: true}
	user := repository.Recipient{UserID: uuid.NewString()}

	c, err := repo.CountUnread(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, c)
	c, err = repo.CountUnread(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, c)

	require.NoError(t, repo.MarkAsRead(ctx, n.ID, time.Now().UTC()))
	deleted, err := repo.DeleteReadBefore(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalytics_ConsumoYStockBajo(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	p := seedConsumable(t, pool, 10, 5)
	dept := &entity.Department{ID: uuid.NewString(), Name: "Compras", Active: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, postgres.NewDepartmentRepository(pool).Create(ctx, dept))

	ledger := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), nil)
	for _, qty := range []int{2, 4} {
		_, err := ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: p.ID, Quantity: qty, DepartmentID: dept.ID})
		require.NoError(t, err)
	}

	repo := postgres.NewAnalyticsRepository(pool)
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	counts, err := repo.MovementCountsByType(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[entity.MovementTypeExit])

	top, err := repo.TopConsumed(ctx, from, to, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, p.ID, top[0].ProductID)
	assert.Equal(t, 6, top[0].Quantity)

	low, err := repo.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, low)

	value, err := repo.AssetParkValue(ctx)
	require.NoError(t, err)
	assert.True(t, value.IsZero())

	pending, err := repo.PendingRepairs(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}
