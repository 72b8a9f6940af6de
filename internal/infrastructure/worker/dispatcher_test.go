package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/worker"
	"github.com/jhoicas/activos-ti-api/internal/testutil/memstore"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// ChannelDispatcher
// ──────────────────────────────────────────────────────────────────────────────

func TestChannelDispatcher_SalidaBajoMinimoGeneraAlerta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memstore.New()
	repos := store.Repos()
	m := metrics.New()
	d := worker.NewChannelDispatcher(16, 3, m)
	watcher := notifications.NewThresholdWatcher(repos.Products, repos.Notifications, repos.Users, nil)
	d.Start(ctx, 2, worker.WatcherHandler(watcher, m))

	ledger := inventory.NewLedgerUseCase(store, d)
	p := store.Consumable(t, "Cable HDMI", 10, 5)
	dept := store.Department(t, "Soporte")

	_, err := ledger.RegisterExit(ctx, actorID, dto.RegisterExitRequest{ProductID: p.ID, Quantity: 6, DepartmentID: dept.ID})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(store.Notifications()) == 1 }, 2*time.Second, 10*time.Millisecond)
	n := store.Notifications()[0]
	assert.True(t, n.ForAdmins)
	assert.Contains(t, n.Message, "4")
	assert.Contains(t, n.Message, "5")
}

func TestChannelDispatcher_ReintentaHastaExito(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := worker.NewChannelDispatcher(4, 3, nil)
	var calls int32
	done := make(chan events.StockChanged, 1)
	d.Start(ctx, 1, func(_ context.Context, evt events.StockChanged) error {
		if atomic.AddInt32(&calls, 1) < 2 {
			return errors.New("transitorio")
		}
		done <- evt
		return nil
	})

	require.NoError(t, d.PublishStockChanged(ctx, events.StockChanged{ProductID: "p1", Reason: events.ReasonExit}))
	select {
	case evt := <-done:
		assert.Equal(t, 2, evt.Attempts)
	case <-time.After(2 * time.Second):
		t.Fatal("el evento no se procesó")
	}
}

func TestChannelDispatcher_AgotaIntentosYDescarta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := worker.NewChannelDispatcher(4, 2, metrics.New())
	var mu sync.Mutex
	var dead []events.StockChanged
	d.OnDeadLetter(func(evt events.StockChanged, _ error) {
		mu.Lock()
		defer mu.Unlock()
		dead = append(dead, evt)
	})
	var calls int32
	d.Start(ctx, 1, func(context.Context, events.StockChanged) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("siempre falla")
	})

	require.NoError(t, d.PublishStockChanged(ctx, events.StockChanged{ProductID: "p1"}))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(dead) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, dead[0].Attempts)
}

func TestChannelDispatcher_ColaLlena(t *testing.T) {
	d := worker.NewChannelDispatcher(1, 1, nil)
	require.NoError(t, d.PublishStockChanged(context.Background(), events.StockChanged{ProductID: "a"}))
	err := d.PublishStockChanged(context.Background(), events.StockChanged{ProductID: "b"})
	assert.ErrorIs(t, err, worker.ErrQueueFull)
}

func TestChannelDispatcher_ApagadoOrdenado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := worker.NewChannelDispatcher(1, 1, nil)
	d.Start(ctx, 3, func(context.Context, events.StockChanged) error { return nil })
	cancel()

	finished := make(chan struct{})
	go func() {
		d.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("los workers no terminaron al cancelar el contexto")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Limpieza periódica
// ──────────────────────────────────────────────────────────────────────────────

type countingCleaner struct {
	calls int32
	days  int32
}

func (c *countingCleaner) CleanupOld(_ context.Context, days int) (*dto.CleanupResponse, error) {
	atomic.AddInt32(&c.calls, 1)
	atomic.StoreInt32(&c.days, int32(days))
	return &dto.CleanupResponse{Deleted: 1}, nil
}

func TestStartCleanupCron(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &countingCleaner{}

	worker.StartCleanupCron(ctx, worker.CleanupCronConfig{Cleaner: c, Interval: 20 * time.Millisecond, DaysToKeep: 30})

	require.Eventually(t, func() bool { return atomic.LoadInt32(&c.calls) >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(30), atomic.LoadInt32(&c.days))
}

func TestStartCleanupCron_Deshabilitado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &countingCleaner{}

	worker.StartCleanupCron(ctx, worker.CleanupCronConfig{Cleaner: c, Interval: 0, DaysToKeep: 30})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&c.calls))
}
