// Package worker procesa fuera de la transacción los eventos de stock: una cola en memoria
// (una sola instancia) o una lista Redis compartida entre instancias, con reintentos y DLQ.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
)

// ErrQueueFull la cola en memoria no acepta más eventos.
var ErrQueueFull = errors.New("worker: cola de eventos llena")

// retryDelay espera entre reintentos de un mismo evento.
var retryDelay = 200 * time.Millisecond

// ChannelDispatcher cola en memoria con un pool de goroutines.
type ChannelDispatcher struct {
	queue       chan events.StockChanged
	maxAttempts int
	metrics     *metrics.Metrics
	wg          sync.WaitGroup
	dead        func(evt events.StockChanged, err error)
}

var _ events.Publisher = (*ChannelDispatcher)(nil)

// NewChannelDispatcher crea la cola con el buffer dado. m puede ser nil.
func NewChannelDispatcher(size, maxAttempts int, m *metrics.Metrics) *ChannelDispatcher {
	if size <= 0 {
		size = 256
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &ChannelDispatcher{
		queue:       make(chan events.StockChanged, size),
		maxAttempts: maxAttempts,
		metrics:     m,
		dead: func(evt events.StockChanged, err error) {
			log.Error().Err(err).
				Str("product_id", evt.ProductID).
				Str("reason", evt.Reason).
				Int("attempts", evt.Attempts).
				Msg("worker: evento de stock descartado")
		},
	}
}

// OnDeadLetter reemplaza el destino de los eventos que agotaron los intentos.
func (d *ChannelDispatcher) OnDeadLetter(fn func(evt events.StockChanged, err error)) {
	d.dead = fn
}

// PublishStockChanged encola sin bloquear; si la cola está llena retorna ErrQueueFull.
func (d *ChannelDispatcher) PublishStockChanged(_ context.Context, evt events.StockChanged) error {
	select {
	case d.queue <- evt:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start lanza n workers que consumen la cola hasta que ctx se cancele.
func (d *ChannelDispatcher) Start(ctx context.Context, n int, handle events.Handler) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					log.Debug().Int("worker", id).Msg("worker: apagando")
					return
				case evt := <-d.queue:
					d.process(ctx, evt, handle)
				}
			}
		}(i)
	}
	log.Info().Int("workers", n).Msg("worker: pool de eventos de stock iniciado (memoria)")
}

// Wait bloquea hasta que todos los workers terminen.
func (d *ChannelDispatcher) Wait() {
	d.wg.Wait()
}

func (d *ChannelDispatcher) process(ctx context.Context, evt events.StockChanged, handle events.Handler) {
	var err error
	for evt.Attempts < d.maxAttempts {
		evt.Attempts++
		if err = handle(ctx, evt); err == nil {
			d.metrics.EventProcessed(metrics.ResultOK)
			return
		}
		d.metrics.EventProcessed(metrics.ResultRetry)
		log.Warn().Err(err).Str("product_id", evt.ProductID).Int("attempt", evt.Attempts).Msg("worker: reintento de evento de stock")
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
	d.metrics.EventProcessed(metrics.ResultDead)
	d.dead(evt, err)
}

// WatcherHandler adapta el watcher de umbral como consumidor y cuenta las alertas creadas.
func WatcherHandler(w *notifications.ThresholdWatcher, m *metrics.Metrics) events.Handler {
	return func(ctx context.Context, evt events.StockChanged) error {
		n, err := w.CheckAndNotifyIfBelowThreshold(ctx, evt.ProductID)
		if err != nil {
			return err
		}
		if n != nil {
			m.LowStockAlert()
		}
		return nil
	}
}
