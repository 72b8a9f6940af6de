package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
)

// QueueStockEvents lista Redis con los eventos de stock pendientes.
const QueueStockEvents = "jobs:stock_changed"

// RedisDispatcher encola eventos con LPUSH y los consume con BRPOP desde varias instancias.
type RedisDispatcher struct {
	rdb         *redis.Client
	queue       string
	maxAttempts int
	metrics     *metrics.Metrics
	pollTimeout time.Duration
	wg          sync.WaitGroup
}

var _ events.Publisher = (*RedisDispatcher)(nil)

// NewRedisDispatcher construye el dispatcher sobre un cliente ya conectado. m puede ser nil.
func NewRedisDispatcher(rdb *redis.Client, maxAttempts int, m *metrics.Metrics) *RedisDispatcher {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &RedisDispatcher{
		rdb:         rdb,
		queue:       QueueStockEvents,
		maxAttempts: maxAttempts,
		metrics:     m,
		pollTimeout: 5 * time.Second,
	}
}

// NewRedisClient parsea REDIS_URL y verifica la conexión.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// WithQueue cambia la lista usada (tests).
func (d *RedisDispatcher) WithQueue(queue string) *RedisDispatcher {
	d.queue = queue
	return d
}

// PublishStockChanged serializa el evento y lo agrega a la lista.
func (d *RedisDispatcher) PublishStockChanged(ctx context.Context, evt events.StockChanged) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, d.queue, data).Err()
}

// Start lanza n goroutines bloqueadas en BRPOP (sin consumo de CPU en reposo).
func (d *RedisDispatcher) Start(ctx context.Context, n int, handle events.Handler) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			d.run(ctx, id, handle)
		}(i)
	}
	log.Info().Int("workers", n).Str("queue", d.queue).Msg("worker: pool de eventos de stock iniciado (redis)")
}

// Wait bloquea hasta que todos los workers terminen.
func (d *RedisDispatcher) Wait() {
	d.wg.Wait()
}

func (d *RedisDispatcher) run(ctx context.Context, id int, handle events.Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("worker: apagando")
			return
		default:
		}
		result, err := d.rdb.BRPop(ctx, d.pollTimeout, d.queue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: BRPOP")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		d.process(ctx, []byte(result[1]), handle)
	}
}

// requeueTimeout acota las escrituras en Redis hechas después de cancelado el contexto del worker.
const requeueTimeout = 5 * time.Second

// process ejecuta el handler una vez; si falla re-encola con Attempts+1 o, agotados, envía a la DLQ.
// Las escrituras de re-encolado y DLQ no heredan la cancelación de ctx: un evento tomado
// con BRPOP durante el apagado vuelve a la cola en lugar de perderse.
func (d *RedisDispatcher) process(ctx context.Context, raw []byte, handle events.Handler) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requeueTimeout)
	defer cancel()

	var evt events.StockChanged
	if err := json.Unmarshal(raw, &evt); err != nil {
		log.Error().Err(err).Str("queue", d.queue).Msg("worker: evento ilegible")
		SendToDLQ(wctx, d.rdb, d.queue, raw, "unmarshal: "+err.Error(), 0)
		d.metrics.EventProcessed(metrics.ResultDead)
		return
	}
	evt.Attempts++
	err := handle(ctx, evt)
	if err == nil {
		d.metrics.EventProcessed(metrics.ResultOK)
		return
	}
	if ctx.Err() != nil {
		// Apagado: el intento no cuenta.
		evt.Attempts--
		log.Warn().Err(err).Str("product_id", evt.ProductID).Msg("worker: apagando, evento devuelto a la cola")
		if err := d.PublishStockChanged(wctx, evt); err != nil {
			log.Error().Err(err).Str("product_id", evt.ProductID).Msg("worker: re-encolar evento")
		}
		return
	}
	if evt.Attempts >= d.maxAttempts {
		d.metrics.EventProcessed(metrics.ResultDead)
		data, _ := json.Marshal(evt)
		SendToDLQ(wctx, d.rdb, d.queue, data, err.Error(), evt.Attempts)
		return
	}
	d.metrics.EventProcessed(metrics.ResultRetry)
	log.Warn().Err(err).Str("product_id", evt.ProductID).Int("attempt", evt.Attempts).Msg("worker: reintento de evento de stock")
	if err := d.PublishStockChanged(wctx, evt); err != nil {
		log.Error().Err(err).Str("product_id", evt.ProductID).Msg("worker: re-encolar evento")
	}
}
