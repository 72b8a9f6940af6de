package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix prefijo de la lista de descarte por cola: dlq:{cola}.
const DLQPrefix = "dlq:"

// DLQEntry evento fallido con metadatos para inspección manual.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ mueve un evento a la cola de descarte.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, payload []byte, reason string, attempts int) {
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(payload))
	}
	entry := DLQEntry{
		OriginalQueue: queue,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: serializar entrada")
		return
	}
	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: LPUSH")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: evento movido a la cola de descarte")
}

// DLQLength cantidad de entradas en la DLQ de una cola.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
