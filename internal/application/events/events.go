// Package events define los eventos post-commit del inventario y el puerto para publicarlos.
// El watcher de stock mínimo los consume de forma asíncrona.
package events

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Motivos de StockChanged.
const (
	ReasonExit         = "exit"
	ReasonAssignment   = "assignment"
	ReasonRepairSend   = "repair_send"
	ReasonAdjustment   = "adjustment"
	ReasonStatusChange = "status_change"
)

// StockChanged se publica después del commit de toda operación que reduce el stock de un producto.
type StockChanged struct {
	ProductID  string    `json:"product_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
	Attempts   int       `json:"attempts"`
}

// Publisher entrega eventos a los consumidores (canal en memoria o Redis).
type Publisher interface {
	PublishStockChanged(ctx context.Context, evt StockChanged) error
}

// Handler procesa un evento; un error provoca reintento.
type Handler func(ctx context.Context, evt StockChanged) error

// Nop descarta los eventos.
type Nop struct{}

func (Nop) PublishStockChanged(context.Context, StockChanged) error { return nil }

// AfterCommit publica el evento y solo registra el error: la operación ya fue confirmada.
func AfterCommit(ctx context.Context, p Publisher, productID, reason string) {
	if p == nil || productID == "" {
		return
	}
	evt := StockChanged{ProductID: productID, Reason: reason, OccurredAt: time.Now().UTC()}
	if err := p.PublishStockChanged(ctx, evt); err != nil {
		log.Error().Err(err).
			Str("product_id", productID).
			Str("reason", reason).
			Msg("events: no se pudo publicar stock_changed")
	}
}
