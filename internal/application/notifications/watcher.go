package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// ThresholdWatcher revisa el stock de un producto después de una operación que lo redujo
// y crea una alerta broadcast a administradores si quedó en o bajo el mínimo.
// No deduplica: cada salida bajo el mínimo genera su propia alerta.
type ThresholdWatcher struct {
	products      repository.ProductRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
	mailer        ports.AdminMailer
}

// NewThresholdWatcher construye el watcher. mailer y users pueden ser nil (sin correo).
func NewThresholdWatcher(
	products repository.ProductRepository,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	mailer ports.AdminMailer,
) *ThresholdWatcher {
	return &ThresholdWatcher{products: products, notifications: notifications, users: users, mailer: mailer}
}

// CheckAndNotifyIfBelowThreshold lee el stock actual y, si corresponde, crea la alerta.
// Retorna la notificación creada o nil si no hizo falta.
func (w *ThresholdWatcher) CheckAndNotifyIfBelowThreshold(ctx context.Context, productID string) (*entity.Notification, error) {
	product, err := w.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("watcher: leer producto: %w", err)
	}
	if !lifecycle.IsBelowThreshold(product) {
		return nil, nil
	}

	n := &entity.Notification{
		ID:        uuid.New().String(),
		ForAdmins: true,
		Title:     "Stock bajo: " + product.Name,
		Message:   LowStockMessage(product),
		Type:      entity.NotificationTypeWarning,
		CreatedAt: time.Now().UTC(),
	}
	if err := w.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("watcher: crear notificación: %w", err)
	}
	log.Info().
		Str("product_id", product.ID).
		Int("current_stock", product.CurrentStock).
		Int("minimum_stock", *product.MinimumStock).
		Msg("watcher: alerta de stock bajo creada")

	w.mailAdmins(ctx, n)
	return n, nil
}

// HandleStockChanged adapta el watcher como consumidor de eventos.
func (w *ThresholdWatcher) HandleStockChanged(ctx context.Context, evt events.StockChanged) error {
	_, err := w.CheckAndNotifyIfBelowThreshold(ctx, evt.ProductID)
	return err
}

// LowStockMessage arma el texto de la alerta con nombre/modelo, stock actual y mínimo.
func LowStockMessage(p *entity.Product) string {
	name := p.Name
	if p.Model != "" {
		name += " " + p.Model
	}
	return fmt.Sprintf("El producto %s tiene stock %d, igual o inferior al mínimo de %d unidades.",
		name, p.CurrentStock, *p.MinimumStock)
}

// mailAdmins es best-effort: un error de correo no se reintenta para no duplicar la alerta.
func (w *ThresholdWatcher) mailAdmins(ctx context.Context, n *entity.Notification) {
	if w.mailer == nil || w.users == nil {
		return
	}
	admins, err := w.users.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("watcher: listar administradores")
		return
	}
	to := make([]string, 0, len(admins))
	for _, u := range admins {
		if u.Active && strings.TrimSpace(u.Email) != "" {
			to = append(to, u.Email)
		}
	}
	if len(to) == 0 {
		return
	}
	if err := w.mailer.Send(ctx, to, n.Title, n.Message); err != nil {
		log.Error().Err(err).Int("recipients", len(to)).Msg("watcher: enviar correo de stock bajo")
	}
}
