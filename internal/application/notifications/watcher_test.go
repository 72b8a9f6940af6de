package notifications_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/testutil/memstore"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}

func newWatcher(store *memstore.Store, mailer *fakeMailer) *notifications.ThresholdWatcher {
	repos := store.Repos()
	if mailer == nil {
		return notifications.NewThresholdWatcher(repos.Products, repos.Notifications, repos.Users, nil)
	}
	return notifications.NewThresholdWatcher(repos.Products, repos.Notifications, repos.Users, mailer)
}

func setStock(t *testing.T, store *memstore.Store, productID string, delta int) {
	t.Helper()
	_, err := store.Repos().Products.AdjustStock(context.Background(), productID, delta)
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckAndNotifyIfBelowThreshold
// ──────────────────────────────────────────────────────────────────────────────

func TestWatcher_BajoElMinimoCreaAlerta(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Cable HDMI", 5, 3)
	setStock(t, store, p.ID, -3)

	n, err := newWatcher(store, nil).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.True(t, n.ForAdmins)
	assert.Empty(t, n.UserID)
	assert.Equal(t, entity.NotificationTypeWarning, n.Type)
	assert.Contains(t, n.Message, "Cable HDMI")
	assert.Contains(t, n.Message, "2")
	assert.Contains(t, n.Message, "3")
	assert.Len(t, store.Notifications(), 1)
}

func TestWatcher_IgualAlMinimoTambienAlerta(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Mouse", 4, 3)
	setStock(t, store, p.ID, -1)

	n, err := newWatcher(store, nil).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestWatcher_SobreElMinimoNoAlerta(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Teclado", 10, 3)
	setStock(t, store, p.ID, -2)

	n, err := newWatcher(store, nil).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Empty(t, store.Notifications())
}

func TestWatcher_ProductoAssetOSinMinimoNoAlerta(t *testing.T) {
	store := memstore.New()
	asset := store.AssetProduct(t, "ThinkPad", "T14")
	w := newWatcher(store, nil)

	n, err := w.CheckAndNotifyIfBelowThreshold(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Nil(t, n, "los productos asset no tienen umbral")

	n, err = w.CheckAndNotifyIfBelowThreshold(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, n, "un producto inexistente no alerta")
}

func TestWatcher_NoDeduplica(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Toner", 2, 3)
	w := newWatcher(store, nil)

	for i := 0; i < 3; i++ {
		_, err := w.CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
		require.NoError(t, err)
	}
	assert.Len(t, store.Notifications(), 3)
}

func TestWatcher_FalloAlCrearPropagaError(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Toner", 1, 3)
	store.Fail("notifications.create", errors.New("db caída"))

	_, err := newWatcher(store, nil).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo a administradores
// ──────────────────────────────────────────────────────────────────────────────

func TestWatcher_EnviaCorreoAAdminsActivos(t *testing.T) {
	store := memstore.New()
	store.User(t, "admin1@empresa.com", entity.RoleAdmin)
	store.User(t, "admin2@empresa.com", entity.RoleAdmin)
	store.User(t, "usuario@empresa.com", entity.RoleUser)
	p := store.Consumable(t, "Cable HDMI", 1, 3)
	mailer := &fakeMailer{}

	n, err := newWatcher(store, mailer).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.ElementsMatch(t, []string{"admin1@empresa.com", "admin2@empresa.com"}, mailer.sent[0].to)
	assert.Equal(t, n.Title, mailer.sent[0].subject)
	assert.Equal(t, n.Message, mailer.sent[0].body)
}

func TestWatcher_FalloDeCorreoNoAfectaLaAlerta(t *testing.T) {
	store := memstore.New()
	store.User(t, "admin@empresa.com", entity.RoleAdmin)
	p := store.Consumable(t, "Cable HDMI", 1, 3)
	mailer := &fakeMailer{err: errors.New("smtp rechazado")}

	n, err := newWatcher(store, mailer).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotNil(t, n)
	assert.Len(t, store.Notifications(), 1)
}

func TestWatcher_SinAdminsNoEnviaCorreo(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Cable HDMI", 1, 3)
	mailer := &fakeMailer{}

	_, err := newWatcher(store, mailer).CheckAndNotifyIfBelowThreshold(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleStockChanged(t *testing.T) {
	store := memstore.New()
	p := store.Consumable(t, "Pilas AA", 0, 5)

	err := newWatcher(store, nil).HandleStockChanged(context.Background(), events.StockChanged{
		ProductID: p.ID,
		Reason:    events.ReasonExit,
	})
	require.NoError(t, err)
	assert.Len(t, store.Notifications(), 1)
}

func TestLowStockMessage(t *testing.T) {
	m := 3
	msg := notifications.LowStockMessage(&entity.Product{Name: "Cable", Model: "HDMI 2m", CurrentStock: 2, MinimumStock: &m})
	assert.Equal(t, "El producto Cable HDMI 2m tiene stock 2, igual o inferior al mínimo de 3 unidades.", msg)
}
