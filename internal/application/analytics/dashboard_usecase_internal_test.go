package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

type rangeRecorder struct {
	from, to time.Time
	limit    int
}

func (r *rangeRecorder) AssetCountsByStatus(context.Context) (map[string]int, error) {
	return map[string]int{"available": 3, "desconocido": 9}, nil
}
func (r *rangeRecorder) AssetParkValue(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("10.005"), nil
}
func (r *rangeRecorder) PendingRepairs(context.Context) (int, error) { return 0, nil }
func (r *rangeRecorder) LowStockCount(context.Context) (int, error)  { return 0, nil }
func (r *rangeRecorder) MovementCountsByType(_ context.Context, from, to time.Time) (map[string]int, error) {
	r.from, r.to = from, to
	return nil, nil
}
func (r *rangeRecorder) TopConsumed(_ context.Context, _, _ time.Time, limit int) ([]repository.ConsumptionResult, error) {
	r.limit = limit
	return nil, nil
}

func TestGetSummary_RangoDelMesEnCurso(t *testing.T) {
	rec := &rangeRecorder{}
	uc := NewDashboardUseCase(rec)
	fixed := time.Date(2026, time.February, 17, 15, 4, 5, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), rec.from)
	assert.Equal(t, fixed, rec.to)
	assert.Equal(t, dashboardTopConsumed, rec.limit)
	assert.Equal(t, "Febrero 2026", sum.DateLabel)
	assert.Equal(t, 3, sum.TotalAssets, "estados desconocidos no se cuentan")
	assert.Equal(t, "10.01", sum.AssetParkValue.StringFixed(2))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Enero 2025", monthLabel(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Diciembre 2026", monthLabel(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}
