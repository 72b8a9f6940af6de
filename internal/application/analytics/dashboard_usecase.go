// Package analytics contiene el resumen del inventario de TI que consume el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

const dashboardTopConsumed = 5 // consumibles en el widget de salidas del mes

var assetStatuses = [...]string{
	entity.AssetStatusAvailable,
	entity.AssetStatusAssigned,
	entity.AssetStatusInRepair,
	entity.AssetStatusMaintenance,
	entity.AssetStatusRetired,
}

var movementTypes = [...]string{
	entity.MovementTypeEntry,
	entity.MovementTypeExit,
	entity.MovementTypeAssignment,
}

// DashboardUseCase genera el resumen del parque de equipos y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las consultas corren en paralelo:
//  1. AssetCountsByStatus + AssetParkValue → parque de equipos
//  2. PendingRepairs + LowStockCount       → alertas
//  3. MovementCountsByType(mes)            → MonthlyMovements
//  4. TopConsumed(mes, top 5)              → TopConsumed
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Mes en curso: día 1 a las 00:00 hasta ahora
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type parkResult struct {
		counts map[string]int
		value  decimal.Decimal
		err    error
	}
	type alertsResult struct {
		repairs  int
		lowStock int
		err      error
	}
	type movementsResult struct {
		counts map[string]int
		err    error
	}
	type consumedResult struct {
		rows []repository.ConsumptionResult
		err  error
	}

	parkCh := make(chan parkResult, 1)
	alertsCh := make(chan alertsResult, 1)
	movCh := make(chan movementsResult, 1)
	topCh := make(chan consumedResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.AssetCountsByStatus(ctx)
		if err != nil {
			parkCh <- parkResult{err: err}
			return
		}
		value, err := uc.analyticsRepo.AssetParkValue(ctx)
		parkCh <- parkResult{counts, value, err}
	}()
	go func() {
		repairs, err := uc.analyticsRepo.PendingRepairs(ctx)
		if err != nil {
			alertsCh <- alertsResult{err: err}
			return
		}
		low, err := uc.analyticsRepo.LowStockCount(ctx)
		alertsCh <- alertsResult{repairs, low, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.MovementCountsByType(ctx, monthStart, now)
		movCh <- movementsResult{counts, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopConsumed(ctx, monthStart, now, dashboardTopConsumed)
		topCh <- consumedResult{rows, err}
	}()

	park := <-parkCh
	alerts := <-alertsCh
	mov := <-movCh
	top := <-topCh

	if park.err != nil {
		return nil, fmt.Errorf("dashboard: parque de equipos: %w", park.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}
	if mov.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos del mes: %w", mov.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top consumibles: %w", top.err)
	}

	// Todos los estados y tipos aparecen, aunque sea en cero.
	byStatus := make(map[string]int, len(assetStatuses))
	total := 0
	for _, s := range assetStatuses {
		byStatus[s] = park.counts[s]
		total += park.counts[s]
	}
	movements := make(map[string]int, len(movementTypes))
	for _, t := range movementTypes {
		movements[t] = mov.counts[t]
	}

	consumed := make([]dto.ConsumptionDTO, 0, len(top.rows))
	for _, r := range top.rows {
		consumed = append(consumed, dto.ConsumptionDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			Model:     r.Model,
			Quantity:  r.Quantity,
		})
	}

	return &dto.DashboardSummaryDTO{
		AssetsByStatus:   byStatus,
		TotalAssets:      total,
		AssetParkValue:   park.value.Round(2),
		PendingRepairs:   alerts.repairs,
		LowStockProducts: alerts.lowStock,
		MonthlyMovements: movements,
		TopConsumed:      consumed,
		DateLabel:        monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
