package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
)

// Cleaner borra notificaciones leídas antiguas (NotificationUseCase).
type Cleaner interface {
	CleanupOld(ctx context.Context, daysToKeep int) (*dto.CleanupResponse, error)
}

// CleanupCronConfig dependencias y parámetros de la limpieza periódica.
type CleanupCronConfig struct {
	Cleaner    Cleaner
	Interval   time.Duration
	DaysToKeep int
	Metrics    *metrics.Metrics
}

// StartCleanupCron ejecuta CleanupOld cada Interval hasta que ctx se cancele.
func StartCleanupCron(ctx context.Context, cfg CleanupCronConfig) {
	if cfg.Interval <= 0 || cfg.DaysToKeep <= 0 {
		log.Info().Msg("cleanup_cron: deshabilitado")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		log.Info().Dur("interval", cfg.Interval).Int("days", cfg.DaysToKeep).Msg("cleanup_cron: iniciado")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cleanup_cron: apagando")
				return
			case <-ticker.C:
				runCleanup(ctx, cfg)
			}
		}
	}()
}

func runCleanup(ctx context.Context, cfg CleanupCronConfig) {
	res, err := cfg.Cleaner.CleanupOld(ctx, cfg.DaysToKeep)
	if err != nil {
		log.Error().Err(err).Msg("cleanup_cron: limpieza de notificaciones")
		return
	}
	cfg.Metrics.NotificationsCleaned(res.Deleted)
	if res.Deleted > 0 {
		log.Info().Int64("deleted", res.Deleted).Msg("cleanup_cron: notificaciones leídas eliminadas")
	}
}
