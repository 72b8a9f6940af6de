package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/activos-ti-api/internal/application/analytics"
	"github.com/jhoicas/activos-ti-api/internal/application/assets"
	"github.com/jhoicas/activos-ti-api/internal/application/auth"
	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/application/repairs"
	"github.com/jhoicas/activos-ti-api/internal/application/usecase"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/mail"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/activos-ti-api/internal/infrastructure/pdf"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/worker"
	httpRouter "github.com/jhoicas/activos-ti-api/internal/interfaces/http"
	"github.com/jhoicas/activos-ti-api/pkg/config"
	"github.com/jhoicas/activos-ti-api/pkg/logger"
	"github.com/jhoicas/activos-ti-api/pkg/secret"
)

// devAssetKey solo se usa en desarrollo si ASSET_SECRET_KEY no está definido.
const devAssetKey = "activos-ti-dev-only"

// stockQueue cola de eventos de stock: en memoria o Redis.
type stockQueue interface {
	events.Publisher
	Start(ctx context.Context, n int, handle events.Handler)
	Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	assetKey := cfg.Security.AssetSecretKey
	if assetKey == "" {
		log.Warn().Msg("ASSET_SECRET_KEY vacío: usando clave de desarrollo")
		assetKey = devAssetKey
	}
	box, err := secret.NewBox(assetKey)
	if err != nil {
		log.Fatal().Err(err).Msg("clave de cifrado de activos")
	}

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	assetRepo := postgres.NewAssetUnitRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	repairRepo := postgres.NewRepairRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Correo a administradores (opcional).
	var mailer ports.AdminMailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewMailer(cfg.SMTP)
		mailLog := log.Component("mail")
		mailLog.Info().Str("host", cfg.SMTP.Host).Msg("alertas por correo habilitadas")
	}

	// Cola de eventos de stock: Redis si hay REDIS_URL, si no en memoria.
	queue := newStockQueue(ctx, cfg, m, log)
	watcher := notifications.NewThresholdWatcher(productRepo, notificationRepo, userRepo, mailer)
	queue.Start(ctx, cfg.Notifications.Workers, worker.WatcherHandler(watcher, m))

	notificationUC := notifications.NewNotificationUseCase(notificationRepo, userRepo)
	worker.StartCleanupCron(ctx, worker.CleanupCronConfig{
		Cleaner:    notificationUC,
		Interval:   time.Duration(cfg.Notifications.CleanupIntervalMinutes) * time.Minute,
		DaysToKeep: cfg.Notifications.CleanupDays,
		Metrics:    m,
	})

	ledger := inventory.NewLedgerUseCase(txRunner, queue)
	assetUC := assets.NewAssetUseCase(txRunner, assetRepo, productRepo, userRepo, box, queue,
		infrapdf.NewMarotoCertificateGenerator(cfg.App.Name))
	repairUC := repairs.NewRepairUseCase(txRunner, repairRepo, assetRepo, queue)
	authUC := auth.NewAuthUseCase(userRepo, departmentRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:              cfg.App.Name,
		ExposeErrorDetail: cfg.App.IsDevelopment(),
		Metrics:           m,
		Ping:              pool.Ping,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Activos TI API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo, categoryRepo),
		LocationUC:     usecase.NewLocationUseCase(branchRepo, departmentRepo),
		Ledger:         ledger,
		Movements:      inventory.NewMovementQueryUseCase(movementRepo),
		AssetUC:        assetUC,
		RepairUC:       repairUC,
		NotificationUC: notificationUC,
		DashboardUC:    analytics.NewDashboardUseCase(analyticsRepo),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Los workers terminan el evento en curso y salen (ctx ya cancelado).
	queue.Wait()

	log.Info().Msg("aplicación detenida")
}

func newStockQueue(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) stockQueue {
	qlog := log.Component("worker")
	if cfg.Redis.URL != "" {
		rdb, err := worker.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			qlog.Fatal().Err(err).Msg("conexión a Redis")
		}
		qlog.Info().Str("queue", worker.QueueStockEvents).Msg("eventos de stock sobre Redis")
		return worker.NewRedisDispatcher(rdb, cfg.Notifications.MaxAttempts, m)
	}
	qlog.Info().Int("size", cfg.Notifications.QueueSize).Msg("eventos de stock en memoria")
	return worker.NewChannelDispatcher(cfg.Notifications.QueueSize, cfg.Notifications.MaxAttempts, m)
}
