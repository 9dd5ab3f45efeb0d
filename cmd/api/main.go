package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/movement"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/application/registry"
	"github.com/jhoicas/Personal-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
	"github.com/jhoicas/Personal-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Personal-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Personal-api/internal/interfaces/http"
	"github.com/jhoicas/Personal-api/pkg/config"
	"github.com/jhoicas/Personal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var txRunner ports.TxRunner
	switch cfg.App.Storage {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
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
		txRunner = postgres.NewTxRunner(pool)
	}

	identity := httpRouter.ContextIdentity{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := movement.NewEngine(txRunner, identity, log.Component("movement")).
		WithMetrics(metrics.New(reg))
	positionUC := registry.NewPositionUseCase(txRunner, identity)
	personnelUC := personnel.NewUseCase(txRunner, identity)
	historyUC := history.NewUseCase(txRunner, identity)

	// Difusión de la bitácora: solo si hay brokers configurados.
	if cfg.Kafka.Enabled() {
		publisher := kafka.NewAuditPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		defer publisher.Close()
		engine.WithPublisher(publisher)
		positionUC.WithPublisher(publisher, log.Component("registry"))
		personnelUC.WithPublisher(publisher, log.Component("personnel"))
		historyUC.WithPublisher(publisher, log.Component("history"))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AuditTopic).Msg("bitácora publicada en Kafka")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Personal API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:      engine,
		PositionUC:  positionUC,
		PersonnelUC: personnelUC,
		HistoryUC:   historyUC,
		Gatherer:    reg,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
